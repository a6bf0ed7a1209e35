package foundry

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"golang.org/x/net/websocket"
)

// relayHandler answers each request with reply(method, params).
func relayHandler(reply func(method string, params map[string]any) response) websocket.Handler {
	return func(conn *websocket.Conn) {
		defer conn.Close()
		for {
			var req struct {
				ID     string         `json:"id"`
				Method string         `json:"method"`
				Params map[string]any `json:"params"`
			}
			if err := websocket.JSON.Receive(conn, &req); err != nil {
				return
			}
			resp := reply(req.Method, req.Params)
			resp.ID = req.ID
			if err := websocket.JSON.Send(conn, resp); err != nil {
				return
			}
		}
	}
}

func newTestClient(t *testing.T, handler websocket.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: "ws" + strings.TrimPrefix(srv.URL, "http"), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClientValidatesURL(t *testing.T) {
	for _, url := range []string{"", "http://localhost:3000"} {
		if _, err := NewClient(Config{URL: url}); err == nil {
			t.Errorf("expected error for %q", url)
		}
	}
	client, err := NewClient(Config{URL: "wss://foundry.example/bridge"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.cfg.Origin != "https://foundry.example/bridge" || client.cfg.Timeout != DefaultTimeout {
		t.Fatalf("defaults = %+v", client.cfg)
	}
}

func TestClientQuery(t *testing.T) {
	client := newTestClient(t, relayHandler(func(method string, params map[string]any) response {
		if method != MethodGetCharacterInfo {
			return response{Error: &RemoteError{Message: "unknown method"}}
		}
		return response{Result: []byte(`{"_id":"a1","name":"` + params["characterName"].(string) + `"}`)}
	}))

	var got struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := client.Query(context.Background(), MethodGetCharacterInfo, getParams{CharacterName: "Alrik"}, &got); err != nil {
		t.Fatalf("query: %v", err)
	}
	if got.ID != "a1" || got.Name != "Alrik" {
		t.Fatalf("result = %+v", got)
	}

	err := client.Query(context.Background(), "foundry-mcp-bridge.rollDice", nil, nil)
	if !apperrors.HasCode(err, apperrors.CodeHostQueryFailed) {
		t.Fatalf("expected HOST_QUERY_FAILED, got %v", err)
	}
}

func TestClientRedialsAfterDisconnect(t *testing.T) {
	var connections atomic.Int32
	handler := websocket.Handler(func(conn *websocket.Conn) {
		connections.Add(1)
		var req request
		if err := websocket.JSON.Receive(conn, &req); err != nil {
			return
		}
		_ = websocket.JSON.Send(conn, response{ID: req.ID, Result: []byte(`true`)})
		// Each connection serves one request, then hangs up.
		_ = conn.Close()
	})
	client := newTestClient(t, handler)

	ctx := context.Background()
	if err := client.Query(ctx, MethodListActors, nil, nil); err != nil {
		t.Fatalf("first query: %v", err)
	}
	// The relay hung up; this call fails and drops the connection.
	err := client.Query(ctx, MethodListActors, nil, nil)
	if !apperrors.HasCode(err, apperrors.CodeHostUnavailable) {
		t.Fatalf("expected HOST_UNAVAILABLE, got %v", err)
	}
	if err := client.Query(ctx, MethodListActors, nil, nil); err != nil {
		t.Fatalf("third query: %v", err)
	}
	if got := connections.Load(); got != 2 {
		t.Fatalf("connections = %d, want 2", got)
	}
}

func TestClientDialFailure(t *testing.T) {
	client, err := NewClient(Config{URL: "ws://127.0.0.1:1/bridge", Timeout: time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.Query(context.Background(), MethodListActors, nil, nil)
	if !apperrors.HasCode(err, apperrors.CodeHostUnavailable) {
		t.Fatalf("expected HOST_UNAVAILABLE, got %v", err)
	}
}

func TestClientHonorsCanceledContext(t *testing.T) {
	client, err := NewClient(Config{URL: "ws://127.0.0.1:1/bridge"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.Query(ctx, MethodListActors, nil, nil); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
