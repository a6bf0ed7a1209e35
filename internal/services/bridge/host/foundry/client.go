// Package foundry talks to a Foundry VTT world through the bridge module's
// websocket relay and exposes it as a host store.
package foundry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"github.com/louisbranch/vttbridge/internal/platform/id"
	"github.com/louisbranch/vttbridge/internal/platform/timeouts"
	"golang.org/x/net/websocket"
)

// DefaultTimeout bounds one request/response round trip.
const DefaultTimeout = timeouts.HostRequest

// Relay method names.
const (
	MethodGetCharacterInfo = "foundry-mcp-bridge.getCharacterInfo"
	MethodListActors       = "foundry-mcp-bridge.listActors"
	MethodUpdateActor      = "foundry-mcp-bridge.updateActor"
)

// Config describes the relay endpoint.
type Config struct {
	// URL is the websocket endpoint, e.g. ws://localhost:31415/bridge.
	URL string
	// Origin is sent in the websocket handshake. Defaults to the URL's
	// http(s) equivalent.
	Origin  string
	Timeout time.Duration
}

type request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RemoteError    `json:"error,omitempty"`
}

// RemoteError is an error reported by the relay for one request.
type RemoteError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// RemoteNotFound is the relay code for a missing document.
const RemoteNotFound = "NOT_FOUND"

// Client sends requests over one lazily dialed websocket. Requests are
// serialized; a broken connection is dropped and redialed on the next call.
type Client struct {
	cfg  Config
	dial func() (*websocket.Conn, error)

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient validates the relay configuration. It does not dial.
func NewClient(cfg Config) (*Client, error) {
	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.URL == "" {
		return nil, fmt.Errorf("foundry url is required")
	}
	if !strings.HasPrefix(cfg.URL, "ws://") && !strings.HasPrefix(cfg.URL, "wss://") {
		return nil, fmt.Errorf("foundry url must use ws or wss: %s", cfg.URL)
	}
	if strings.TrimSpace(cfg.Origin) == "" {
		cfg.Origin = "http" + strings.TrimPrefix(cfg.URL, "ws")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{cfg: cfg}
	c.dial = func() (*websocket.Conn, error) {
		return websocket.Dial(c.cfg.URL, "", c.cfg.Origin)
	}
	return c, nil
}

// Close drops the current connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropLocked()
}

// Query sends one request and decodes its result into out. A nil out
// discards the result.
func (c *Client) Query(ctx context.Context, method string, params any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	requestID, err := id.New("req")
	if err != nil {
		return fmt.Errorf("request id: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := c.dial()
		if err != nil {
			return apperrors.Wrap(apperrors.CodeHostUnavailable, "dial foundry relay", err)
		}
		c.conn = conn
	}

	deadline := time.Now().Add(c.cfg.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		_ = c.dropLocked()
		return apperrors.Wrap(apperrors.CodeHostUnavailable, "set relay deadline", err)
	}

	if err := websocket.JSON.Send(c.conn, request{ID: requestID, Method: method, Params: params}); err != nil {
		_ = c.dropLocked()
		return apperrors.Wrap(apperrors.CodeHostUnavailable, "send "+method, err)
	}

	for {
		var resp response
		if err := websocket.JSON.Receive(c.conn, &resp); err != nil {
			_ = c.dropLocked()
			return apperrors.Wrap(apperrors.CodeHostUnavailable, "receive "+method, err)
		}
		// Replies to requests that timed out earlier are skipped.
		if resp.ID != requestID {
			continue
		}
		if resp.Error != nil {
			return apperrors.Wrap(apperrors.CodeHostQueryFailed, method, resp.Error)
		}
		if out == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return apperrors.Wrap(apperrors.CodeHostQueryFailed, "decode "+method+" result", err)
		}
		return nil
	}
}

func (c *Client) dropLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// isRemoteNotFound reports whether err carries the relay's not-found code.
func isRemoteNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Code == RemoteNotFound
}
