package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/louisbranch/vttbridge/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

var listenTCP = net.Listen

// defaultHTTPAddr keeps the HTTP transport on loopback unless configured.
const defaultHTTPAddr = "localhost:8081"

// HTTPTransport serves one MCP server over the streamable HTTP protocol,
// next to a health probe and the Prometheus scrape endpoint.
type HTTPTransport struct {
	addr   string
	guard  hostGuard
	server *mcp.Server
}

// NewHTTPTransport creates an HTTP transport for server. Loopback hosts are
// always admitted; allowedHosts adds more.
func NewHTTPTransport(addr string, server *mcp.Server, allowedHosts []string) *HTTPTransport {
	if addr == "" {
		addr = defaultHTTPAddr
	}
	return &HTTPTransport{addr: addr, guard: newHostGuard(allowedHosts), server: server}
}

// Handler returns the routes served by the transport.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", t.guard.wrap(streamable))
	mux.Handle("/mcp/health", t.guard.wrap(http.HandlerFunc(health)))
	mux.Handle("/metrics", t.guard.wrap(promhttp.Handler()))
	return mux
}

// Start serves HTTP until ctx ends, then shuts down gracefully.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	srv := &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	log.Printf("serving MCP over HTTP on %s", listener.Addr())

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	})
	return group.Wait()
}
