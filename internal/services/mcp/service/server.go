package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/louisbranch/vttbridge/internal/platform/branding"
	"github.com/louisbranch/vttbridge/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures how the MCP server is exposed.
type Config struct {
	Transport TransportKind
	// HTTPAddr defaults to localhost:8081 for HTTP transport.
	HTTPAddr string
	// AllowedHosts extends the loopback hosts accepted by the HTTP transport.
	AllowedHosts []string
}

// Server hosts the MCP server and the host resources it owns.
type Server struct {
	mcpServer *mcp.Server
	closer    io.Closer
}

// New creates an MCP server whose tools and resources read and write
// characters through bridge. closer, when set, is released by Close.
func New(bridge domain.Bridge, closer io.Closer) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	bridge.Notify = func(ctx context.Context, uri string) {
		if strings.TrimSpace(uri) == "" {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		if err := mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
			log.Printf("mcp resource updated notify failed: uri=%s err=%v", uri, err)
		}
	}
	if bridge.Locks == nil {
		bridge.Locks = domain.NewKeyedMutex()
	}

	for _, r := range registrations(bridge) {
		r.register(mcpServer, bridge)
	}
	return &Server{mcpServer: mcpServer, closer: closer}
}

// completionHandler offers no argument completions.
func completionHandler(context.Context, *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{Completion: mcp.CompletionResultDetails{Values: []string{}}}, nil
}

// Subscriptions need no bookkeeping here: the SDK tracks subscribers and
// ResourceUpdated fans out to them. The handlers only reject blank URIs.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil {
		return errResourceURIRequired
	}
	return requireURI(req.Params.URI)
}

func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil {
		return errResourceURIRequired
	}
	return requireURI(req.Params.URI)
}

var errResourceURIRequired = errors.New("resource uri is required")

func requireURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return errResourceURIRequired
	}
	return nil
}

// Run serves s over cfg.Transport until ctx ends. s is closed on return.
func Run(ctx context.Context, s *Server, cfg Config) error {
	switch cfg.Transport {
	case TransportStdio, "":
		return s.Serve(ctx)
	case TransportHTTP:
		if s == nil || s.mcpServer == nil {
			return errNotConfigured
		}
		err := NewHTTPTransport(cfg.HTTPAddr, s.mcpServer, cfg.AllowedHosts).Start(ctx)
		return errors.Join(err, s.Close())
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

var errNotConfigured = errors.New("MCP server is not configured")

// Serve runs one MCP session on stdio until the client disconnects or ctx
// ends, then closes s.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the host held by the server. Later calls are no-ops.
func (s *Server) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	closer := s.closer
	s.closer = nil
	return closer.Close()
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errNotConfigured
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var serveErr error
	if err := s.mcpServer.Run(ctx, transport); err != nil && ctx.Err() == nil {
		serveErr = fmt.Errorf("serve MCP: %w", err)
	}
	var closeErr error
	if err := s.Close(); err != nil {
		closeErr = fmt.Errorf("close host: %w", err)
	}
	return errors.Join(serveErr, closeErr)
}
