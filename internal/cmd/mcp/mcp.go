// Package mcp parses MCP command flags, opens the configured host and serves
// the character bridge over stdio or HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/vttbridge/internal/platform/cmd"
	"github.com/louisbranch/vttbridge/internal/platform/config"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host/foundry"
	"github.com/louisbranch/vttbridge/internal/services/bridge/storage/sqlite"
	"github.com/louisbranch/vttbridge/internal/services/mcp/domain"
	"github.com/louisbranch/vttbridge/internal/services/mcp/metrics"
	"github.com/louisbranch/vttbridge/internal/services/mcp/service"
	"github.com/prometheus/client_golang/prometheus"
)

// Host kinds.
const (
	HostSQLite  = "sqlite"
	HostFoundry = "foundry"
)

// Config holds MCP command configuration.
type Config struct {
	Transport      string        `env:"MCP_TRANSPORT"      envDefault:"stdio"`
	HTTPAddr       string        `env:"MCP_HTTP_ADDR"      envDefault:"localhost:8081"`
	AllowedHosts   []string      `env:"MCP_ALLOWED_HOSTS"  envSeparator:","`
	Host           string        `env:"HOST"               envDefault:"sqlite"`
	DBPath         string        `env:"DB_PATH"            envDefault:"data/vttbridge.db"`
	FoundryURL     string        `env:"FOUNDRY_URL"`
	FoundryOrigin  string        `env:"FOUNDRY_ORIGIN"`
	FoundryTimeout time.Duration `env:"FOUNDRY_TIMEOUT"    envDefault:"10s"`
	Locale         string        `env:"LOCALE"             envDefault:"de-DE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	allowedHosts := strings.Join(cfg.AllowedHosts, ",")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&allowedHosts, "allowed-hosts", allowedHosts, "comma-separated extra hosts accepted by the HTTP transport")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "character host: sqlite or foundry")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite host database path")
	fs.StringVar(&cfg.FoundryURL, "foundry-url", cfg.FoundryURL, "Foundry relay websocket URL")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "default locale for summaries and errors")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.AllowedHosts = splitHosts(allowedHosts)
	return cfg, nil
}

func splitHosts(value string) []string {
	var hosts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			hosts = append(hosts, part)
		}
	}
	return hosts
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		bridge, closer, err := openBridge(cfg)
		if err != nil {
			return err
		}
		bridge.Metrics = metrics.New(prometheus.DefaultRegisterer)
		server := service.New(bridge, closer)
		log.Printf("serving %s host over %s", cfg.Host, cfg.Transport)
		return service.Run(ctx, server, service.Config{
			Transport:    service.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
		})
	})
}

// openBridge opens the configured host and returns the bridge plus the
// resource that must be closed when serving ends.
func openBridge(cfg Config) (domain.Bridge, io.Closer, error) {
	bridge := domain.Bridge{
		Router: systems.NewRouter(systems.NewDefaultRegistry()),
		Locks:  domain.NewKeyedMutex(),
		Locale: cfg.Locale,
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Host)) {
	case HostSQLite, "":
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return domain.Bridge{}, nil, fmt.Errorf("open sqlite host: %w", err)
		}
		bridge.Store = store
		bridge.Creatures = store
		return bridge, store, nil
	case HostFoundry:
		client, err := foundry.NewClient(foundry.Config{
			URL:     cfg.FoundryURL,
			Origin:  cfg.FoundryOrigin,
			Timeout: cfg.FoundryTimeout,
		})
		if err != nil {
			return domain.Bridge{}, nil, fmt.Errorf("configure foundry host: %w", err)
		}
		bridge.Store = foundry.NewStore(client)
		return bridge, client, nil
	default:
		return domain.Bridge{}, nil, config.UsageError{Err: fmt.Errorf("host %q is not supported", cfg.Host)}
	}
}
