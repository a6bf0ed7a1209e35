// Package cmd holds the startup plumbing shared by every vttbridge command:
// env-then-flags configuration and a telemetry-wrapped run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/vttbridge/internal/platform/config"
	"github.com/louisbranch/vttbridge/internal/platform/otel"
)

// Service names double as the OpenTelemetry service.name.
const (
	ServiceMCP       = "mcp"
	ServiceCharsheet = "charsheet"
	ServiceImporter  = "actor-importer"
)

const telemetryShutdownTimeout = 5 * time.Second

// ParseConfig fills cfg from VTTBRIDGE_ environment variables. Call it
// before registering flags so env values become the flag defaults.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses args into fs. Malformed input comes back as a
// config.UsageError; -h returns flag.ErrHelp unchanged.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return config.UsageError{Err: err}
}

// RunWithTelemetry installs tracing for service, runs run, and flushes the
// exporter on the way out.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return fmt.Errorf("service name is required")
	case run == nil:
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
