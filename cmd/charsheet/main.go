// Package main provides a CLI for reading and updating exported actor files.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	charsheetcmd "github.com/louisbranch/vttbridge/internal/cmd/charsheet"
	"github.com/louisbranch/vttbridge/internal/platform/config"
)

func main() {
	cfg, err := charsheetcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exit(err, cfg.Locale)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := charsheetcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exit(err, cfg.Locale)
	}
}
