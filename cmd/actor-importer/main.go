// Package main imports actor exports and compendium packs into the host database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/vttbridge/internal/platform/config"
	actorimporter "github.com/louisbranch/vttbridge/internal/tools/importer/actors"
)

func main() {
	cfg, err := actorimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exit(err, "")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := actorimporter.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exit(err, "")
	}
}
