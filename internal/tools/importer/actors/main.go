// Package actorimporter loads exported Foundry actor documents and DSA5
// compendium packs into the SQLite host store.
package actorimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/vttbridge/internal/platform/cmd"
	"github.com/louisbranch/vttbridge/internal/platform/config"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
	"github.com/louisbranch/vttbridge/internal/services/bridge/storage/sqlite"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the actor importer.
type Config struct {
	// ActorsDir holds actor exports, one document or an array per file.
	ActorsDir string
	// PacksDir holds compendium packs, one file per pack.
	PacksDir string
	DBPath   string
	DryRun   bool
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		DBPath: filepath.Join("data", "vttbridge.db"),
	}

	fs.StringVar(&cfg.ActorsDir, "actors", "", "directory containing actor JSON exports")
	fs.StringVar(&cfg.PacksDir, "packs", "", "directory containing compendium pack JSON files")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "host database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.ActorsDir) == "" && strings.TrimSpace(cfg.PacksDir) == "" {
		return Config{}, config.UsageError{Err: errors.New("actors or packs is required")}
	}
	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceImporter, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	var (
		actors []actorDocument
		packs  []dsa5.PackDocuments
	)
	var group errgroup.Group
	if dir := strings.TrimSpace(cfg.ActorsDir); dir != "" {
		group.Go(func() error {
			var err error
			if actors, err = readActorDir(dir); err != nil {
				return fmt.Errorf("read actors: %w", err)
			}
			return nil
		})
	}
	if dir := strings.TrimSpace(cfg.PacksDir); dir != "" {
		group.Go(func() error {
			var err error
			if packs, err = readPackDir(dir); err != nil {
				return fmt.Errorf("read packs: %w", err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	creatures, stats := dsa5.BuildCreatureIndex(packs)

	if cfg.DryRun {
		_, err := fmt.Fprintf(out, "validated %d actor(s), %d creature(s) from %d pack(s), skipped %d\n",
			len(actors), stats.Indexed, stats.Packs, stats.Skipped)
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open host store: %w", err)
	}
	defer store.Close()

	for _, actor := range actors {
		if err := store.Put(ctx, actor.record); err != nil {
			return fmt.Errorf("put actor %s from %s: %w", actor.record.ID(), actor.source, err)
		}
	}
	if len(creatures) > 0 {
		if err := store.PutCreatures(ctx, creatures); err != nil {
			return fmt.Errorf("put creatures: %w", err)
		}
	}

	_, err = fmt.Fprintf(out, "imported %d actor(s), %d creature(s) from %d pack(s) into %s, skipped %d\n",
		len(actors), stats.Indexed, stats.Packs, cfg.DBPath, stats.Skipped)
	return err
}
