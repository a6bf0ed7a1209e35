// Package charsheet renders and updates exported actor files offline.
package charsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/vttbridge/internal/platform/cmd"
	"github.com/louisbranch/vttbridge/internal/platform/config"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems"
)

// Config holds charsheet command configuration.
type Config struct {
	Actor     string
	Summary   bool
	Canonical bool
	// Apply is the path of an update JSON file.
	Apply  string
	Output string
	Locale string `env:"LOCALE" envDefault:"de-DE"`
}

// ParseConfig parses environment and flags into a Config. The actor file
// may be given with -actor or as the first argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Actor, "actor", "", "path to an exported actor JSON file")
	fs.BoolVar(&cfg.Summary, "summary", false, "print the localized character summary")
	fs.BoolVar(&cfg.Canonical, "canonical", false, "print the canonical character JSON")
	fs.StringVar(&cfg.Apply, "apply", "", "path to an update JSON file to apply")
	fs.StringVar(&cfg.Output, "out", "", "write the updated actor here instead of stdout")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "summary locale such as de-DE or en-US")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Actor == "" && fs.NArg() > 0 {
		cfg.Actor = fs.Arg(0)
	}

	if strings.TrimSpace(cfg.Actor) == "" {
		return Config{}, config.UsageError{Err: errors.New("actor path is required")}
	}
	if !cfg.Summary && !cfg.Canonical && cfg.Apply == "" {
		cfg.Summary = true
	}
	return cfg, nil
}

// Run executes the charsheet command. Warnings go to errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCharsheet, func(context.Context) error {
		data, err := os.ReadFile(cfg.Actor)
		if err != nil {
			return fmt.Errorf("read actor: %w", err)
		}
		record, err := native.Parse(data)
		if err != nil {
			return fmt.Errorf("parse actor %s: %w", cfg.Actor, err)
		}
		router := systems.NewRouter(systems.NewDefaultRegistry())

		if cfg.Summary {
			if _, err := fmt.Fprintln(out, router.Summarize(record, cfg.Locale)); err != nil {
				return err
			}
		}
		if cfg.Canonical {
			if err := writeCanonical(out, router, record); err != nil {
				return err
			}
		}
		if cfg.Apply != "" {
			return applyUpdate(cfg, out, errOut, router, record)
		}
		return nil
	})
}

func writeCanonical(out io.Writer, router *systems.Router, record *native.Record) error {
	result := router.Import(record)
	if !result.Success || result.Character == nil {
		return fmt.Errorf("import actor: %s", strings.Join(result.Errors, "; "))
	}
	data, err := json.MarshalIndent(result.Character, "", "  ")
	if err != nil {
		return fmt.Errorf("encode character: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func applyUpdate(cfg Config, out, errOut io.Writer, router *systems.Router, record *native.Record) error {
	data, err := os.ReadFile(cfg.Apply)
	if err != nil {
		return fmt.Errorf("read update: %w", err)
	}
	var update character.Update
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		return fmt.Errorf("decode update %s: %w", cfg.Apply, err)
	}
	if update.ID == "" {
		update.ID = record.ID()
	}

	if validation := router.Validate(record, update); !validation.Valid {
		fmt.Fprintf(errOut, "Validation: %s\n", strings.Join(validation.Errors, "; "))
	}
	result := router.Export(record, update)
	if !result.Success {
		return fmt.Errorf("apply update: %s", strings.Join(result.Errors, "; "))
	}
	if warnings := result.Warnings(); warnings != "" {
		fmt.Fprintln(errOut, warnings)
	}
	fmt.Fprintf(errOut, "Updated fields: %s\n", strings.Join(result.UpdatedFields, ", "))

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, record.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("format actor: %w", err)
	}
	pretty.WriteByte('\n')
	if cfg.Output == "" {
		_, err := out.Write(pretty.Bytes())
		return err
	}
	if err := os.WriteFile(cfg.Output, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write actor: %w", err)
	}
	return nil
}
