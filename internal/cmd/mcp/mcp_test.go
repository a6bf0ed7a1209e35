package mcp

import (
	"flag"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Host != HostSQLite || cfg.Locale != "de-DE" {
		t.Fatalf("expected sqlite host and de-DE locale, got %q %q", cfg.Host, cfg.Locale)
	}
	if cfg.FoundryTimeout != 10*time.Second {
		t.Fatalf("expected 10s foundry timeout, got %s", cfg.FoundryTimeout)
	}
	if len(cfg.AllowedHosts) != 0 {
		t.Fatalf("expected no allowed hosts, got %v", cfg.AllowedHosts)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("VTTBRIDGE_MCP_HTTP_ADDR", "env-http")
	t.Setenv("VTTBRIDGE_MCP_ALLOWED_HOSTS", "vtt.example, table.example")
	t.Setenv("VTTBRIDGE_HOST", "foundry")
	t.Setenv("VTTBRIDGE_FOUNDRY_URL", "ws://localhost:31415/bridge")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag-http", "-transport", "http", "-locale", "en-US"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" || cfg.Locale != "en-US" {
		t.Fatalf("expected http transport and en-US, got %q %q", cfg.Transport, cfg.Locale)
	}
	if cfg.Host != HostFoundry || cfg.FoundryURL != "ws://localhost:31415/bridge" {
		t.Fatalf("expected foundry host from env, got %q %q", cfg.Host, cfg.FoundryURL)
	}
	if want := []string{"vtt.example", "table.example"}; !reflect.DeepEqual(cfg.AllowedHosts, want) {
		t.Fatalf("allowed hosts = %v, want %v", cfg.AllowedHosts, want)
	}
}

func TestOpenBridge(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		bridge, closer, err := openBridge(Config{Host: HostSQLite, DBPath: filepath.Join(t.TempDir(), "bridge.db"), Locale: "de-DE"})
		if err != nil {
			t.Fatalf("open bridge: %v", err)
		}
		defer closer.Close()
		if bridge.Store == nil || bridge.Creatures == nil || bridge.Router == nil || bridge.Locks == nil {
			t.Fatalf("bridge not fully wired: %+v", bridge)
		}
	})

	t.Run("foundry without creature index", func(t *testing.T) {
		bridge, closer, err := openBridge(Config{Host: HostFoundry, FoundryURL: "ws://localhost:31415/bridge"})
		if err != nil {
			t.Fatalf("open bridge: %v", err)
		}
		defer closer.Close()
		if bridge.Store == nil || bridge.Creatures != nil {
			t.Fatalf("expected foundry store without creature index: %+v", bridge)
		}
	})

	t.Run("foundry requires ws url", func(t *testing.T) {
		if _, _, err := openBridge(Config{Host: HostFoundry, FoundryURL: "http://localhost"}); err == nil {
			t.Fatal("expected error for non-websocket url")
		}
	})

	t.Run("unknown host", func(t *testing.T) {
		_, _, err := openBridge(Config{Host: "roll20"})
		if err == nil || !strings.Contains(err.Error(), "not supported") {
			t.Fatalf("err = %v, want unsupported host", err)
		}
	})
}
