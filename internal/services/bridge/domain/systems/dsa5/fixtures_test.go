package dsa5

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

// loadActor reads a fresh copy of a testdata actor.
func loadActor(t *testing.T, name string) *native.Record {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	r, err := native.Parse(data)
	if err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	return r
}

func alrik(t *testing.T) *native.Record {
	t.Helper()
	return loadActor(t, "alrik.json")
}

// minimalActor has only the required blocks.
func minimalActor(counter, max int) *native.Record {
	r := native.MustParse(`{"_id":"m1","name":"Minimal","type":"npc","system":{"characteristics":{},"status":{"wounds":{}}}}`)
	_ = r.Set(PathWoundsValue, counter)
	_ = r.Set(PathWoundsMax, max)
	return r
}
