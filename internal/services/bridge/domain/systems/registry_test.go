package systems

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

// fakeAdapter records calls and can be told to panic.
type fakeAdapter struct {
	system  character.System
	panics  bool
	imports int
}

func (f *fakeAdapter) System() character.System { return f.system }

func (f *fakeAdapter) Import(r *native.Record) character.ImportResult {
	f.imports++
	if f.panics {
		panic("boom")
	}
	return character.ImportResult{Success: true, Character: &character.Character{ID: r.ID(), Name: r.Name(), System: f.system}}
}

func (f *fakeAdapter) Export(*native.Record, character.Update) character.ExportResult {
	if f.panics {
		panic("boom")
	}
	return character.ExportResult{Success: true, UpdatedFields: []string{"fake"}}
}

func (f *fakeAdapter) Patch(*native.Record, character.Update) (character.Patch, character.ExportResult) {
	if f.panics {
		panic("boom")
	}
	return character.Patch{Actor: map[string]any{"a": 1}}, character.ExportResult{Success: true}
}

func (f *fakeAdapter) Validate(character.Update) character.ValidationResult {
	return character.ValidationResult{Valid: true}
}

func (f *fakeAdapter) Summarize(*native.Record, string) string {
	if f.panics {
		panic("boom")
	}
	return "fake summary"
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&fakeAdapter{system: character.SystemDSA5}); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := registry.Register(&fakeAdapter{system: character.SystemDSA5})
	if !errors.Is(err, ErrAdapterAlreadyRegistered) {
		t.Fatalf("expected ErrAdapterAlreadyRegistered, got %v", err)
	}
	if err := registry.Register(nil); !errors.Is(err, ErrAdapterRequired) {
		t.Fatalf("expected ErrAdapterRequired, got %v", err)
	}

	var nilRegistry *Registry
	if err := nilRegistry.Register(&fakeAdapter{}); !errors.Is(err, ErrRegistryNil) {
		t.Fatalf("expected ErrRegistryNil, got %v", err)
	}
	if _, ok := nilRegistry.Get(character.SystemDSA5); ok {
		t.Fatal("nil registry should not resolve adapters")
	}
}

func TestDefaultRegistrySystems(t *testing.T) {
	got := NewDefaultRegistry().Systems()
	want := []character.System{character.SystemDnD5e, character.SystemDSA5, character.SystemPF2e}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Systems() = %v, want %v", got, want)
	}
}
