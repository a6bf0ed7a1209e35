package systems

import (
	"fmt"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

// Router dispatches conversions to the adapter for a record's system.
//
// Every method returns a result value. An unregistered system yields an
// "Unsupported game system" failure and an adapter panic is converted into a
// failed result instead of escaping to the caller.
type Router struct {
	registry *Registry
}

// NewRouter creates a router over a registry. A nil registry routes every
// record to the unsupported branch.
func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// Detect returns the system tag for a record.
func (rt *Router) Detect(r *native.Record) character.System {
	return Detect(r)
}

// Supports reports whether a record's system has a registered adapter.
func (rt *Router) Supports(r *native.Record) (character.System, bool) {
	_, system, ok := rt.adapterFor(r)
	return system, ok
}

// Import converts a record to a canonical character.
func (rt *Router) Import(r *native.Record) (result character.ImportResult) {
	adapter, system, ok := rt.adapterFor(r)
	if !ok {
		return character.ImportFailure(unsupported(system))
	}
	defer recoverInto(func(msg string) { result = character.ImportFailure(msg) })
	return adapter.Import(r)
}

// Export applies an update to a record in place.
func (rt *Router) Export(r *native.Record, u character.Update) (result character.ExportResult) {
	adapter, system, ok := rt.adapterFor(r)
	if !ok {
		return character.ExportFailure(unsupported(system))
	}
	defer recoverInto(func(msg string) { result = character.ExportFailure(msg) })
	return adapter.Export(r, u)
}

// Patch renders an update as host paths without mutating the record.
func (rt *Router) Patch(r *native.Record, u character.Update) (patch character.Patch, result character.ExportResult) {
	adapter, system, ok := rt.adapterFor(r)
	if !ok {
		return character.Patch{}, character.ExportFailure(unsupported(system))
	}
	defer recoverInto(func(msg string) {
		patch = character.Patch{}
		result = character.ExportFailure(msg)
	})
	return adapter.Patch(r, u)
}

// Validate checks an update with the rules of the record's system.
func (rt *Router) Validate(r *native.Record, u character.Update) (result character.ValidationResult) {
	adapter, system, ok := rt.adapterFor(r)
	if !ok {
		return character.ValidationResult{Valid: false, Errors: []string{unsupported(system)}}
	}
	defer recoverInto(func(msg string) {
		result = character.ValidationResult{Valid: false, Errors: []string{msg}}
	})
	return adapter.Validate(u)
}

// Summarize renders a localized text report for a record.
func (rt *Router) Summarize(r *native.Record, locale string) (summary string) {
	adapter, system, ok := rt.adapterFor(r)
	if !ok {
		return unsupported(system)
	}
	defer recoverInto(func(msg string) { summary = "Error: " + msg })
	return adapter.Summarize(r, locale)
}

// ImportAll converts every actor-typed record, dropping failed imports.
func (rt *Router) ImportAll(records []*native.Record) []character.Character {
	characters := make([]character.Character, 0, len(records))
	for _, r := range records {
		if r == nil || !r.IsActor() {
			continue
		}
		result := rt.Import(r)
		if result.Success && result.Character != nil {
			characters = append(characters, *result.Character)
		}
	}
	return characters
}

func (rt *Router) adapterFor(r *native.Record) (Adapter, character.System, bool) {
	system := Detect(r)
	if rt == nil {
		return nil, system, false
	}
	adapter, ok := rt.registry.Get(system)
	return adapter, system, ok
}

func unsupported(system character.System) string {
	return fmt.Sprintf("Unsupported game system: %s", system)
}

// recoverInto converts a panic into a failure message for set.
func recoverInto(set func(msg string)) {
	if p := recover(); p != nil {
		set(fmt.Sprintf("Internal adapter error: %v", p))
	}
}
