package dsa5

import (
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

// Adapter exposes the DSA5 conversions to the system registry.
type Adapter struct{}

// NewAdapter returns the DSA5 adapter.
func NewAdapter() Adapter {
	return Adapter{}
}

// System returns the DSA5 system tag.
func (Adapter) System() character.System {
	return character.SystemDSA5
}

// Import converts an actor to a canonical character.
func (Adapter) Import(r *native.Record) character.ImportResult {
	return Import(r)
}

// Export applies an update to the actor in place.
func (Adapter) Export(r *native.Record, u character.Update) character.ExportResult {
	return Export(r, u)
}

// Patch renders an update as dotted host paths without mutating r.
func (Adapter) Patch(r *native.Record, u character.Update) (character.Patch, character.ExportResult) {
	return BuildPatch(r, u)
}

// Validate checks an update without a record.
func (Adapter) Validate(u character.Update) character.ValidationResult {
	return Validate(u)
}

// Summarize renders a localized character sheet.
func (Adapter) Summarize(r *native.Record, locale string) string {
	return Summarize(r, locale)
}
