// Package pf2e reserves the Pathfinder 2e adapter slot. Conversions are not
// implemented and every call reports so.
package pf2e

import (
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

const (
	importUnavailable  = "PF2e adapter not yet implemented"
	updateUnavailable  = "PF2e update adapter not yet implemented"
	summaryUnavailable = "PF2e character summaries not yet implemented"
)

// Adapter is the Pathfinder 2e placeholder.
type Adapter struct{}

// NewAdapter returns the Pathfinder 2e placeholder adapter.
func NewAdapter() Adapter {
	return Adapter{}
}

func (Adapter) System() character.System { return character.SystemPF2e }

func (Adapter) Import(*native.Record) character.ImportResult {
	return character.ImportFailure(importUnavailable)
}

func (Adapter) Export(*native.Record, character.Update) character.ExportResult {
	return character.ExportFailure(updateUnavailable)
}

func (Adapter) Patch(*native.Record, character.Update) (character.Patch, character.ExportResult) {
	return character.Patch{}, character.ExportFailure(updateUnavailable)
}

func (Adapter) Validate(character.Update) character.ValidationResult {
	return character.ValidationResult{Valid: false, Errors: []string{updateUnavailable}}
}

func (Adapter) Summarize(*native.Record, string) string {
	return summaryUnavailable
}
