package character

import "strings"

// ImportResult is the outcome of converting a native record.
type ImportResult struct {
	Success   bool       `json:"success"`
	Character *Character `json:"character,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
}

// ExportResult is the outcome of applying an update to a native record.
//
// Success is true when at least one field group changed or no errors were
// recorded. An update that changes nothing and only produced unknown-key
// errors is a failure; one that changed something is a success with warnings.
type ExportResult struct {
	Success       bool     `json:"success"`
	UpdatedFields []string `json:"updatedFields"`
	Errors        []string `json:"errors,omitempty"`
}

// ValidationResult is the outcome of the advisory update validator.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Patch is an update rendered as dotted host paths.
type Patch struct {
	// Actor maps dotted actor paths to their new values.
	Actor map[string]any `json:"actor,omitempty"`
	// Items maps item ids to dotted item paths and new values.
	Items map[string]map[string]any `json:"items,omitempty"`
}

// IsEmpty reports whether the patch writes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Actor) == 0 && len(p.Items) == 0
}

// ImportFailure builds a failed import result.
func ImportFailure(errs ...string) ImportResult {
	return ImportResult{Success: false, Errors: errs}
}

// ExportFailure builds a failed export result.
func ExportFailure(errs ...string) ExportResult {
	return ExportResult{Success: false, UpdatedFields: []string{}, Errors: errs}
}

// Warnings renders non-fatal export errors as text appended to a response.
func (r ExportResult) Warnings() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return "Warnings:\n- " + strings.Join(r.Errors, "\n- ")
}
