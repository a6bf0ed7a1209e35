package dsa5

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
)

// Validate checks an update's shape without a record. It is advisory:
// Export performs its own checks regardless.
func Validate(u character.Update) character.ValidationResult {
	var errs []string

	if strings.TrimSpace(u.ID) == "" {
		errs = append(errs, "Missing character ID")
	}

	keys := make([]string, 0, len(u.Attributes))
	for key := range u.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := LookupAttribute(key); !ok {
			errs = append(errs, fmt.Sprintf("Invalid attribute: %s", key))
		}
	}

	if h := u.Health; h != nil {
		if h.Current != nil && *h.Current < 0 {
			errs = append(errs, "Health current cannot be negative")
		}
		if h.Max != nil && *h.Max <= 0 {
			errs = append(errs, "Health max must be positive")
		}
	}

	for _, r := range u.Resources {
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, "Resource name is required")
			continue
		}
		if r.Current != nil && *r.Current < 0 {
			errs = append(errs, fmt.Sprintf("Resource current cannot be negative: %s", r.Name))
		}
		if r.Max != nil && *r.Max < 0 {
			errs = append(errs, fmt.Sprintf("Resource max cannot be negative: %s", r.Name))
		}
	}

	for _, s := range u.Skills {
		if strings.TrimSpace(s.ID) == "" {
			errs = append(errs, "Skill id is required")
			continue
		}
		if s.Value != nil && *s.Value < 0 {
			errs = append(errs, fmt.Sprintf("Skill value cannot be negative: %s", s.ID))
		}
	}

	return character.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
