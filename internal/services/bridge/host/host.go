// Package host defines how the bridge reads and writes native records held
// by a game host. Implementations live in the storage and foundry packages.
package host

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"github.com/louisbranch/vttbridge/internal/platform/pagination"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
)

// DefaultPageSize bounds listings that do not ask for a size.
const DefaultPageSize = 100

// ListOptions narrows an actor listing.
type ListOptions struct {
	// Filter is an AIP-160 expression over id, name, type, system, updated_at.
	Filter string
	// Type keeps only actors of one type when set.
	Type     string
	PageSize int
}

// Store reads native actor records and persists updates to them.
type Store interface {
	// Get resolves an actor by id, then by case-insensitive name.
	Get(ctx context.Context, identifier string) (*native.Record, error)
	List(ctx context.Context, opts ListOptions) ([]*native.Record, error)
	// Save persists an exported record. Hosts that apply diffs use patch;
	// hosts that store whole documents use record.
	Save(ctx context.Context, record *native.Record, patch character.Patch) error
}

// CreatureQuery narrows a creature index search.
type CreatureQuery struct {
	// Filter is an AIP-160 expression over the creature index columns.
	Filter    string
	HasSpells *bool
	PageSize  int
}

// CreatureIndex persists and searches compendium creature entries.
type CreatureIndex interface {
	PutCreatures(ctx context.Context, entries []dsa5.CreatureEntry) error
	SearchCreatures(ctx context.Context, query CreatureQuery) ([]dsa5.CreatureEntry, error)
}

// NotFound builds the error a store returns for an unknown identifier.
func NotFound(identifier string) error {
	return apperrors.WithMetadata(
		apperrors.CodeCharacterNotFound,
		"character "+identifier+" not found",
		map[string]string{"Identifier": identifier},
	)
}

// Failure wraps cause under code and exposes its text as the Reason shown
// to clients.
func Failure(code apperrors.Code, message string, cause error) error {
	return apperrors.WrapWithMetadata(code, message, map[string]string{"Reason": cause.Error()}, cause)
}

// NormalizeIdentifier trims an identifier and rejects empty ones.
func NormalizeIdentifier(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", apperrors.New(apperrors.CodeCharacterIDRequired, "character identifier is required")
	}
	return identifier, nil
}

// PageSize applies the default and upper bound to a requested page size.
func PageSize(requested int) int {
	return pagination.ClampPageSize(requested, pagination.PageSizeConfig{
		Default: DefaultPageSize,
		Max:     DefaultPageSize,
	})
}
