package foundry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
)

// Querier sends one relay request.
type Querier interface {
	Query(ctx context.Context, method string, params any, out any) error
}

// Store reads and updates actors in a live Foundry world.
type Store struct {
	client Querier
}

// NewStore wraps a relay client as a host store.
func NewStore(client Querier) *Store {
	return &Store{client: client}
}

type getParams struct {
	CharacterName string `json:"characterName"`
}

type listParams struct {
	Type string `json:"type,omitempty"`
}

type itemUpdate map[string]any

type updateParams struct {
	ActorID     string         `json:"actorId"`
	UpdateData  map[string]any `json:"updateData,omitempty"`
	ItemUpdates []itemUpdate   `json:"itemUpdates,omitempty"`
}

// Get asks the relay for one actor by id or name.
func (s *Store) Get(ctx context.Context, identifier string) (*native.Record, error) {
	identifier, err := host.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.client.Query(ctx, MethodGetCharacterInfo, getParams{CharacterName: identifier}, &raw); err != nil {
		if isRemoteNotFound(err) {
			return nil, host.NotFound(identifier)
		}
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, host.NotFound(identifier)
	}
	record, err := native.Parse(raw)
	if err != nil {
		return nil, host.Failure(apperrors.CodeCharacterInvalidRecord, "decode actor", err)
	}
	return record, nil
}

// List returns the world's actors, optionally of one type. The relay does
// not evaluate filter expressions.
func (s *Store) List(ctx context.Context, opts host.ListOptions) ([]*native.Record, error) {
	if strings.TrimSpace(opts.Filter) != "" {
		return nil, apperrors.WithMetadata(
			apperrors.CodeInvalidFilter,
			"foundry host does not support filters",
			map[string]string{"Filter": opts.Filter},
		)
	}
	var raw []json.RawMessage
	if err := s.client.Query(ctx, MethodListActors, listParams{Type: strings.TrimSpace(opts.Type)}, &raw); err != nil {
		return nil, err
	}

	limit := host.PageSize(opts.PageSize)
	records := make([]*native.Record, 0, min(len(raw), limit))
	for i, doc := range raw {
		if len(records) == limit {
			break
		}
		record, err := native.Parse(doc)
		if err != nil {
			return nil, host.Failure(apperrors.CodeCharacterInvalidRecord, fmt.Sprintf("decode actor %d", i), err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Save sends the patch to the relay. Foundry applies dotted paths itself, so
// the mutated record is only used for its id.
func (s *Store) Save(ctx context.Context, record *native.Record, patch character.Patch) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	actorID, err := host.NormalizeIdentifier(record.ID())
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	params := updateParams{ActorID: actorID, UpdateData: patch.Actor}
	itemIDs := make([]string, 0, len(patch.Items))
	for itemID := range patch.Items {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Strings(itemIDs)
	for _, itemID := range itemIDs {
		update := itemUpdate{"_id": itemID}
		for path, value := range patch.Items[itemID] {
			update[path] = value
		}
		params.ItemUpdates = append(params.ItemUpdates, update)
	}
	if err := s.client.Query(ctx, MethodUpdateActor, params, nil); err != nil {
		if isRemoteNotFound(err) {
			return host.NotFound(actorID)
		}
		return host.Failure(apperrors.CodeCharacterUpdateFailed, "update actor", err)
	}
	return nil
}

var _ host.Store = (*Store)(nil)
