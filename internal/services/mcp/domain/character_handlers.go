package domain

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CharacterGetHandler reads one actor as a canonical character.
func CharacterGetHandler(b Bridge) mcp.ToolHandlerFor[CharacterGetInput, CharacterGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterGetInput) (*mcp.CallToolResult, CharacterGetResult, error) {
		inv, err := newToolInvocation(ctx, b.Metrics, CharacterGetTool().Name, hostCallTimeout)
		if err != nil {
			return nil, CharacterGetResult{}, err
		}
		defer inv.End()

		record, err := b.resolveActor(inv, input.Identifier)
		if err != nil {
			return nil, CharacterGetResult{}, inv.Fail(err, b.locale(""))
		}
		ch, err := b.importActor(record)
		if err != nil {
			return nil, CharacterGetResult{}, inv.Fail(err, b.locale(""))
		}
		return nil, CharacterGetResult{Character: *ch}, nil
	}
}

// CharacterListHandler lists actors with their detected system.
func CharacterListHandler(b Bridge) mcp.ToolHandlerFor[CharacterListInput, CharacterListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterListInput) (*mcp.CallToolResult, CharacterListResult, error) {
		inv, err := newToolInvocation(ctx, b.Metrics, CharacterListTool().Name, hostLongCallTimeout)
		if err != nil {
			return nil, CharacterListResult{}, err
		}
		defer inv.End()

		if b.Store == nil {
			return nil, CharacterListResult{}, fmt.Errorf("character store is not configured")
		}
		records, err := b.Store.List(inv.RunCtx, host.ListOptions{
			Filter:   input.Filter,
			Type:     input.Type,
			PageSize: input.PageSize,
		})
		if err != nil {
			return nil, CharacterListResult{}, inv.Fail(err, b.locale(""))
		}

		result := CharacterListResult{Characters: make([]character.Summary, 0, len(records))}
		for _, record := range records {
			result.Characters = append(result.Characters, character.Summary{
				ID:     record.ID(),
				Name:   record.Name(),
				Type:   record.Type(),
				System: b.Router.Detect(record),
			})
		}
		return nil, result, nil
	}
}

// CharacterSummaryHandler renders a localized character sheet.
func CharacterSummaryHandler(b Bridge) mcp.ToolHandlerFor[CharacterSummaryInput, CharacterSummaryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterSummaryInput) (*mcp.CallToolResult, CharacterSummaryResult, error) {
		inv, err := newToolInvocation(ctx, b.Metrics, CharacterSummaryTool().Name, hostCallTimeout)
		if err != nil {
			return nil, CharacterSummaryResult{}, err
		}
		defer inv.End()

		locale := b.locale(input.Locale)
		record, err := b.resolveActor(inv, input.Identifier)
		if err != nil {
			return nil, CharacterSummaryResult{}, inv.Fail(err, locale)
		}

		result := CharacterSummaryResult{
			ID:      record.ID(),
			Name:    record.Name(),
			System:  b.Router.Detect(record),
			Summary: b.Router.Summarize(record, locale),
		}
		return textResult(result.Summary), result, nil
	}
}

// CharacterUpdateHandler validates, applies and saves a character update.
// Updates to the same actor run one at a time.
func CharacterUpdateHandler(b Bridge) mcp.ToolHandlerFor[CharacterUpdateInput, CharacterUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterUpdateInput) (*mcp.CallToolResult, CharacterUpdateResult, error) {
		inv, err := newToolInvocation(ctx, b.Metrics, CharacterUpdateTool().Name, hostCallTimeout)
		if err != nil {
			return nil, CharacterUpdateResult{}, err
		}
		defer inv.End()

		result, exported, err := b.applyUpdate(inv, input)
		if err != nil {
			return nil, CharacterUpdateResult{}, inv.Fail(err, b.locale(input.Locale))
		}

		NotifyResourceUpdates(ctx, b.Notify, CharacterListResource().URI, CharacterResourceURI(result.ID))
		return textResult(updateMessage(result.Name, exported, result.Validation)), result, nil
	}
}

// CharacterUpdatePreviewHandler shows what an update would write without saving.
func CharacterUpdatePreviewHandler(b Bridge) mcp.ToolHandlerFor[CharacterUpdateInput, CharacterUpdatePreviewResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterUpdateInput) (*mcp.CallToolResult, CharacterUpdatePreviewResult, error) {
		inv, err := newToolInvocation(ctx, b.Metrics, CharacterUpdatePreviewTool().Name, hostCallTimeout)
		if err != nil {
			return nil, CharacterUpdatePreviewResult{}, err
		}
		defer inv.End()

		record, err := b.resolveActor(inv, input.Identifier)
		if err != nil {
			return nil, CharacterUpdatePreviewResult{}, inv.Fail(err, b.locale(input.Locale))
		}

		update := input.update(record.ID())
		validation := b.Router.Validate(record, update)
		patch, exported := b.Router.Patch(record, update)
		return nil, CharacterUpdatePreviewResult{
			ID:            record.ID(),
			Name:          record.Name(),
			Valid:         validation.Valid,
			Validation:    validation.Errors,
			Patch:         patch,
			UpdatedFields: exported.UpdatedFields,
			Warnings:      exported.Errors,
		}, nil
	}
}

func (b Bridge) applyUpdate(inv *toolInvocation, input CharacterUpdateInput) (CharacterUpdateResult, character.ExportResult, error) {
	record, err := b.resolveActor(inv, input.Identifier)
	if err != nil {
		return CharacterUpdateResult{}, character.ExportResult{}, err
	}
	actorID := record.ID()

	unlock, err := b.Locks.Lock(inv.RunCtx, actorID)
	if err != nil {
		return CharacterUpdateResult{}, character.ExportResult{}, host.Failure(apperrors.CodeCharacterUpdateFailed, "wait for actor lock", err)
	}
	defer unlock()

	// Read again under the lock so the update applies to the latest document.
	record, err = b.Store.Get(inv.RunCtx, actorID)
	if err != nil {
		return CharacterUpdateResult{}, character.ExportResult{}, err
	}

	// Validation is advisory. Export skips what it cannot apply and decides
	// whether anything was written.
	update := input.update(actorID)
	validation := b.Router.Validate(record, update)

	patch, _ := b.Router.Patch(record, update)
	exported := b.Router.Export(record, update)
	if !exported.Success {
		return CharacterUpdateResult{}, exported, reasonError(apperrors.CodeCharacterUpdateFailed, "apply update", exported.Errors)
	}
	if err := b.Store.Save(inv.RunCtx, record, patch); err != nil {
		return CharacterUpdateResult{}, exported, err
	}

	return CharacterUpdateResult{
		ID:            actorID,
		Name:          record.Name(),
		Success:       true,
		UpdatedFields: exported.UpdatedFields,
		Warnings:      exported.Errors,
		Validation:    validation.Errors,
	}, exported, nil
}

// resolveActor loads an actor and checks that its system has an adapter.
func (b Bridge) resolveActor(inv *toolInvocation, identifier string) (*native.Record, error) {
	if b.Store == nil {
		return nil, fmt.Errorf("character store is not configured")
	}
	identifier, err := host.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	record, err := b.Store.Get(inv.RunCtx, identifier)
	if err != nil {
		return nil, err
	}
	system, ok := b.Router.Supports(record)
	inv.SetSystem(system)
	if !ok {
		return nil, apperrors.WithMetadata(
			apperrors.CodeUnsupportedGameSystem,
			"unsupported game system "+string(system),
			map[string]string{"System": string(system)},
		)
	}
	return record, nil
}

func (b Bridge) importActor(record *native.Record) (*character.Character, error) {
	result := b.Router.Import(record)
	if !result.Success || result.Character == nil {
		return nil, reasonError(apperrors.CodeCharacterInvalidRecord, "import actor", result.Errors)
	}
	return result.Character, nil
}

func reasonError(code apperrors.Code, message string, reasons []string) error {
	reason := strings.Join(reasons, "; ")
	return apperrors.WithMetadata(code, message+": "+reason, map[string]string{"Reason": reason})
}

// updateMessage renders the chat text for an applied update.
func updateMessage(name string, result character.ExportResult, validation []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Successfully updated %s!\n\nUpdated fields:\n", name)
	if len(result.UpdatedFields) == 0 {
		sb.WriteString("None")
	} else {
		sb.WriteString("- " + strings.Join(result.UpdatedFields, "\n- "))
	}
	if warnings := result.Warnings(); warnings != "" {
		sb.WriteString("\n\n" + warnings)
	}
	if len(validation) > 0 {
		sb.WriteString("\n\nValidation:\n- " + strings.Join(validation, "\n- "))
	}
	return sb.String()
}
