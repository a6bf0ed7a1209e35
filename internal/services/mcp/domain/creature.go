package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreatureSearchInput represents the MCP tool input for searching the creature index.
type CreatureSearchInput struct {
	Filter    string `json:"filter,omitempty" jsonschema:"optional AIP-160 filter, e.g. level >= 3 AND size = \"large\""`
	HasSpells *bool  `json:"has_spells,omitempty" jsonschema:"optional spellcaster flag"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum number of creatures to return (default 100)"`
}

// CreatureSearchResult represents the MCP tool output for a creature search.
type CreatureSearchResult struct {
	Creatures []dsa5.CreatureEntry `json:"creatures" jsonschema:"matching compendium creatures"`
}

// CreatureSearchTool defines the MCP tool schema for searching the creature index.
func CreatureSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "creature_search",
		Description: "Searches indexed DSA5 compendium creatures by name, type, pack, species, culture, size, rarity, level, experience, life_points, melee_defense, ranged_defense and spellcasting",
	}
}

// CreatureSearchHandler executes a creature index search.
func CreatureSearchHandler(b Bridge) mcp.ToolHandlerFor[CreatureSearchInput, CreatureSearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreatureSearchInput) (*mcp.CallToolResult, CreatureSearchResult, error) {
		inv, err := newToolInvocation(ctx, b.Metrics, CreatureSearchTool().Name, hostCallTimeout)
		if err != nil {
			return nil, CreatureSearchResult{}, err
		}
		defer inv.End()

		if b.Creatures == nil {
			return nil, CreatureSearchResult{}, fmt.Errorf("creature index is not configured")
		}
		creatures, err := b.Creatures.SearchCreatures(inv.RunCtx, host.CreatureQuery{
			Filter:    input.Filter,
			HasSpells: input.HasSpells,
			PageSize:  input.PageSize,
		})
		if err != nil {
			return nil, CreatureSearchResult{}, inv.Fail(err, b.locale(""))
		}
		if creatures == nil {
			creatures = []dsa5.CreatureEntry{}
		}
		return nil, CreatureSearchResult{Creatures: creatures}, nil
	}
}
