package domain

import (
	"strings"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
	"github.com/louisbranch/vttbridge/internal/services/mcp/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Bridge bundles the collaborators shared by the character tools.
type Bridge struct {
	Store     host.Store
	Creatures host.CreatureIndex
	Router    *systems.Router
	Locks     *KeyedMutex
	// Locale renders summaries and error messages when a call names none.
	Locale  string
	Notify  ResourceUpdateNotifier
	Metrics *metrics.Metrics
}

func (b Bridge) locale(requested string) string {
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested
	}
	return b.Locale
}

// CharacterGetInput represents the MCP tool input for reading a character.
type CharacterGetInput struct {
	Identifier string `json:"identifier" jsonschema:"actor id or name (case-insensitive)"`
}

// CharacterGetResult represents the MCP tool output for reading a character.
type CharacterGetResult struct {
	Character character.Character `json:"character" jsonschema:"canonical character"`
}

// CharacterListInput represents the MCP tool input for listing actors.
type CharacterListInput struct {
	Filter   string `json:"filter,omitempty" jsonschema:"optional AIP-160 filter over id, name, type, system, updated_at"`
	Type     string `json:"type,omitempty" jsonschema:"optional actor type (character, npc, creature)"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"maximum number of actors to return (default 100)"`
}

// CharacterListResult represents the MCP tool output for listing actors.
type CharacterListResult struct {
	Characters []character.Summary `json:"characters" jsonschema:"actor summaries"`
}

// CharacterSummaryInput represents the MCP tool input for a text summary.
type CharacterSummaryInput struct {
	Identifier string `json:"identifier" jsonschema:"actor id or name (case-insensitive)"`
	Locale     string `json:"locale,omitempty" jsonschema:"optional summary language such as de-DE or en-US"`
}

// CharacterSummaryResult represents the MCP tool output for a text summary.
type CharacterSummaryResult struct {
	ID      string           `json:"id" jsonschema:"actor identifier"`
	Name    string           `json:"name" jsonschema:"actor name"`
	System  character.System `json:"system" jsonschema:"detected game system"`
	Summary string           `json:"summary" jsonschema:"Markdown character sheet"`
}

// CharacterUpdateInput represents the MCP tool input for changing a character.
type CharacterUpdateInput struct {
	Identifier string                     `json:"identifier" jsonschema:"actor id or name (case-insensitive)"`
	Attributes map[string]int             `json:"attributes,omitempty" jsonschema:"attribute codes to absolute values, e.g. MU or KK"`
	Health     *character.HealthUpdate    `json:"health,omitempty" jsonschema:"health change; delta wins over current"`
	Resources  []character.ResourceUpdate `json:"resources,omitempty" jsonschema:"resource pool changes such as asp or kap"`
	Skills     []character.SkillUpdate    `json:"skills,omitempty" jsonschema:"skill changes by item id"`
	Locale     string                     `json:"locale,omitempty" jsonschema:"optional language for error messages"`
}

// update builds the canonical update for an actor id.
func (in CharacterUpdateInput) update(actorID string) character.Update {
	return character.Update{
		ID:         actorID,
		Attributes: in.Attributes,
		Health:     in.Health,
		Resources:  in.Resources,
		Skills:     in.Skills,
	}
}

// CharacterUpdateResult represents the MCP tool output for a character change.
type CharacterUpdateResult struct {
	ID            string   `json:"id" jsonschema:"actor identifier"`
	Name          string   `json:"name" jsonschema:"actor name"`
	Success       bool     `json:"success" jsonschema:"whether the update applied"`
	UpdatedFields []string `json:"updated_fields" jsonschema:"changed field groups"`
	Warnings      []string `json:"warnings,omitempty" jsonschema:"keys that were skipped"`
	Validation    []string `json:"validation,omitempty" jsonschema:"advisory validation problems"`
}

// CharacterUpdatePreviewResult represents the MCP tool output for a dry run.
type CharacterUpdatePreviewResult struct {
	ID            string          `json:"id" jsonschema:"actor identifier"`
	Name          string          `json:"name" jsonschema:"actor name"`
	Valid         bool            `json:"valid" jsonschema:"whether the update passes validation"`
	Validation    []string        `json:"validation_errors,omitempty" jsonschema:"validation problems"`
	Patch         character.Patch `json:"patch" jsonschema:"dotted host paths the update would write"`
	UpdatedFields []string        `json:"updated_fields" jsonschema:"field groups the update would change"`
	Warnings      []string        `json:"warnings,omitempty" jsonschema:"keys the update would skip"`
}

// CharacterGetTool defines the MCP tool schema for reading a character.
func CharacterGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_get",
		Description: "Reads an actor and returns it as a system-agnostic character (attributes, health as remaining capacity, resources, skills)",
	}
}

// CharacterListTool defines the MCP tool schema for listing actors.
func CharacterListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_list",
		Description: "Lists actors with their detected game system",
	}
}

// CharacterSummaryTool defines the MCP tool schema for a text summary.
func CharacterSummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_summary",
		Description: "Renders a character sheet as Markdown (German by default for DSA5: Eigenschaften, LeP, AsP, KaP, top talents)",
	}
}

// CharacterUpdateTool defines the MCP tool schema for changing a character.
func CharacterUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_update",
		Description: "Updates attributes, health, resources and skills. Supports absolute values and deltas (e.g. health delta -3 for damage)",
	}
}

// CharacterUpdatePreviewTool defines the MCP tool schema for a dry run.
func CharacterUpdatePreviewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_update_preview",
		Description: "Validates an update and shows the host patch it would write, without saving",
	}
}
