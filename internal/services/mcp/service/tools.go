package service

import (
	"github.com/louisbranch/vttbridge/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registration adds one group of tools or resources to a server.
type registration struct {
	name     string
	register func(*mcp.Server, domain.Bridge)
}

// registrations lists what New installs for bridge. The creature search
// tool is only offered when the host keeps a creature index.
func registrations(bridge domain.Bridge) []registration {
	out := []registration{
		{name: "character-tools", register: registerCharacterTools},
		{name: "character-resources", register: registerCharacterResources},
	}
	if bridge.Creatures != nil {
		out = append(out, registration{name: "creature-tools", register: registerCreatureTools})
	}
	return out
}

func registerCharacterTools(server *mcp.Server, bridge domain.Bridge) {
	mcp.AddTool(server, domain.CharacterGetTool(), domain.CharacterGetHandler(bridge))
	mcp.AddTool(server, domain.CharacterListTool(), domain.CharacterListHandler(bridge))
	mcp.AddTool(server, domain.CharacterSummaryTool(), domain.CharacterSummaryHandler(bridge))
	mcp.AddTool(server, domain.CharacterUpdateTool(), domain.CharacterUpdateHandler(bridge))
	mcp.AddTool(server, domain.CharacterUpdatePreviewTool(), domain.CharacterUpdatePreviewHandler(bridge))
}

func registerCreatureTools(server *mcp.Server, bridge domain.Bridge) {
	mcp.AddTool(server, domain.CreatureSearchTool(), domain.CreatureSearchHandler(bridge))
}

func registerCharacterResources(server *mcp.Server, bridge domain.Bridge) {
	server.AddResource(domain.CharacterListResource(), domain.CharacterListResourceHandler(bridge))
	server.AddResourceTemplate(domain.CharacterResourceTemplate(), domain.CharacterResourceHandler(bridge))
}
