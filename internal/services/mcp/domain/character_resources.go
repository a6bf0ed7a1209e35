package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const charactersURIPrefix = "characters://"

// CharacterListPayload is the JSON body of the character list resource.
type CharacterListPayload struct {
	Characters []character.Character `json:"characters"`
}

// CharacterListResource defines the readable listing of imported characters.
func CharacterListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "character_list",
		Title:       "Characters",
		Description: "Every character, NPC and creature actor the bridge can import, as canonical characters",
		MIMEType:    "application/json",
		URI:         charactersURIPrefix + "list",
	}
}

// CharacterResourceTemplate defines the readable form of one character.
func CharacterResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "character",
		Title:       "Character",
		Description: "One canonical character. URI format: characters://{identifier} where identifier is an actor id or name",
		MIMEType:    "application/json",
		URITemplate: charactersURIPrefix + "{identifier}",
	}
}

// CharacterResourceURI returns the resource URI for an actor identifier.
func CharacterResourceURI(identifier string) string {
	if strings.TrimSpace(identifier) == "" {
		return ""
	}
	return charactersURIPrefix + url.PathEscape(identifier)
}

// parseCharacterURI extracts the identifier from characters://{identifier}.
func parseCharacterURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, charactersURIPrefix)
	if !ok {
		return "", fmt.Errorf("URI must start with %q", charactersURIPrefix)
	}
	identifier, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("decode identifier: %w", err)
	}
	if strings.TrimSpace(identifier) == "" {
		return "", fmt.Errorf("character identifier is required")
	}
	return identifier, nil
}

// CharacterListResourceHandler returns every importable actor.
func CharacterListResourceHandler(b Bridge) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if b.Store == nil {
			return nil, fmt.Errorf("character store is not configured")
		}
		uri := CharacterListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		runCtx, cancel := context.WithTimeout(ctx, hostLongCallTimeout)
		defer cancel()

		records, err := b.Store.List(runCtx, host.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("character list failed: %s", apperrors.Localize(err, b.locale("")))
		}
		payload := CharacterListPayload{Characters: b.Router.ImportAll(records)}
		return jsonResource(uri, payload)
	}
}

// CharacterResourceHandler returns one canonical character.
func CharacterResourceHandler(b Bridge) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if b.Store == nil {
			return nil, fmt.Errorf("character store is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("character identifier is required; use URI format characters://{identifier}")
		}
		uri := req.Params.URI
		identifier, err := parseCharacterURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse character URI: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, hostCallTimeout)
		defer cancel()

		record, err := b.Store.Get(runCtx, identifier)
		if apperrors.HasCode(err, apperrors.CodeCharacterNotFound) {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		if err != nil {
			return nil, fmt.Errorf("character read failed: %s", apperrors.Localize(err, b.locale("")))
		}
		ch, err := b.importActor(record)
		if err != nil {
			return nil, fmt.Errorf("character read failed: %s", apperrors.Localize(err, b.locale("")))
		}
		return jsonResource(uri, ch)
	}
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
