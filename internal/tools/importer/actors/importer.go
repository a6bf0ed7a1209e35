package actorimporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
)

// actorDocument is one parsed actor and the file it came from.
type actorDocument struct {
	source string
	record *native.Record
}

// packPayload is the on-disk shape of one compendium pack.
type packPayload struct {
	Label     string            `json:"label"`
	Documents []json.RawMessage `json:"documents"`
}

// listJSONFiles returns the .json files directly under dir, sorted by name.
func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func readActorDir(dir string) ([]actorDocument, error) {
	names, err := listJSONFiles(dir)
	if err != nil {
		return nil, err
	}
	var actors []actorDocument
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs, err := splitDocuments(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		for i, doc := range docs {
			record, err := native.Parse(doc)
			if err != nil {
				return nil, fmt.Errorf("decode %s[%d]: %w", name, i, err)
			}
			if strings.TrimSpace(record.ID()) == "" {
				return nil, fmt.Errorf("%s[%d]: actor _id is required", name, i)
			}
			actors = append(actors, actorDocument{source: name, record: record})
		}
	}
	return actors, nil
}

// splitDocuments accepts a single JSON object or an array of objects.
func splitDocuments(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if trimmed[0] == '[' {
		var docs []json.RawMessage
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
	return []json.RawMessage{json.RawMessage(trimmed)}, nil
}

func readPackDir(dir string) ([]dsa5.PackDocuments, error) {
	names, err := listJSONFiles(dir)
	if err != nil {
		return nil, err
	}
	packs := make([]dsa5.PackDocuments, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var payload packPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

		packID := strings.TrimSuffix(name, filepath.Ext(name))
		label := strings.TrimSpace(payload.Label)
		if label == "" {
			label = packID
		}
		pack := dsa5.PackDocuments{Pack: dsa5.Pack{ID: packID, Label: label}}
		for i, doc := range payload.Documents {
			record, err := native.Parse(doc)
			if err != nil {
				return nil, fmt.Errorf("decode %s document %d: %w", name, i, err)
			}
			pack.Records = append(pack.Records, record)
		}
		packs = append(packs, pack)
	}
	return packs, nil
}
