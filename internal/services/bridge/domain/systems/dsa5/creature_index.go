package dsa5

import (
	"strings"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/tidwall/gjson"
)

// Creature index defaults for fields a compendium entry does not carry.
const (
	defaultCreatureSpecies    = "Unbekannt"
	defaultCreatureCulture    = "Keine"
	defaultCreatureSize       = "medium"
	defaultCreatureLifePoints = 1
	defaultCreatureDefense    = 10
)

// Pack identifies the compendium an actor was read from.
type Pack struct {
	ID    string
	Label string
}

// CreatureEntry is the searchable projection of one compendium actor.
type CreatureEntry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Pack          string   `json:"pack"`
	PackLabel     string   `json:"packLabel"`
	Level         int      `json:"level"`
	Species       string   `json:"species"`
	Culture       string   `json:"culture"`
	Experience    int      `json:"experience"`
	Size          string   `json:"size"`
	LifePoints    int      `json:"lifePoints"`
	MeleeDefense  int      `json:"meleeDefense"`
	RangedDefense int      `json:"rangedDefense"`
	HasSpells     bool     `json:"hasSpells"`
	Traits        []string `json:"traits"`
	Rarity        string   `json:"rarity,omitempty"`
	Description   string   `json:"description,omitempty"`
	Img           string   `json:"img,omitempty"`
}

// IndexCreature projects one actor into a creature entry. Non-actor
// documents report false.
func IndexCreature(r *native.Record, pack Pack) (CreatureEntry, bool) {
	if r == nil || !r.IsActor() {
		return CreatureEntry{}, false
	}

	entry := CreatureEntry{
		ID:         r.ID(),
		Name:       r.Name(),
		Type:       r.Type(),
		Pack:       pack.ID,
		PackLabel:  pack.Label,
		Species:    defaultCreatureSpecies,
		Culture:    defaultCreatureCulture,
		Size:       defaultCreatureSize,
		LifePoints: defaultCreatureLifePoints,
		Traits:     []string{},
	}

	if v, ok := r.First(creatureLevelPaths...); ok {
		entry.Level = intAt(v)
	}
	if v, ok := r.First(creatureSpeciesPaths...); ok && v.String() != "" {
		entry.Species = v.String()
	}
	if v, ok := r.First(creatureCulturePaths...); ok && v.String() != "" {
		entry.Culture = v.String()
	}
	if v, ok := r.First(creatureExperiencePaths...); ok {
		entry.Experience = intAt(v)
	}
	if v, ok := r.First(creatureSizePaths...); ok {
		if english, known := SizeToEnglish(v.String()); known {
			entry.Size = english
		}
	}
	if v, ok := r.First(creatureLifePointsPaths...); ok {
		entry.LifePoints = intAt(v)
	}

	entry.MeleeDefense = defaultCreatureDefense
	if v, ok := r.First(creatureDefensePaths...); ok {
		entry.MeleeDefense = intAt(v)
	}
	entry.RangedDefense = entry.MeleeDefense
	if v, ok := r.First(creatureRangeDefensePath...); ok {
		entry.RangedDefense = intAt(v)
	}

	for _, path := range creatureSpellSignals {
		if truthy(r.Get(path)) {
			entry.HasSpells = true
			break
		}
	}

	if v, ok := r.First(creatureTraitsPaths...); ok && v.IsArray() {
		for _, trait := range v.Array() {
			if s := strings.TrimSpace(trait.String()); s != "" {
				entry.Traits = append(entry.Traits, s)
			}
		}
	}
	if v, ok := r.First(creatureRarityPaths...); ok {
		entry.Rarity = v.String()
	}
	if v, ok := r.First(creatureDescriptionPaths...); ok {
		entry.Description = v.String()
	}
	entry.Img = r.Get("img").String()

	return entry, true
}

// truthy reports whether a spell signal is set: a non-zero number, a
// non-empty string, true, or a populated object or array.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return strings.TrimSpace(v.Str) != ""
	case gjson.JSON:
		if v.IsArray() {
			return len(v.Array()) > 0
		}
		return len(v.Map()) > 0
	default:
		return false
	}
}

// PackDocuments is one compendium's actors.
type PackDocuments struct {
	Pack    Pack
	Records []*native.Record
}

// IndexStats reports what a build skipped.
type IndexStats struct {
	Packs   int
	Indexed int
	Skipped int
}

// BuildCreatureIndex indexes every actor across packs, skipping items and
// other non-actor documents.
func BuildCreatureIndex(packs []PackDocuments) ([]CreatureEntry, IndexStats) {
	var entries []CreatureEntry
	stats := IndexStats{Packs: len(packs)}
	for _, pack := range packs {
		for _, r := range pack.Records {
			entry, ok := IndexCreature(r, pack.Pack)
			if !ok {
				stats.Skipped++
				continue
			}
			entries = append(entries, entry)
			stats.Indexed++
		}
	}
	return entries, stats
}
