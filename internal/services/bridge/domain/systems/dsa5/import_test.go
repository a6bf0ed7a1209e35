package dsa5

import (
	"reflect"
	"strings"
	"testing"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

func TestImportAlrik(t *testing.T) {
	result := Import(alrik(t))
	if !result.Success || result.Character == nil {
		t.Fatalf("import failed: %v", result.Errors)
	}
	ch := result.Character

	if ch.ID != "actor-alrik" || ch.Name != "Alrik" || ch.System != character.SystemDSA5 {
		t.Fatalf("unexpected identity %q %q %q", ch.ID, ch.Name, ch.System)
	}

	wantAttributes := map[string]int{
		"MU": 14, "KL": 12, "IN": 13, "CH": 11,
		"FF": 12, "GE": 13, "KO": 14, "KK": 13,
	}
	if !reflect.DeepEqual(ch.Attributes, wantAttributes) {
		t.Fatalf("attributes = %v, want %v", ch.Attributes, wantAttributes)
	}

	if ch.Health.Current != 18 || ch.Health.Max != 30 {
		t.Fatalf("health = %+v, want 18/30", ch.Health)
	}

	wantResources := []character.Resource{{Name: "Astralenergie", Current: 20, Max: 32, Type: "asp"}}
	if !reflect.DeepEqual(ch.Resources, wantResources) {
		t.Fatalf("resources = %+v, want %+v", ch.Resources, wantResources)
	}

	wantProfile := character.Profile{Species: "Mensch", Culture: "Mittelreich", Profession: "Gildenmagier", Experience: character.Int(980)}
	if !reflect.DeepEqual(ch.Profile, wantProfile) {
		t.Fatalf("profile = %+v, want %+v", ch.Profile, wantProfile)
	}

	if ch.Physical == nil || ch.Physical.SizeCategory != "medium" || ch.Physical.Size != nil {
		t.Fatalf("physical = %+v, want medium category", ch.Physical)
	}
}

func TestImportSkills(t *testing.T) {
	ch := Import(alrik(t)).Character

	if len(ch.Skills) != 7 {
		t.Fatalf("len(skills) = %d, want 7", len(ch.Skills))
	}
	byID := map[string]character.Skill{}
	for _, skill := range ch.Skills {
		byID[skill.ID] = skill
	}

	klettern := byID["skill-klettern"]
	if klettern.Value != 10 {
		t.Fatalf("Klettern = %d, want 10", klettern.Value)
	}
	wantMeta := map[string]any{"type": "skill", "characteristic": "MU/GE/KK", "group": "body", "advancement": "B"}
	if !reflect.DeepEqual(klettern.Metadata, wantMeta) {
		t.Fatalf("Klettern metadata = %v, want %v", klettern.Metadata, wantMeta)
	}
	if got := byID["skill-magiekunde"].Metadata["characteristic"]; got != "KL/KL/IN" {
		t.Fatalf("Magiekunde characteristic = %v", got)
	}
	if got := byID["skill-singen"]; got.Value != 4 || got.Metadata["type"] != "talent" {
		t.Fatalf("Singen = %+v, want fallback value 4 from talent item", got)
	}
	if got := byID["skill-reiten"].Value; got != 0 {
		t.Fatalf("Reiten = %d, want unresolved value to default to 0", got)
	}
}

func TestImportSystemData(t *testing.T) {
	data := Import(alrik(t)).Character.SystemData.DSA5

	if data.Wounds != 12 {
		t.Fatalf("wounds = %d, want raw counter 12", data.Wounds)
	}
	if data.Characteristics["kk"] != 13 || data.Characteristics["mu"] != 14 {
		t.Fatalf("characteristics = %v", data.Characteristics)
	}
	if data.AstralEnergy == nil || *data.AstralEnergy != (character.Pool{Current: 20, Max: 32}) {
		t.Fatalf("astral = %+v", data.AstralEnergy)
	}
	if data.KarmaEnergy == nil || data.KarmaEnergy.Max != 0 {
		t.Fatalf("karma pool should be preserved raw, got %+v", data.KarmaEnergy)
	}
	wantCombat := []character.CombatTechnique{{ID: "ct-dolche", Name: "Dolche", Value: 8, Attack: 9, Parry: 4}}
	if !reflect.DeepEqual(data.CombatTechniques, wantCombat) {
		t.Fatalf("combat = %+v, want %+v", data.CombatTechniques, wantCombat)
	}
	if !reflect.DeepEqual(data.Advantages, []string{"Zauberer"}) ||
		!reflect.DeepEqual(data.Disadvantages, []string{"Arroganz"}) ||
		!reflect.DeepEqual(data.SpecialAbilities, []string{"Tradition (Gildenmagier)"}) {
		t.Fatalf("item groups = %v / %v / %v", data.Advantages, data.Disadvantages, data.SpecialAbilities)
	}
	if !reflect.DeepEqual(data.Traditions, []string{"Gildenmagier"}) {
		t.Fatalf("traditions = %v", data.Traditions)
	}
	if data.ExperienceSpent == nil || *data.ExperienceSpent != 940 {
		t.Fatalf("experience spent = %v", data.ExperienceSpent)
	}
}

func TestImportSheetDetails(t *testing.T) {
	data := Import(alrik(t)).Character.SystemData.DSA5

	wantDerived := map[string]int{"speed": 8, "initiative": 12, "dodge": 7, "armour": 1, "soulpower": 1, "toughness": 1}
	if !reflect.DeepEqual(data.Derived, wantDerived) {
		t.Fatalf("derived = %v, want %v", data.Derived, wantDerived)
	}

	wantSpells := []character.Spell{
		{ID: "sp-1", Name: "Ignifaxius", Type: "spell", Value: 7, Cost: "8", Resource: "asp", CastingTime: "2 Aktionen", Range: "16 Schritt"},
		{ID: "rit-1", Name: "Arcanovi", Type: "ritual", Value: 3, Cost: "16", Resource: "asp"},
	}
	if !reflect.DeepEqual(data.Spells, wantSpells) {
		t.Fatalf("spells = %+v, want %+v", data.Spells, wantSpells)
	}
	if len(data.Liturgies) != 0 {
		t.Fatalf("liturgies = %+v, want none", data.Liturgies)
	}

	wantWeapons := []character.Weapon{
		{ID: "w-1", Name: "Magierstab", Type: "meleeweapon", CombatSkill: "Stangenwaffen", Damage: "1W6+1", Reach: "long"},
		{ID: "w-2", Name: "Wurfdolch", Type: "rangeweapon", CombatSkill: "Wurfwaffen", Damage: "1W6"},
	}
	if !reflect.DeepEqual(data.Weapons, wantWeapons) {
		t.Fatalf("weapons = %+v, want %+v", data.Weapons, wantWeapons)
	}
	if want := []character.Armor{{ID: "arm-1", Name: "Robe", Protection: 1}}; !reflect.DeepEqual(data.Armor, want) {
		t.Fatalf("armor = %+v, want %+v", data.Armor, want)
	}

	wantEffects := []character.Effect{
		{ID: "eff-1", Name: "Belastung", DurationType: "none"},
		{ID: "eff-2", Name: "Armatrutz", Disabled: true, DurationType: "seconds", Remaining: character.Int(30)},
	}
	if !reflect.DeepEqual(data.Effects, wantEffects) {
		t.Fatalf("effects = %+v, want %+v", data.Effects, wantEffects)
	}
}

func TestImportDerivedDefaults(t *testing.T) {
	r := native.MustParse(`{"system":{"characteristics":{},"status":{"wounds":{},"speed":{},"dodge":{}}}}`)
	data := Import(r).Character.SystemData.DSA5
	if want := map[string]int{"speed": DefaultSpeed, "dodge": 0}; !reflect.DeepEqual(data.Derived, want) {
		t.Fatalf("derived = %v, want %v", data.Derived, want)
	}
	if data.Effects != nil || data.Weapons != nil || data.Spells != nil {
		t.Fatalf("unexpected item groups %+v", data)
	}

	if got := Import(minimalActor(0, 10)).Character.SystemData.DSA5.Derived; got != nil {
		t.Fatalf("derived = %v, want nil without status blocks", got)
	}
}

func TestImportStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "no system", json: `{"_id":"a"}`, want: "Invalid DSA5 actor: missing system data"},
		{name: "no characteristics", json: `{"system":{"status":{"wounds":{}}}}`, want: "Invalid DSA5 actor: missing system.characteristics"},
		{name: "no status", json: `{"system":{"characteristics":{}}}`, want: "Invalid DSA5 actor: missing system.status"},
		{name: "no wounds", json: `{"system":{"characteristics":{},"status":{}}}`, want: "Invalid DSA5 actor: missing system.status.wounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Import(native.MustParse(tt.json))
			if result.Success || result.Character != nil {
				t.Fatalf("expected failure without character, got %+v", result)
			}
			if len(result.Errors) != 1 || result.Errors[0] != tt.want {
				t.Fatalf("errors = %v, want [%q]", result.Errors, tt.want)
			}
		})
	}
}

func TestImportClampsIntoRange(t *testing.T) {
	tests := []struct {
		name          string
		counter, max  int
		wantCurrent   int
		astral, astMx int
		wantAstral    int
	}{
		{name: "healthy", counter: 0, max: 30, wantCurrent: 30, astral: 5, astMx: 10, wantAstral: 5},
		{name: "over-wounded", counter: 45, max: 30, wantCurrent: 0, astral: 15, astMx: 10, wantAstral: 10},
		{name: "negative counter", counter: -5, max: 30, wantCurrent: 30, astral: -2, astMx: 10, wantAstral: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := minimalActor(tt.counter, tt.max)
			_ = r.Set("system.status.astralenergy", map[string]int{"value": tt.astral, "max": tt.astMx})

			ch := Import(r).Character
			if ch.Health.Current != tt.wantCurrent {
				t.Fatalf("health.current = %d, want %d", ch.Health.Current, tt.wantCurrent)
			}
			if ch.Health.Current < 0 || ch.Health.Current > ch.Health.Max {
				t.Fatalf("health out of range: %+v", ch.Health)
			}
			if len(ch.Resources) != 1 || ch.Resources[0].Current != tt.wantAstral {
				t.Fatalf("resources = %+v, want astral current %d", ch.Resources, tt.wantAstral)
			}
		})
	}
}

func TestImportMinimalActorLeavesOptionalFieldsAbsent(t *testing.T) {
	ch := Import(minimalActor(0, 10)).Character

	if ch.Profile != (character.Profile{}) {
		t.Fatalf("profile = %+v, want empty", ch.Profile)
	}
	if ch.Physical != nil {
		t.Fatalf("physical = %+v, want nil", ch.Physical)
	}
	if len(ch.Resources) != 0 || len(ch.Skills) != 0 {
		t.Fatalf("expected no resources or skills, got %v %v", ch.Resources, ch.Skills)
	}
	// Characteristics without values fall back to the default initial.
	if ch.Attributes["MU"] != DefaultCharacteristicInitial {
		t.Fatalf("MU = %d, want %d", ch.Attributes["MU"], DefaultCharacteristicInitial)
	}
}

func TestImportPhysicalSize(t *testing.T) {
	tests := []struct {
		name         string
		size         any
		wantSize     *int
		wantCategory string
	}{
		{name: "numeric", size: 182, wantSize: character.Int(182)},
		{name: "numeric string", size: "175", wantSize: character.Int(175)},
		{name: "german category", size: "Groß", wantCategory: "large"},
		{name: "english category", size: "small", wantCategory: "small"},
		{name: "unknown category", size: "Kolossal", wantCategory: "kolossal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := minimalActor(0, 10)
			_ = r.Set(PathSize, tt.size)
			got := Import(r).Character.Physical
			if got == nil {
				t.Fatal("expected physical")
			}
			if !reflect.DeepEqual(got.Size, tt.wantSize) || got.SizeCategory != tt.wantCategory {
				t.Fatalf("physical = %+v (size %v), want size %v category %q", got, got.Size, tt.wantSize, tt.wantCategory)
			}
		})
	}
}

func TestImportNeverFailsOnOddNumericTypes(t *testing.T) {
	r := native.MustParse(`{"_id":"x","system":{"characteristics":{"mu":{"value":"15"},"kl":{"value":true}},"status":{"wounds":{"value":"3","max":20.0}}}}`)
	result := Import(r)
	if !result.Success {
		t.Fatalf("import failed: %v", result.Errors)
	}
	if got := result.Character.Attributes["MU"]; got != 15 {
		t.Fatalf("MU = %d, want numeric string to parse", got)
	}
	if got := result.Character.Health.Current; got != 17 {
		t.Fatalf("health.current = %d, want 17", got)
	}
	if strings.TrimSpace(result.Character.Name) != "" {
		t.Fatalf("name = %q, want empty", result.Character.Name)
	}
}
