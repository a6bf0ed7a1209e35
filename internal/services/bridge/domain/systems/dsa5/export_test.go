package dsa5

import (
	"reflect"
	"testing"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

func TestWoundConversionPair(t *testing.T) {
	if got := HealthFromWounds(12, 30); got != 18 {
		t.Fatalf("HealthFromWounds(12, 30) = %d, want 18", got)
	}
	if got := WoundsFromHealth(18, 30); got != 12 {
		t.Fatalf("WoundsFromHealth(18, 30) = %d, want 12", got)
	}
	if got := WoundsFromHealth(-4, 30); got != 30 {
		t.Fatalf("WoundsFromHealth(-4, 30) = %d, want 30", got)
	}
	before, after := ApplyHealthDelta(12, 30, 5)
	if before != 12 || after != 7 {
		t.Fatalf("ApplyHealthDelta = %d, %d; want 12, 7", before, after)
	}
}

func TestExportHealthInversion(t *testing.T) {
	tests := []struct {
		name        string
		update      character.HealthUpdate
		wantCounter int
		wantMax     int
		wantField   string
	}{
		{name: "heal by delta", update: character.HealthUpdate{Delta: character.Int(5)}, wantCounter: 7, wantMax: 30, wantField: "health (delta: +5)"},
		{name: "damage by delta", update: character.HealthUpdate{Delta: character.Int(-3)}, wantCounter: 15, wantMax: 30, wantField: "health (delta: -3)"},
		{name: "absolute zero", update: character.HealthUpdate{Current: character.Int(0)}, wantCounter: 30, wantMax: 30, wantField: "health.current"},
		{name: "absolute above max clamps", update: character.HealthUpdate{Current: character.Int(99)}, wantCounter: 0, wantMax: 30, wantField: "health.current"},
		{name: "delta wins over current", update: character.HealthUpdate{Current: character.Int(1), Delta: character.Int(2)}, wantCounter: 10, wantMax: 30, wantField: "health (delta: +2)"},
		{name: "max only keeps counter", update: character.HealthUpdate{Max: character.Int(40)}, wantCounter: 12, wantMax: 40, wantField: "health.max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := minimalActor(12, 30)
			result := Export(r, character.Update{ID: "m1", Health: &tt.update})
			if !result.Success {
				t.Fatalf("export failed: %v", result.Errors)
			}
			if got := int(r.Get(PathWoundsValue).Int()); got != tt.wantCounter {
				t.Fatalf("counter = %d, want %d", got, tt.wantCounter)
			}
			if got := int(r.Get(PathWoundsMax).Int()); got != tt.wantMax {
				t.Fatalf("max = %d, want %d", got, tt.wantMax)
			}
			if len(result.UpdatedFields) == 0 || result.UpdatedFields[len(result.UpdatedFields)-1] != tt.wantField {
				t.Fatalf("updated = %v, want last %q", result.UpdatedFields, tt.wantField)
			}
		})
	}
}

func TestExportHealthMaxAppliesBeforeCurrent(t *testing.T) {
	r := minimalActor(12, 30)
	result := Export(r, character.Update{Health: &character.HealthUpdate{Max: character.Int(20), Current: character.Int(25)}})

	if !reflect.DeepEqual(result.UpdatedFields, []string{"health.max", "health.current"}) {
		t.Fatalf("updated = %v", result.UpdatedFields)
	}
	// 25 clamps against the new maximum of 20.
	if got := r.Get(PathWoundsValue).Int(); got != 0 {
		t.Fatalf("counter = %d, want 0", got)
	}
}

func TestExportHealthClampIsIdempotent(t *testing.T) {
	r := minimalActor(12, 30)
	update := character.Update{ID: "m1", Health: &character.HealthUpdate{Delta: character.Int(-9999)}}

	Export(r, update)
	if got := Import(r).Character.Health.Current; got != 0 {
		t.Fatalf("after first delta current = %d, want 0", got)
	}
	first := r.String()

	Export(r, update)
	if got := Import(r).Character.Health.Current; got != 0 {
		t.Fatalf("after second delta current = %d, want 0", got)
	}
	if r.String() != first {
		t.Fatalf("second clamp changed the record:\n%s\n%s", first, r.String())
	}
}

func TestExportZeroDeltaRoundTrip(t *testing.T) {
	r := alrik(t)
	before := Import(r).Character

	result := Export(r, character.Update{ID: before.ID, Health: &character.HealthUpdate{Delta: character.Int(0)}})
	if !result.Success {
		t.Fatalf("export failed: %v", result.Errors)
	}

	after := Import(r).Character
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip changed character:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestExportAttributes(t *testing.T) {
	r := alrik(t)
	result := Export(r, character.Update{
		ID:         "actor-alrik",
		Attributes: map[string]int{"mu": 15, "XX": 3},
		Health:     &character.HealthUpdate{Delta: character.Int(-2)},
	})

	if !result.Success {
		t.Fatalf("expected partial success, got %+v", result)
	}
	if !reflect.DeepEqual(result.Errors, []string{"Unknown attribute: XX"}) {
		t.Fatalf("errors = %v", result.Errors)
	}
	if !reflect.DeepEqual(result.UpdatedFields, []string{"attributes.MU", "health (delta: -2)"}) {
		t.Fatalf("updated = %v", result.UpdatedFields)
	}
	if got := r.Get("system.characteristics.mu.value").Int(); got != 15 {
		t.Fatalf("mu = %d, want 15", got)
	}
	if r.Has("system.characteristics.xx") {
		t.Fatal("unknown attribute must not be written")
	}
}

func TestExportUnknownAttributeOnlyFails(t *testing.T) {
	r := alrik(t)
	before := r.String()

	result := Export(r, character.Update{Attributes: map[string]int{"STR": 18}})
	if result.Success {
		t.Fatalf("expected failure when nothing changed and errors exist: %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Unknown attribute: STR" {
		t.Fatalf("errors = %v", result.Errors)
	}
	if r.String() != before {
		t.Fatal("record mutated by a rejected update")
	}
}

func TestExportEmptyUpdateSucceeds(t *testing.T) {
	result := Export(alrik(t), character.Update{ID: "actor-alrik"})
	if !result.Success || len(result.UpdatedFields) != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestExportResources(t *testing.T) {
	tests := []struct {
		name      string
		update    character.ResourceUpdate
		wantValue int64
		wantMax   int64
		wantField string
		wantError string
	}{
		{name: "type tag delta", update: character.ResourceUpdate{Name: "asp", Delta: character.Int(-25)}, wantValue: 0, wantMax: 32, wantField: "astralenergy (delta: -25)"},
		{name: "german name current", update: character.ResourceUpdate{Name: "Astralenergie", Current: character.Int(40)}, wantValue: 32, wantMax: 32, wantField: "astralenergy.value"},
		{name: "max then delta", update: character.ResourceUpdate{Name: "astral energy", Max: character.Int(24), Delta: character.Int(10)}, wantValue: 24, wantMax: 24, wantField: "astralenergy (delta: +10)"},
		{name: "unknown pool", update: character.ResourceUpdate{Name: "Schicksalspunkte", Delta: character.Int(1)}, wantValue: 20, wantMax: 32, wantError: "Unknown resource: Schicksalspunkte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := alrik(t)
			result := Export(r, character.Update{Resources: []character.ResourceUpdate{tt.update}})

			if got := r.Get("system.status.astralenergy.value").Int(); got != tt.wantValue {
				t.Fatalf("astral value = %d, want %d", got, tt.wantValue)
			}
			if got := r.Get("system.status.astralenergy.max").Int(); got != tt.wantMax {
				t.Fatalf("astral max = %d, want %d", got, tt.wantMax)
			}
			if tt.wantError != "" {
				if result.Success || len(result.Errors) != 1 || result.Errors[0] != tt.wantError {
					t.Fatalf("result = %+v, want error %q", result, tt.wantError)
				}
				return
			}
			if result.UpdatedFields[len(result.UpdatedFields)-1] != tt.wantField {
				t.Fatalf("updated = %v, want %q", result.UpdatedFields, tt.wantField)
			}
		})
	}
}

func TestExportResourceMissingFromRecord(t *testing.T) {
	r := minimalActor(0, 10)
	result := Export(r, character.Update{Resources: []character.ResourceUpdate{{Name: "kap", Current: character.Int(3)}}})
	if result.Success || len(result.Errors) != 1 || result.Errors[0] != "Unknown resource: kap" {
		t.Fatalf("result = %+v", result)
	}
}

func TestExportSkills(t *testing.T) {
	r := alrik(t)
	result := Export(r, character.Update{Skills: []character.SkillUpdate{
		{ID: "skill-klettern", Delta: character.Int(2)},
		{ID: "skill-betoeren", Delta: character.Int(-10)},
		{ID: "skill-zechen", Value: character.Int(9)},
		{ID: "skill-fliegen", Delta: character.Int(1)},
		{ID: "ct-dolche", Delta: character.Int(1)},
	}})

	if !result.Success {
		t.Fatalf("expected partial success, got %+v", result)
	}
	wantFields := []string{"skill.Klettern (delta: +2)", "skill.Betören (delta: -10)", "skill.Zechen"}
	if !reflect.DeepEqual(result.UpdatedFields, wantFields) {
		t.Fatalf("updated = %v, want %v", result.UpdatedFields, wantFields)
	}
	// Combat techniques are not canonical skills.
	wantErrors := []string{"Skill not found: skill-fliegen", "Skill not found: ct-dolche"}
	if !reflect.DeepEqual(result.Errors, wantErrors) {
		t.Fatalf("errors = %v, want %v", result.Errors, wantErrors)
	}
	if got := r.Get("items.7.system.talentValue.value").Int(); got != 8 {
		t.Fatalf("Dolche = %d, want 8 untouched", got)
	}

	values := map[string]int{}
	for _, skill := range Import(r).Character.Skills {
		values[skill.ID] = skill.Value
	}
	if values["skill-klettern"] != 12 {
		t.Fatalf("Klettern = %d, want 12 (no upper bound)", values["skill-klettern"])
	}
	if values["skill-betoeren"] != 0 {
		t.Fatalf("Betören = %d, want floor 0", values["skill-betoeren"])
	}
	if values["skill-zechen"] != 9 {
		t.Fatalf("Zechen = %d, want 9", values["skill-zechen"])
	}
}

func TestExportEveryImportedSkill(t *testing.T) {
	r := alrik(t)
	before := map[string]int{}
	var update character.Update
	for _, skill := range Import(r).Character.Skills {
		before[skill.ID] = skill.Value
		update.Skills = append(update.Skills, character.SkillUpdate{ID: skill.ID, Delta: character.Int(2)})
	}

	result := Export(r, update)
	if !result.Success || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
	for _, skill := range Import(r).Character.Skills {
		if want := before[skill.ID] + 2; skill.Value != want {
			t.Fatalf("%s = %d, want %d", skill.ID, skill.Value, want)
		}
	}
}

func TestExportSkillValueSources(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		update    character.SkillUpdate
		wantPath  string
		wantValue int
	}{
		{name: "value outside talent value", id: "skill-singen", update: character.SkillUpdate{Delta: character.Int(2)}, wantPath: "system.value", wantValue: 6},
		{name: "no value yet", id: "skill-reiten", update: character.SkillUpdate{Delta: character.Int(2)}, wantPath: PathTalentValue, wantValue: 2},
		{name: "absolute without value", id: "skill-reiten", update: character.SkillUpdate{Value: character.Int(3)}, wantPath: PathTalentValue, wantValue: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := tt.update
			update.ID = tt.id
			patch, result := BuildPatch(alrik(t), character.Update{Skills: []character.SkillUpdate{update}})
			if !result.Success || len(result.Errors) != 0 {
				t.Fatalf("result = %+v", result)
			}
			want := map[string]map[string]any{tt.id: {tt.wantPath: tt.wantValue}}
			if !reflect.DeepEqual(patch.Items, want) {
				t.Fatalf("item patch = %v, want %v", patch.Items, want)
			}
		})
	}
}

func TestExportNegativeMaxStaysInRange(t *testing.T) {
	r := minimalActor(0, 10)
	result := Export(r, character.Update{Health: &character.HealthUpdate{Max: character.Int(-5)}})
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	health := Import(r).Character.Health
	if health.Max != 0 || health.Current != 0 {
		t.Fatalf("health = %+v, want 0/0", health)
	}

	r = alrik(t)
	Export(r, character.Update{Resources: []character.ResourceUpdate{{Name: "asp", Max: character.Int(-3)}}})
	if got := r.Get("system.status.astralenergy.max").Int(); got != 0 {
		t.Fatalf("astral max = %d, want 0", got)
	}
	for _, res := range Import(r).Character.Resources {
		if res.Current < 0 || res.Current > res.Max {
			t.Fatalf("resource %s out of range: %+v", res.Name, res)
		}
	}
}

func TestExportStructuralError(t *testing.T) {
	r := native.MustParse(`{"_id":"a","system":{"characteristics":{}}}`)
	before := r.String()
	result := Export(r, character.Update{Attributes: map[string]int{"MU": 10}})

	if result.Success || len(result.UpdatedFields) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if !reflect.DeepEqual(result.Errors, []string{"Invalid DSA5 actor: missing system.status"}) {
		t.Fatalf("errors = %v", result.Errors)
	}
	if r.String() != before {
		t.Fatal("structural failure must not mutate")
	}
}

func TestBuildPatch(t *testing.T) {
	r := alrik(t)
	before := r.String()

	patch, result := BuildPatch(r, character.Update{
		Attributes: map[string]int{"KK": 14},
		Health:     &character.HealthUpdate{Delta: character.Int(5)},
		Resources:  []character.ResourceUpdate{{Name: "asp", Delta: character.Int(-4)}},
		Skills:     []character.SkillUpdate{{ID: "skill-klettern", Delta: character.Int(1)}, {ID: "nope", Value: character.Int(1)}},
	})

	if r.String() != before {
		t.Fatal("BuildPatch must not mutate its input")
	}
	if !result.Success || !reflect.DeepEqual(result.Errors, []string{"Skill not found: nope"}) {
		t.Fatalf("result = %+v", result)
	}
	wantActor := map[string]any{
		"system.characteristics.kk.value":  14,
		"system.status.wounds.value":       7,
		"system.status.astralenergy.value": 16,
	}
	if !reflect.DeepEqual(patch.Actor, wantActor) {
		t.Fatalf("actor patch = %v, want %v", patch.Actor, wantActor)
	}
	wantItems := map[string]map[string]any{
		"skill-klettern": {"system.talentValue.value": 11},
	}
	if !reflect.DeepEqual(patch.Items, wantItems) {
		t.Fatalf("item patch = %v, want %v", patch.Items, wantItems)
	}
}
