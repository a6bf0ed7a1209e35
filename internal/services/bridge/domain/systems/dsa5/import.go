package dsa5

import (
	"strconv"
	"strings"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/tidwall/gjson"
)

// requiredPaths are the blocks import and export cannot work without.
var requiredPaths = []string{PathCharacteristics, PathStatus, PathWounds}

// missingStructure returns the first required block the record lacks.
func missingStructure(r *native.Record) string {
	if !r.Has("system") {
		return "system data"
	}
	for _, path := range requiredPaths {
		if !r.Has(path) {
			return path
		}
	}
	return ""
}

func structuralError(missing string) string {
	return "Invalid DSA5 actor: missing " + missing
}

// Import converts a DSA5 actor document into a canonical character.
func Import(r *native.Record) character.ImportResult {
	if missing := missingStructure(r); missing != "" {
		return character.ImportFailure(structuralError(missing))
	}

	characteristics := readCharacteristics(r)
	attributes := make(map[string]int, len(Attributes))
	for _, attr := range Attributes {
		attributes[attr.Code] = characteristics[attr.Key]
	}

	woundsMax := intAt(r.Get(PathWoundsMax))
	counter := intAt(r.Get(PathWoundsValue))

	data := &character.DSA5Data{
		Characteristics: characteristics,
		Wounds:          counter,
	}

	var resources []character.Resource
	for _, pool := range Pools {
		if !r.Has(PathStatus + "." + pool.Key) {
			continue
		}
		raw := &character.Pool{
			Current: intAt(r.Get(pool.Path("value"))),
			Max:     intAt(r.Get(pool.Path("max"))),
		}
		switch pool.Type {
		case "asp":
			data.AstralEnergy = raw
		case "kap":
			data.KarmaEnergy = raw
		}
		// A pool without a maximum does not apply to this character.
		if raw.Max <= 0 {
			continue
		}
		resources = append(resources, character.Resource{
			Name:    pool.Name,
			Current: character.Clamp(raw.Current, 0, raw.Max),
			Max:     raw.Max,
			Type:    pool.Type,
		})
	}

	skills, items := readItems(r)
	data.CombatTechniques = items.combat
	data.Advantages = items.advantages
	data.Disadvantages = items.disadvantages
	data.SpecialAbilities = items.specialAbilities
	data.Spells = items.spells
	data.Liturgies = items.liturgies
	data.Weapons = items.weapons
	data.Armor = items.armor
	data.Derived = readDerived(r)
	data.Effects = readEffects(r)
	data.Traditions = readTraditions(r)
	if r.Has(PathExperienceSpent) {
		spent := intAt(r.Get(PathExperienceSpent))
		data.ExperienceSpent = &spent
	}

	ch := &character.Character{
		ID:         r.ID(),
		Name:       r.Name(),
		System:     character.SystemDSA5,
		Attributes: attributes,
		Health: character.Health{
			Current: HealthFromWounds(counter, woundsMax),
			Max:     woundsMax,
		},
		Resources:  resources,
		Skills:     skills,
		Profile:    readProfile(r),
		Physical:   readPhysical(r),
		SystemData: &character.SystemData{DSA5: data},
	}
	if ch.Resources == nil {
		ch.Resources = []character.Resource{}
	}
	if ch.Skills == nil {
		ch.Skills = []character.Skill{}
	}
	return character.ImportResult{Success: true, Character: ch}
}

// readCharacteristics returns final values keyed by native key. A block
// without a value is derived from its components.
func readCharacteristics(r *native.Record) map[string]int {
	out := make(map[string]int, len(Attributes))
	for _, attr := range Attributes {
		block := r.Get(PathCharacteristics + "." + attr.Key)
		if v := block.Get("value"); native.Defined(v) {
			out[attr.Key] = intAt(v)
			continue
		}
		initial := DefaultCharacteristicInitial
		if v := block.Get("initial"); native.Defined(v) {
			initial = intAt(v)
		}
		out[attr.Key] = CharacteristicTotal(
			initial,
			intAt(block.Get("species")),
			intAt(block.Get("modifier")),
			intAt(block.Get("advances")),
		)
	}
	return out
}

type itemGroups struct {
	combat           []character.CombatTechnique
	advantages       []string
	disadvantages    []string
	specialAbilities []string
	spells           []character.Spell
	liturgies        []character.Spell
	weapons          []character.Weapon
	armor            []character.Armor
}

func readItems(r *native.Record) ([]character.Skill, itemGroups) {
	var skills []character.Skill
	var groups itemGroups
	for _, item := range r.Items() {
		switch itemType := item.Type(); {
		case IsSkillItem(itemType):
			skills = append(skills, readSkill(item))
		case itemType == ItemCombatSkill:
			value, _ := item.First(skillValuePaths...)
			attack, _ := item.First(combatAttackPaths...)
			parry, _ := item.First(combatParryPaths...)
			groups.combat = append(groups.combat, character.CombatTechnique{
				ID:     item.ID(),
				Name:   item.Name(),
				Value:  intAt(value),
				Attack: intAt(attack),
				Parry:  intAt(parry),
			})
		case itemType == ItemAdvantage:
			groups.advantages = append(groups.advantages, item.Name())
		case itemType == ItemDisadvantage:
			groups.disadvantages = append(groups.disadvantages, item.Name())
		case itemType == ItemSpecialAbility:
			groups.specialAbilities = append(groups.specialAbilities, item.Name())
		case itemType == ItemMeleeWeapon || itemType == ItemRangeWeapon:
			groups.weapons = append(groups.weapons, character.Weapon{
				ID:          item.ID(),
				Name:        item.Name(),
				Type:        itemType,
				CombatSkill: firstString(item, weaponSkillPaths),
				Damage:      firstString(item, weaponDamagePaths),
				Reach:       firstString(item, weaponReachPaths),
			})
		case itemType == ItemArmor:
			protection, _ := item.First(armorProtectionPaths...)
			encumbrance, _ := item.First(armorEncumbrancePaths...)
			groups.armor = append(groups.armor, character.Armor{
				ID:          item.ID(),
				Name:        item.Name(),
				Protection:  intAt(protection),
				Encumbrance: intAt(encumbrance),
			})
		default:
			spell, ok := readSpell(item)
			if !ok {
				continue
			}
			if spell.Resource == "kap" {
				groups.liturgies = append(groups.liturgies, spell)
			} else {
				groups.spells = append(groups.spells, spell)
			}
		}
	}
	return skills, groups
}

// readSpell reads spells and rituals (AsP) or liturgies and ceremonies (KaP).
func readSpell(item native.Item) (character.Spell, bool) {
	resource, ok := spellResource(item.Type())
	if !ok {
		return character.Spell{}, false
	}
	costPaths := aspCostPaths
	if resource == "kap" {
		costPaths = kapCostPaths
	}
	cost := firstString(item, costPaths)
	if cost == "" {
		cost = "0"
	}
	value, _ := item.First(skillValuePaths...)
	return character.Spell{
		ID:          item.ID(),
		Name:        item.Name(),
		Type:        item.Type(),
		Value:       intAt(value),
		Cost:        cost,
		Resource:    resource,
		CastingTime: firstString(item, castingTimePaths),
		Range:       firstString(item, spellRangePaths),
	}, true
}

// readDerived returns the derived status values present on the sheet.
func readDerived(r *native.Record) map[string]int {
	var out map[string]int
	for _, key := range DerivedStats {
		block := PathStatus + "." + key
		if !r.Has(block) {
			continue
		}
		if out == nil {
			out = map[string]int{}
		}
		value := r.Get(block + ".value")
		switch {
		case native.Defined(value):
			out[key] = intAt(value)
		case key == StatusSpeed:
			out[key] = DefaultSpeed
		default:
			out[key] = 0
		}
	}
	return out
}

// readEffects lists the actor's active effects, disabled ones included.
func readEffects(r *native.Record) []character.Effect {
	effects := r.Get("effects")
	if !effects.IsArray() {
		return nil
	}
	var out []character.Effect
	for _, effect := range effects.Array() {
		id, _ := native.First(effect, "_id", "id")
		name, _ := native.First(effect, effectNamePaths...)
		entry := character.Effect{
			ID:           id.String(),
			Name:         name.String(),
			Disabled:     effect.Get("disabled").Bool(),
			DurationType: effect.Get("duration.type").String(),
		}
		if remaining := effect.Get("duration.remaining"); native.Defined(remaining) {
			n := intAt(remaining)
			entry.Remaining = &n
		}
		out = append(out, entry)
	}
	return out
}

func readSkill(item native.Item) character.Skill {
	value, _ := item.First(skillValuePaths...)
	metadata := map[string]any{"type": item.Type()}

	characteristic := ""
	if v, ok := item.First(skillCharacteristicPaths...); ok {
		characteristic = joinedString(v)
	}
	metadata["characteristic"] = characteristic

	if v, ok := item.First(skillGroupPaths...); ok && v.String() != "" {
		metadata["group"] = SkillGroup(v.String())
	}
	if v, ok := item.First(skillAdvancementPaths...); ok && IsAdvancementCategory(v.String()) {
		metadata["advancement"] = strings.ToUpper(v.String())
	}

	return character.Skill{
		ID:       item.ID(),
		Name:     item.Name(),
		Value:    intAt(value),
		Metadata: metadata,
	}
}

func readProfile(r *native.Record) character.Profile {
	var profile character.Profile
	profile.Species = r.Get(PathSpecies).String()
	profile.Culture = r.Get(PathCulture).String()
	if v, ok := r.First(professionPaths...); ok {
		profile.Profession = v.String()
	}
	if r.Has(PathExperienceTotal) {
		total := intAt(r.Get(PathExperienceTotal))
		profile.Experience = &total
	}
	return profile
}

func readPhysical(r *native.Record) *character.Physical {
	size := r.Get(PathSize)
	if !native.Defined(size) {
		return nil
	}
	switch size.Type {
	case gjson.Number:
		n := intAt(size)
		return &character.Physical{Size: &n}
	case gjson.String:
		raw := strings.TrimSpace(size.String())
		if raw == "" {
			return nil
		}
		if n, err := strconv.Atoi(raw); err == nil {
			return &character.Physical{Size: &n}
		}
		if english, ok := SizeToEnglish(raw); ok {
			return &character.Physical{SizeCategory: english}
		}
		return &character.Physical{SizeCategory: strings.ToLower(raw)}
	default:
		return nil
	}
}

func readTraditions(r *native.Record) []string {
	var out []string
	for _, path := range []string{PathTraditionMagic, PathTraditionCleric} {
		if v := strings.TrimSpace(r.Get(path).String()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// firstString returns the first defined value among paths as a trimmed string.
func firstString(item native.Item, paths []string) string {
	v, _ := item.First(paths...)
	return strings.TrimSpace(v.String())
}

// intAt reads a numeric field, accepting numeric strings. Anything else is 0.
func intAt(v gjson.Result) int {
	return int(v.Int())
}

// joinedString renders a string or string array ("MU/IN/CH").
func joinedString(v gjson.Result) string {
	if !v.IsArray() {
		return v.String()
	}
	var parts []string
	for _, part := range v.Array() {
		if s := strings.TrimSpace(part.String()); s != "" {
			parts = append(parts, strings.ToUpper(s))
		}
	}
	return strings.Join(parts, "/")
}
