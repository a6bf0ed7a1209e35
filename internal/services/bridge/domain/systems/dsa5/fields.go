package dsa5

import "strings"

// Attribute describes one of the eight DSA5 Eigenschaften.
type Attribute struct {
	Code    string // canonical key, e.g. "MU"
	Key     string // native key under system.characteristics, e.g. "mu"
	German  string
	English string
}

// Attributes lists the Eigenschaften in sheet order.
var Attributes = []Attribute{
	{Code: "MU", Key: "mu", German: "Mut", English: "Courage"},
	{Code: "KL", Key: "kl", German: "Klugheit", English: "Cleverness"},
	{Code: "IN", Key: "in", German: "Intuition", English: "Intuition"},
	{Code: "CH", Key: "ch", German: "Charisma", English: "Charisma"},
	{Code: "FF", Key: "ff", German: "Fingerfertigkeit", English: "Dexterity"},
	{Code: "GE", Key: "ge", German: "Gewandtheit", English: "Agility"},
	{Code: "KO", Key: "ko", German: "Konstitution", English: "Constitution"},
	{Code: "KK", Key: "kk", German: "Körperkraft", English: "Strength"},
}

// LookupAttribute resolves a case-insensitive attribute code.
func LookupAttribute(code string) (Attribute, bool) {
	for _, attr := range Attributes {
		if strings.EqualFold(attr.Code, strings.TrimSpace(code)) {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Characteristic component defaults used when a sheet stores parts instead of a total.
const (
	DefaultCharacteristicInitial = 8
)

// CharacteristicTotal derives a final value as initial + species + modifier + advances.
func CharacteristicTotal(initial, species, modifier, advances int) int {
	return initial + species + modifier + advances
}

// Native paths.
const (
	PathCharacteristics = "system.characteristics"
	PathStatus          = "system.status"
	PathWounds          = "system.status.wounds"
	PathWoundsValue     = "system.status.wounds.value"
	PathWoundsMax       = "system.status.wounds.max"
	PathSize            = "system.status.size.value"
	PathSpecies         = "system.details.species.value"
	PathCulture         = "system.details.culture.value"
	PathCareer          = "system.details.career.value"
	PathProfession      = "system.details.profession.value"
	PathExperienceTotal = "system.details.experience.total"
	PathExperienceSpent = "system.details.experience.spent"
	PathTraditionMagic  = "system.tradition.magical"
	PathTraditionCleric = "system.tradition.clerical"
	PathTalentValue     = "system.talentValue.value"
)

// Pool describes a secondary energy pool stored under system.status.
type Pool struct {
	Key     string // native key under system.status
	Type    string // canonical resource type tag
	Name    string // canonical resource name
	aliases []string
}

// Path returns the native path of a pool field ("value" or "max").
func (p Pool) Path(field string) string {
	return PathStatus + "." + p.Key + "." + field
}

// Pools lists the DSA5 energy pools in canonical order.
var Pools = []Pool{
	{Key: "astralenergy", Type: "asp", Name: "Astralenergie", aliases: []string{"astral"}},
	{Key: "karmaenergy", Type: "kap", Name: "Karmaenergie", aliases: []string{"karma"}},
}

// LookupPool resolves a resource name: an exact type tag ("asp") or any name
// containing a pool alias ("Astralenergie", "astral energy").
func LookupPool(name string) (Pool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Pool{}, false
	}
	for _, pool := range Pools {
		if normalized == pool.Type || normalized == pool.Key {
			return pool, true
		}
		for _, alias := range pool.aliases {
			if strings.Contains(normalized, alias) {
				return pool, true
			}
		}
	}
	return Pool{}, false
}

// Status keys beyond wounds and the energy pools.
const (
	StatusSpeed      = "speed"
	StatusInitiative = "initiative"
	StatusArmour     = "armour"
	StatusDodge      = "dodge"
	StatusSoulPower  = "soulpower"
	StatusToughness  = "toughness"
)

// DerivedStats lists the derived status values in sheet order.
var DerivedStats = []string{StatusSpeed, StatusInitiative, StatusDodge, StatusArmour, StatusSoulPower, StatusToughness}

// DefaultSpeed is the Geschwindigkeit of a sheet whose speed block has no value.
const DefaultSpeed = 8

// Item types.
const (
	ItemSkill          = "skill"
	ItemTalent         = "talent"
	ItemCombatSkill    = "combatskill"
	ItemSpell          = "spell"
	ItemLiturgy        = "liturgy"
	ItemCeremony       = "ceremony"
	ItemRitual         = "ritual"
	ItemMeleeWeapon    = "meleeweapon"
	ItemRangeWeapon    = "rangeweapon"
	ItemArmor          = "armor"
	ItemAdvantage      = "advantage"
	ItemDisadvantage   = "disadvantage"
	ItemSpecialAbility = "specialability"
)

// IsSkillItem reports whether an item type imports as a canonical skill.
func IsSkillItem(itemType string) bool {
	return itemType == ItemSkill || itemType == ItemTalent
}

// spellResource returns the pool a spell-like item is paid from.
func spellResource(itemType string) (string, bool) {
	switch itemType {
	case ItemSpell, ItemRitual:
		return "asp", true
	case ItemLiturgy, ItemCeremony:
		return "kap", true
	default:
		return "", false
	}
}

// Size categories are stored in German; canonical categories are English.
var sizeGermanToEnglish = map[string]string{
	"winzig":     "tiny",
	"klein":      "small",
	"mittel":     "medium",
	"average":    "medium",
	"groß":       "large",
	"riesig":     "huge",
	"gigantisch": "gargantuan",
}

var sizeEnglishToGerman = map[string]string{
	"tiny":       "Winzig",
	"small":      "Klein",
	"medium":     "Mittel",
	"average":    "Mittel",
	"large":      "Groß",
	"huge":       "Riesig",
	"gargantuan": "Gigantisch",
}

// SizeToEnglish normalizes a native size category. Unknown values report false.
func SizeToEnglish(size string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(size))
	if english, ok := sizeGermanToEnglish[normalized]; ok {
		return english, true
	}
	// Some sheets already carry the English category.
	if _, ok := sizeEnglishToGerman[normalized]; ok && normalized != "average" {
		return normalized, true
	}
	return "", false
}

// SizeToGerman renders a canonical size category the way DSA5 sheets show it.
func SizeToGerman(size string) (string, bool) {
	german, ok := sizeEnglishToGerman[strings.ToLower(strings.TrimSpace(size))]
	return german, ok
}

// Skill groups, German to English.
var skillGroups = map[string]string{
	"körper":       "body",
	"gesellschaft": "social",
	"natur":        "nature",
	"wissen":       "knowledge",
	"handwerk":     "trade",
}

// SkillGroup translates a native skill group. Unknown groups pass through lowercased.
func SkillGroup(group string) string {
	normalized := strings.ToLower(strings.TrimSpace(group))
	if english, ok := skillGroups[normalized]; ok {
		return english
	}
	return normalized
}

// advancementCategories are the Steigerungsfaktor cost columns.
var advancementCategories = []string{"A", "B", "C", "D", "E"}

// IsAdvancementCategory reports whether s is a valid cost column.
func IsAdvancementCategory(s string) bool {
	for _, category := range advancementCategories {
		if strings.EqualFold(category, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
