// Package character defines the system-agnostic character model exchanged
// with MCP clients.
//
// Health is always remaining capacity. Systems that store damage taken
// convert at their adapter boundary so no canonical value is ever inverted.
package character

// System identifies a supported game system.
type System string

const (
	SystemDSA5  System = "dsa5"
	SystemDnD5e System = "dnd5e"
	SystemPF2e  System = "pf2e"
	SystemOther System = "other"
)

// Character is a canonical snapshot of one actor.
type Character struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	System     System         `json:"system"`
	Attributes map[string]int `json:"attributes"`
	Health     Health         `json:"health"`
	Resources  []Resource     `json:"resources"`
	Skills     []Skill        `json:"skills"`
	Profile    Profile        `json:"profile"`
	Physical   *Physical      `json:"physical,omitempty"`
	SystemData *SystemData    `json:"systemData,omitempty"`
}

// Health is remaining capacity; 0 <= Current <= Max.
type Health struct {
	Current int  `json:"current"`
	Max     int  `json:"max"`
	Temp    *int `json:"temp,omitempty"`
}

// Resource is a secondary pool such as astral energy.
type Resource struct {
	Name    string `json:"name"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
	Type    string `json:"type"`
}

// Skill is one rated ability.
type Skill struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Value    int            `json:"value"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Profile carries optional descriptive fields. Empty strings mean absent.
type Profile struct {
	Species    string `json:"species,omitempty"`
	Culture    string `json:"culture,omitempty"`
	Profession string `json:"profession,omitempty"`
	Experience *int   `json:"experience,omitempty"`
}

// Physical carries either a numeric size or a normalized size category
// (tiny, small, medium, large, huge, gargantuan).
type Physical struct {
	Size         *int   `json:"size,omitempty"`
	SizeCategory string `json:"sizeCategory,omitempty"`
}

// SystemData preserves system-specific raw fields the canonical shape
// cannot otherwise hold.
type SystemData struct {
	DSA5 *DSA5Data `json:"dsa5,omitempty"`
}

// DSA5Data keeps the raw DSA5 values next to their canonical projections.
type DSA5Data struct {
	// Characteristics uses the native lowercase keys (mu, kl, ...).
	Characteristics  map[string]int    `json:"characteristics"`
	Wounds           int               `json:"wounds"`
	AstralEnergy     *Pool             `json:"astralenergy,omitempty"`
	KarmaEnergy      *Pool             `json:"karmaenergy,omitempty"`
	CombatTechniques []CombatTechnique `json:"combatTechniques,omitempty"`
	Advantages       []string          `json:"advantages,omitempty"`
	Disadvantages    []string          `json:"disadvantages,omitempty"`
	SpecialAbilities []string          `json:"specialAbilities,omitempty"`
	Traditions       []string          `json:"traditions,omitempty"`
	ExperienceSpent  *int              `json:"experienceSpent,omitempty"`
	// Derived holds the status values other than wounds and the energy
	// pools (speed, initiative, dodge, ...), keyed by native key.
	Derived   map[string]int `json:"derived,omitempty"`
	Spells    []Spell        `json:"spells,omitempty"`
	Liturgies []Spell        `json:"liturgies,omitempty"`
	Weapons   []Weapon       `json:"weapons,omitempty"`
	Armor     []Armor        `json:"armor,omitempty"`
	Effects   []Effect       `json:"effects,omitempty"`
}

// Spell is a spell, ritual, liturgy or ceremony. Resource names the pool
// its cost is paid from ("asp" or "kap").
type Spell struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Value       int    `json:"value"`
	Cost        string `json:"cost"`
	Resource    string `json:"resource"`
	CastingTime string `json:"castingTime,omitempty"`
	Range       string `json:"range,omitempty"`
}

// Weapon is a melee or ranged weapon item.
type Weapon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	CombatSkill string `json:"combatSkill,omitempty"`
	Damage      string `json:"damage,omitempty"`
	Reach       string `json:"reach,omitempty"`
}

// Armor is a worn armor item.
type Armor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Protection  int    `json:"protection"`
	Encumbrance int    `json:"encumbrance"`
}

// Effect is an active effect on the actor. Remaining is nil for effects
// without a running duration.
type Effect struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Disabled     bool   `json:"disabled"`
	DurationType string `json:"durationType,omitempty"`
	Remaining    *int   `json:"remaining,omitempty"`
}

// Pool is a raw value/max pair as stored by the host.
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// CombatTechnique is a DSA5 combat skill with its derived attack and parry.
type CombatTechnique struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Attack int    `json:"attack"`
	Parry  int    `json:"parry"`
}

// Summary is the lightweight listing form of a character.
type Summary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	System System `json:"system"`
}

// Clamp bounds value to [lo, hi]. When hi < lo, lo wins.
func Clamp(value, lo, hi int) int {
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	return value
}
