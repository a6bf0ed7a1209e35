package dsa5

import (
	"sort"
	"strings"

	"github.com/louisbranch/vttbridge/internal/platform/i18n/catalog"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"golang.org/x/text/message"
)

// DefaultLocale is the summary language DSA5 players expect.
const DefaultLocale = "de-DE"

// topSkillCount is how many skills the summary lists.
const topSkillCount = 5

// Summarize renders a Markdown character sheet for a DSA5 actor.
func Summarize(r *native.Record, locale string) string {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	p := catalog.Default().Printer(locale)

	result := Import(r)
	if !result.Success || result.Character == nil {
		return p.Sprintf("summary.error", strings.Join(result.Errors, ", "))
	}
	return FormatSummary(p, result.Character)
}

// FormatSummary renders an imported character with the given printer.
func FormatSummary(p *message.Printer, ch *character.Character) string {
	var data *character.DSA5Data
	if ch.SystemData != nil {
		data = ch.SystemData.DSA5
	}
	unknown := p.Sprintf("summary.unknown")
	orUnknown := func(s string) string {
		if s == "" {
			return unknown
		}
		return s
	}

	var lines []string
	add := func(s ...string) { lines = append(lines, s...) }

	add("**"+ch.Name+"**",
		p.Sprintf("summary.origin", orUnknown(ch.Profile.Species), orUnknown(ch.Profile.Profession), orUnknown(ch.Profile.Culture)),
		"")

	add(p.Sprintf("summary.attributes"))
	parts := make([]string, 0, len(Attributes))
	for _, attr := range Attributes {
		parts = append(parts, p.Sprintf("%s %d", attr.Code, ch.Attributes[attr.Code]))
	}
	add(strings.Join(parts, " | "), "")

	add(p.Sprintf("summary.health"), p.Sprintf("%d / %d", ch.Health.Current, ch.Health.Max))
	if data != nil {
		add(p.Sprintf("summary.wounds", data.Wounds))
	}
	add("")

	if data != nil && len(data.Derived) > 0 {
		add(p.Sprintf("summary.derived"))
		parts := make([]string, 0, len(data.Derived))
		for _, key := range DerivedStats {
			if value, ok := data.Derived[key]; ok {
				parts = append(parts, p.Sprintf("%s %d", p.Sprintf("summary.derived_"+key), value))
			}
		}
		add(strings.Join(parts, " | "), "")
	}

	if len(ch.Resources) > 0 {
		add(p.Sprintf("summary.resources"))
		for _, res := range ch.Resources {
			add(p.Sprintf("- %s: %d / %d", res.Name, res.Current, res.Max))
		}
		add("")
	}

	if ch.Profile.Experience != nil {
		add(p.Sprintf("summary.experience"), p.Sprintf("summary.experience_points", *ch.Profile.Experience), "")
	}

	if data != nil && len(data.CombatTechniques) > 0 {
		add(p.Sprintf("summary.combat"))
		for _, ct := range data.CombatTechniques {
			add(p.Sprintf("summary.combat_entry", ct.Name, ct.Attack, ct.Parry))
		}
		add("")
	}

	if data != nil && len(data.Weapons)+len(data.Armor) > 0 {
		add(p.Sprintf("summary.equipment"))
		for _, w := range data.Weapons {
			if w.Damage == "" {
				add("- " + w.Name)
				continue
			}
			add(p.Sprintf("summary.weapon_entry", w.Name, w.Damage))
		}
		for _, a := range data.Armor {
			add(p.Sprintf("summary.armor_entry", a.Name, a.Protection, a.Encumbrance))
		}
		add("")
	}

	if data != nil {
		addSpells := func(heading, pool string, spells []character.Spell) {
			if len(spells) == 0 {
				return
			}
			add(p.Sprintf(heading))
			for _, spell := range spells {
				add(p.Sprintf("summary.spell_entry", spell.Name, spell.Value, spell.Cost, pool))
			}
			add("")
		}
		addSpells("summary.spells", "AsP", data.Spells)
		addSpells("summary.liturgies", "KaP", data.Liturgies)
	}

	if len(ch.Skills) > 0 {
		add(p.Sprintf("summary.skills"), p.Sprintf("summary.skills_available", len(ch.Skills)))
		top := TopSkills(ch.Skills, topSkillCount)
		add(p.Sprintf("summary.top_skills", len(top)))
		for _, skill := range top {
			add(p.Sprintf("- %s: %d", skill.Name, skill.Value))
		}
		add("")
	}

	if data != nil && len(data.Effects) > 0 {
		add(p.Sprintf("summary.effects"))
		for _, effect := range data.Effects {
			if effect.Disabled {
				add(p.Sprintf("summary.effect_disabled", effect.Name))
				continue
			}
			add("- " + effect.Name)
		}
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// TopSkills returns up to n skills by descending value, ties by name.
func TopSkills(skills []character.Skill, n int) []character.Skill {
	sorted := make([]character.Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
