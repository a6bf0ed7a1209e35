package dsa5

// Candidate source paths per canonical field. Each list is evaluated
// top-down and the first defined value wins; adding a fallback source is a
// change to these lists only.
var (
	skillValuePaths          = []string{PathTalentValue, "system.value"}
	skillCharacteristicPaths = []string{"system.characteristic.value", "system.characteristic"}
	skillGroupPaths          = []string{"system.group.value", "system.group"}
	skillAdvancementPaths    = []string{"system.StF.value", "system.StF"}

	combatAttackPaths = []string{"system.at.value", "system.attack.value"}
	combatParryPaths  = []string{"system.pa.value", "system.parry.value"}

	aspCostPaths          = []string{"system.AsPCost.value", "system.AsPCost"}
	kapCostPaths          = []string{"system.KaPCost.value", "system.KaPCost"}
	castingTimePaths      = []string{"system.castingTime.value", "system.castingTime"}
	spellRangePaths       = []string{"system.range.value", "system.range"}
	weaponSkillPaths      = []string{"system.combatskill.value", "system.combatskill"}
	weaponDamagePaths     = []string{"system.damage.value", "system.damage"}
	weaponReachPaths      = []string{"system.reach.value", "system.reach"}
	armorProtectionPaths  = []string{"system.protection.value", "system.protection"}
	armorEncumbrancePaths = []string{"system.encumbrance.value", "system.encumbrance"}
	effectNamePaths       = []string{"name", "label"}

	professionPaths = []string{PathCareer, PathProfession}

	// Creature index sources. Compendium creatures are less regular than
	// player sheets, so most fields have several historical locations.
	creatureLevelPaths       = []string{"system.details.level.value", "system.level.value", "system.status.level.value"}
	creatureSpeciesPaths     = []string{PathSpecies, "system.species.value", "system.details.type"}
	creatureCulturePaths     = []string{PathCulture, "system.culture.value"}
	creatureExperiencePaths  = []string{PathExperienceTotal, "system.experience.total", "system.status.experience"}
	creatureSizePaths        = []string{PathSize, "system.size.value"}
	creatureLifePointsPaths  = []string{PathWoundsMax, PathWoundsValue, "system.wounds.max"}
	creatureDefensePaths     = []string{"system.status.defense.value", "system.defense.value", "system.status.defense"}
	creatureRangeDefensePath = []string{"system.status.rangeDefense.value", "system.rangeDefense.value"}
	creatureSpellSignals     = []string{"system.status.astralenergy.max", "system.status.karmaenergy.max", "system.spells", "system.liturgies", "system.details.tradition"}
	creatureTraitsPaths      = []string{"system.details.traits.value", "system.traits.value"}
	creatureRarityPaths      = []string{"system.details.rarity", "system.rarity"}
	creatureDescriptionPaths = []string{"system.details.biography.value", "system.details.description.value", "system.biography.value", "system.description.value"}
)
