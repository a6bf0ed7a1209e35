package dsa5

import "github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"

// DSA5 stores life points as a wound counter: system.status.wounds.value
// grows as the character is hurt and wounds.max is the Lebensenergie
// maximum. These two functions are the only place the inversion happens.

// HealthFromWounds converts a wound counter to remaining life points in [0, max].
func HealthFromWounds(counter, max int) int {
	return character.Clamp(max-counter, 0, max)
}

// WoundsFromHealth converts remaining life points to a wound counter,
// clamping current into [0, max] first.
func WoundsFromHealth(current, max int) int {
	return max - character.Clamp(current, 0, max)
}

// ApplyHealthDelta heals (positive) or damages (negative) a wound counter
// and returns the counter before and after.
func ApplyHealthDelta(counter, max, delta int) (before, after int) {
	current := HealthFromWounds(counter, max)
	return counter, WoundsFromHealth(current+delta, max)
}
