// Package dsa5 adapts Das Schwarze Auge 5 (DSA5) Foundry actors to the
// canonical character model.
//
// # Storage conventions
//
//   - Eigenschaften live under system.characteristics.<key> with lowercase
//     keys. A block stores either a final value or its components
//     (initial, species, modifier, advances).
//   - Life points are a wound counter (system.status.wounds.value counts
//     damage taken). HealthFromWounds and WoundsFromHealth are the single
//     conversion pair.
//   - Astral and karma energy are plain value/max pools.
//   - Skills, combat techniques, advantages and special abilities are
//     embedded items distinguished by type.
//
// Fields with several historical locations are read through ordered
// candidate path lists in paths.go.
package dsa5
