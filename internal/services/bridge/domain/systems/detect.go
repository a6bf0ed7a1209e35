package systems

import (
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
)

// signature is a structural fingerprint: a block that must be present and
// keys that must exist inside it.
type signature struct {
	system character.System
	block  string
	keys   []string
}

// signatures are checked in order; the first match wins.
var signatures = []signature{
	{system: character.SystemDSA5, block: "system.characteristics", keys: []string{"mu", "kl"}},
	{system: character.SystemDnD5e, block: "system.abilities", keys: []string{"str"}},
	{system: character.SystemPF2e, block: "system.attributes"},
}

// Detect classifies a record by its structure.
func Detect(r *native.Record) character.System {
	if r == nil || !r.Has("system") {
		return character.SystemOther
	}
	for _, sig := range signatures {
		if sig.matches(r) {
			return sig.system
		}
	}
	return character.SystemOther
}

func (s signature) matches(r *native.Record) bool {
	block := r.Get(s.block)
	if !block.IsObject() {
		return false
	}
	for _, key := range s.keys {
		if !block.Get(key).Exists() {
			return false
		}
	}
	return true
}
