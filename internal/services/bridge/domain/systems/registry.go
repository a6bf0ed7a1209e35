package systems

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dnd5e"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/pf2e"
)

// Adapter converts between one game system's native records and the
// canonical character model.
type Adapter interface {
	System() character.System
	Import(*native.Record) character.ImportResult
	Export(*native.Record, character.Update) character.ExportResult
	Patch(*native.Record, character.Update) (character.Patch, character.ExportResult)
	Validate(character.Update) character.ValidationResult
	Summarize(r *native.Record, locale string) string
}

var (
	// ErrRegistryNil indicates registration was attempted on a nil registry.
	ErrRegistryNil = errors.New("adapter registry is nil")
	// ErrAdapterRequired indicates a nil adapter was provided for registration.
	ErrAdapterRequired = errors.New("adapter is required")
	// ErrAdapterAlreadyRegistered indicates a second adapter for the same system.
	ErrAdapterAlreadyRegistered = errors.New("adapter already registered")
)

// Registry maps system tags to adapters.
type Registry struct {
	adapters map[character.System]Adapter
	mu       sync.RWMutex
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[character.System]Adapter)}
}

// NewDefaultRegistry registers every adapter this module ships.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, adapter := range []Adapter{
		dsa5.NewAdapter(),
		dnd5e.NewAdapter(),
		pf2e.NewAdapter(),
	} {
		if err := registry.Register(adapter); err != nil {
			panic(err)
		}
	}
	return registry
}

// Register adds an adapter under its system tag.
func (r *Registry) Register(adapter Adapter) error {
	if r == nil {
		return ErrRegistryNil
	}
	if adapter == nil {
		return ErrAdapterRequired
	}
	system := adapter.System()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[system]; exists {
		return fmt.Errorf("%w: system %s", ErrAdapterAlreadyRegistered, system)
	}
	r.adapters[system] = adapter
	return nil
}

// Get returns the adapter for a system tag.
func (r *Registry) Get(system character.System) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[system]
	return adapter, ok
}

// Systems lists the registered system tags in sorted order.
func (r *Registry) Systems() []character.System {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	systems := make([]character.System, 0, len(r.adapters))
	for system := range r.adapters {
		systems = append(systems, system)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })
	return systems
}
