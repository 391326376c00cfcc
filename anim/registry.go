// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package anim

import (
	"errors"
	"sort"
	"sync"
)

// Registry errors.
var (
	// ErrNoEngineAvailable is returned when no engine is registered or
	// available on the current system.
	ErrNoEngineAvailable = errors.New("anim: no engine available")

	// ErrUnknownEngine is matched by EngineNotFoundError.
	ErrUnknownEngine = errors.New("anim: unknown engine")

	// ErrEngineUnavailable is matched by EngineUnavailableError.
	ErrEngineUnavailable = errors.New("anim: engine unavailable")
)

// RegistryEntry describes a registered engine.
type RegistryEntry struct {
	// Name is the unique identifier for this engine.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: native vector engines (rlottie)
	//   - 10: pure Go fallbacks
	Priority int

	// Engine loads animations.
	Engine Engine

	// Available reports if the engine can be used on this system.
	Available func() bool
}

var globalRegistry = &Registry{}

// Registry manages registered animation engines.
//
// Engines register themselves without frameplay knowing about them:
//
//	func init() {
//	    anim.Register("gif", 10, gifEngine{}, nil)
//	}
//
// and callers pick the best one:
//
//	a, err := anim.Open("spinner.gif")
//	// or a specific engine:
//	a, err := anim.OpenByName("rlottie", "loader.json")
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds an engine to the global registry.
//
// If available is nil, the engine is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, engine Engine, available func() bool) {
	globalRegistry.Register(name, priority, engine, available)
}

// Unregister removes an engine from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered engine names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available engines sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific engine.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// Open loads the animation at path with the best engine that accepts it.
func Open(path string) (Animation, error) {
	return globalRegistry.Open(path)
}

// OpenData loads an in-memory animation with the best engine that accepts it.
func OpenData(data []byte, resourcePath string) (Animation, error) {
	return globalRegistry.OpenData(data, resourcePath)
}

// OpenByName loads the animation at path with a specific engine.
func OpenByName(name, path string) (Animation, error) {
	return globalRegistry.OpenByName(name, path)
}

// Register adds an engine to this registry.
func (r *Registry) Register(name string, priority int, engine Engine, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Engine:    engine,
		Available: available,
	}
}

// Unregister removes an engine from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered engine names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available engines sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the entry registered under name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// Open tries every available engine in priority order until one loads path.
func (r *Registry) Open(path string) (Animation, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return r.first(func(e Engine) (Animation, error) {
		return e.LoadFile(path)
	})
}

// OpenData tries every available engine in priority order until one loads
// data.
func (r *Registry) OpenData(data []byte, resourcePath string) (Animation, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return r.first(func(e Engine) (Animation, error) {
		return e.LoadData(data, resourcePath)
	})
}

// OpenByName loads path with the named engine.
func (r *Registry) OpenByName(name, path string) (Animation, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Engine.LoadFile(path)
}

// first runs load against each available engine. An engine answering
// ErrUnsupported is skipped; any other error is remembered and returned if
// no engine succeeds.
func (r *Registry) first(load func(Engine) (Animation, error)) (Animation, error) {
	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoEngineAvailable
	}

	var lastErr error
	for _, name := range names {
		entry, err := r.lookup(name)
		if err != nil {
			continue
		}
		a, err := load(entry.Engine)
		if err == nil {
			return a, nil
		}
		if errors.Is(err, ErrUnsupported) && lastErr != nil {
			continue
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoEngineAvailable
}

func (r *Registry) lookup(name string) (*RegistryEntry, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &EngineNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &EngineUnavailableError{Name: name}
	}
	return entry, nil
}

// sortedNames returns engine names sorted by priority (highest first), ties
// broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// EngineNotFoundError indicates a named engine is not registered.
type EngineNotFoundError struct {
	Name string
}

func (e *EngineNotFoundError) Error() string {
	return "anim: engine not found: " + e.Name
}

// Unwrap lets errors.Is match ErrUnknownEngine.
func (e *EngineNotFoundError) Unwrap() error { return ErrUnknownEngine }

// EngineUnavailableError indicates an engine exists but is not available.
type EngineUnavailableError struct {
	Name string
}

func (e *EngineUnavailableError) Error() string {
	return "anim: engine unavailable: " + e.Name
}

// Unwrap lets errors.Is match ErrEngineUnavailable.
func (e *EngineUnavailableError) Unwrap() error { return ErrEngineUnavailable }
