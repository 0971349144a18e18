// Package registry provides a global registry for pilot factories.
// Pilots register themselves in init() functions, allowing the CLI to
// discover and instantiate input sources without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Pilot is an input source for headless runs.
// Pilots see a read-only view of the simulation and report, once per frame,
// whether the flap button is held. The caller turns the level into edges.
type Pilot interface {
	// Name returns the identifier the pilot was registered under.
	Name() string

	// Hold reports whether the flap button is held this frame.
	Hold(v flappy.View) (bool, error)

	// Close releases resources held by the pilot.
	Close() error
}

// Options are passed to every factory. Pilots ignore fields they do not use.
type Options struct {
	Script string // Path to a script file, for scripted pilots
	Seed   int64
}

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	Name        string
	Description string
}

// Factory is a function that creates a new pilot.
type Factory func(opts Options) (Pilot, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Typically called from a pilot's init() function.
// Panics if a pilot with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered pilots, sorted by name.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(factories))
	for name := range factories {
		result = append(result, PilotInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new pilot by name.
// Returns an error if the name is not registered or the factory fails.
func Create(name string, opts Options) (Pilot, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", name)
	}

	p, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create pilot %q: %w", name, err)
	}
	return p, nil
}

// Exists checks if a pilot with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// Board returns the score board that runs flown by the named pilot are
// saved under. Human runs use the bare game ID.
func Board(gameID, pilot string) string {
	if pilot == "" {
		return gameID
	}
	return gameID + "/" + pilot
}
