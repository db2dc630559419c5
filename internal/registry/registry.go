// Package registry provides a global registry for presentation frontends.
// Frontends register themselves in init() functions, allowing the CLI
// to pick a shell by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// Session is everything a frontend needs to drive one game.
type Session struct {
	// Game is the simulation to drive. The frontend calls Step once per frame.
	Game *pong.Game

	// Runtime carries the frame rate and the initial terminal size.
	Runtime core.RuntimeConfig

	// Logger receives lifecycle events. Nil means log.Default().
	Logger *log.Logger

	// Script, when non-nil, replaces live input with recorded intent masks.
	// The frontend stops advancing once the last frame has been shown.
	Script []uint8
}

// Log returns the session logger, falling back to the default one.
func (s Session) Log() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// Frontend presents a game and feeds it player intents.
// Frontends own their event loop. They return when the player quits,
// the script ends or ctx is cancelled.
type Frontend interface {
	// Name is the identifier used on the command line (e.g. "tui").
	Name() string

	// Description is a one-line summary for help output.
	Description() string

	// Run blocks until the session ends.
	Run(ctx context.Context, s Session) error
}

// FrontendInfo contains metadata about a registered frontend.
type FrontendInfo struct {
	Name        string
	Description string
}

// Factory is a function that creates a new frontend instance.
type Factory func() Frontend

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a frontend factory to the registry.
// Typically called from a frontend's init() function.
// Panics if a frontend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: frontend %q already registered", name))
	}

	factories[name] = f

	// Get description by creating a temporary instance
	descriptions[name] = f().Description()
}

// List returns information about all registered frontends, sorted by name.
func List() []FrontendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FrontendInfo, 0, len(factories))
	for name := range factories {
		result = append(result, FrontendInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new frontend by its name.
// Returns an error if the name is not registered.
func Create(name string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown frontend %q", name)
	}

	return f(), nil
}

// Exists checks if a frontend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
