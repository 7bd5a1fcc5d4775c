// Package registry maps game ids to factories. Game packages register their
// variants in init(), so front ends can list and start them by id without
// importing each variant directly.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/strike5/internal/core"
)

// ErrUnknownGame is returned by Create for an id nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a front end drives: fixed-tick stepping with abstract input,
// and rendering into a core.Screen. Implementations hold no terminal or
// network state.
type Game interface {
	// ID returns the unique identifier, e.g. "strike5". Used for CLI
	// arguments and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new session with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. dst is cleared beforehand.
	Render(dst *core.Screen)

	// State returns the score, game-over and pause flags.
	State() core.GameState
}

// Describer is implemented by games that carry a one-line description.
type Describer interface {
	Description() string
}

// Resizer is implemented by games that can follow a terminal resize
// without starting over. Front ends fall back to Reset otherwise.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh, not yet Reset, game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory. Panics if id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	factories[id] = f
	infos[id] = info
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Info returns the metadata for id.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists checks if a game with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
