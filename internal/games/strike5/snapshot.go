package strike5

import "github.com/vovakirdan/strike5/internal/engine"

// StateType is the presentation state of the game.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateAnimating   StateType = "animating"
	StatePaused      StateType = "paused"
	StateGameOver    StateType = "game_over"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the game and its controller state for determinism
// testing and replay.
type Snapshot struct {
	Tick     uint64
	Variant  string
	Board    engine.Snapshot
	Cursor   engine.Cell
	Selected *engine.Cell
	State    StateType
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.animating():
		state = StateAnimating
	}

	s := Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Board:   g.eng.Snapshot(),
		Cursor:  g.cursor,
		State:   state,
	}
	if g.hasSel {
		sel := g.selected
		s.Selected = &sel
	}
	return s
}
