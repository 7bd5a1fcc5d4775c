// Package strike5 adapts the ball-matching engine to the terminal front ends:
// a board cursor, ball selection, path animation and terminal rendering.
package strike5

import (
	"fmt"

	"github.com/vovakirdan/strike5/internal/config"
	"github.com/vovakirdan/strike5/internal/core"
	"github.com/vovakirdan/strike5/internal/engine"
)

// phase is what the game is doing between player moves.
type phase int

const (
	phaseInput  phase = iota // Waiting for the player
	phaseTravel              // Ball moving along its path
	phaseFlash               // Cleared cells highlighted
)

// Game implements registry.Game for one variant.
type Game struct {
	variant Variant
	anim    config.AnimationConfig
	eng     *engine.Game

	cursor   engine.Cell
	selected engine.Cell
	hasSel   bool

	phase    phase
	travel   travel
	flash    []engine.Cell
	phaseAge int
	last     engine.TurnResult

	message  string
	tick     uint64
	screenW  int
	screenH  int
	tooSmall bool
	paused   bool
	gameOver bool
}

// New creates a game for the given variant. Call Reset before use.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the variant id.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns a one-line summary of the variant.
func (g *Game) Description() string {
	return g.variant.Description
}

// Reset starts a new session from the current settings. Rules that cannot
// be used fall back to the defaults and the reason is shown to the player.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	s := Settings()
	var notice string
	rules, err := RulesFor(g.variant.ID, s.Rules)
	if err != nil {
		rules = g.variant.defaultRules()
		notice = "Default rules: " + err.Error()
	}
	eng, err := engine.NewGame(rules, cfg.Seed)
	if err != nil {
		panic(fmt.Sprintf("strike5: %s rules rejected: %v", g.variant.ID, err))
	}

	*g = Game{
		variant: g.variant,
		anim:    s.Animation,
		eng:     eng,
		cursor:  engine.At(rules.Size/2, rules.Size/2),
		message: notice,
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minSize()
	g.tooSmall = w < minW || h < minH
}

// Engine exposes the underlying session, for tests and tooling.
func (g *Game) Engine() *engine.Game {
	return g.eng
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.gameOver {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	switch g.phase {
	case phaseTravel:
		g.stepTravel()
	case phaseFlash:
		g.stepFlash()
	default:
		g.handleInput(in)
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Message: g.message}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		Moves:    g.eng.Moves(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// handleInput moves the cursor and turns Confirm presses into selections
// and moves.
func (g *Game) handleInput(in core.InputFrame) {
	n := g.eng.Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, n-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, n-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, n-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, n-1)
	}

	if in.Has(core.ActionBack) && g.hasSel {
		g.hasSel = false
		g.message = ""
	}
	if in.Has(core.ActionConfirm) {
		g.confirm()
	}
}

// confirm acts on the cell under the cursor.
func (g *Game) confirm() {
	color, err := g.eng.Color(g.cursor)
	if err != nil {
		return
	}

	if !color.Empty() {
		g.selected = g.cursor
		g.hasSel = true
		g.message = ""
		return
	}
	if !g.hasSel {
		g.message = "Select a ball first"
		return
	}

	before := g.eng.Rows()
	res, err := g.eng.ApplyMove(g.selected, g.cursor)
	if err != nil {
		g.message = err.Error()
		return
	}
	if !res.Validity.Legal() {
		g.message = rejectionMessage(res.Validity)
		return
	}

	g.hasSel = false
	g.last = res
	g.message = turnMessage(res)
	g.startTravel(before, res)
}

// finishTurn runs once the animation for a move is over.
func (g *Game) finishTurn() {
	g.phase = phaseInput
	g.phaseAge = 0
	g.flash = nil
	if g.eng.Full() {
		g.gameOver = true
		g.message = "Board full"
	}
}

func rejectionMessage(v engine.Validity) string {
	switch v {
	case engine.ValidityNoPath:
		return "No path to that cell"
	case engine.ValidityBothOccupied:
		return "That cell is taken"
	case engine.ValidityBothEmpty, engine.ValidityStartEmpty:
		return "Select a ball first"
	default:
		return "Move rejected"
	}
}

func turnMessage(res engine.TurnResult) string {
	switch {
	case res.ClearedByMove():
		return plural(len(res.Cleared), "ball") + " cleared"
	case len(res.Cleared) > 0:
		return "Lucky drop: " + plural(len(res.Cleared), "ball") + " cleared"
	default:
		return ""
	}
}
