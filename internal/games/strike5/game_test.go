package strike5

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/strike5/internal/config"
	"github.com/vovakirdan/strike5/internal/core"
	"github.com/vovakirdan/strike5/internal/engine"
	"github.com/vovakirdan/strike5/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New(variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})
	g.anim = config.AnimationConfig{StepTicks: 2, FlashTicks: 3}
	return g
}

// withBoard swaps in an engine session built from an explicit board.
func withBoard(t *testing.T, g *Game, rows [][]engine.Color, pending []engine.Color) {
	t.Helper()
	eng, err := engine.NewGameWithBoard(engine.DefaultRules(), 1, rows, pending)
	if err != nil {
		t.Fatalf("NewGameWithBoard() error: %v", err)
	}
	g.eng = eng
}

func emptyRows() [][]engine.Color {
	rows := make([][]engine.Color, 9)
	for r := range rows {
		rows[r] = make([]engine.Color, 9)
	}
	return rows
}

func step(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.FrameOf(actions...))
}

// settle steps with no input until the game accepts input again.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.animating(); i++ {
		if i > 1000 {
			t.Fatal("animation never finished")
		}
		step(g)
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{VariantClassic, VariantLegacy} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestRulesFor(t *testing.T) {
	rc := config.DefaultStrike5Config().Rules

	rules, err := RulesFor(VariantLegacy, rc)
	if err != nil {
		t.Fatalf("RulesFor() error: %v", err)
	}
	if rules.Axes != engine.AxesLegacy {
		t.Errorf("legacy Axes = %q", rules.Axes)
	}

	rc.Axes = "legacy"
	rules, err = RulesFor(VariantClassic, rc)
	if err != nil {
		t.Fatalf("RulesFor() error: %v", err)
	}
	if rules.Axes != engine.AxesCanonical {
		t.Errorf("classic variant should force canonical axes, got %q", rules.Axes)
	}

	if _, err := RulesFor("strike6", rc); !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("RulesFor(unknown) error = %v, want ErrUnknownGame", err)
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t)

	snap := g.Snapshot()
	if snap.Board.Occupied() != 3 {
		t.Errorf("Occupied() = %d, want 3", snap.Board.Occupied())
	}
	if snap.Cursor != engine.At(4, 4) {
		t.Errorf("Cursor = %v, want (4,4)", snap.Cursor)
	}
	if snap.State != StatePlaying || snap.Selected != nil {
		t.Errorf("State = %q, Selected = %v", snap.State, snap.Selected)
	}
}

func TestCursorClamps(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < 12; i++ {
		step(g, core.ActionUp)
		step(g, core.ActionLeft)
	}
	if g.cursor != engine.At(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}
	for i := 0; i < 12; i++ {
		step(g, core.ActionDown)
		step(g, core.ActionRight)
	}
	if g.cursor != engine.At(8, 8) {
		t.Errorf("cursor = %v, want (8,8)", g.cursor)
	}
}

func TestSelectAndMove(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	rows[0][0] = 1
	withBoard(t, g, rows, []engine.Color{2, 3, 4})

	g.cursor = engine.At(0, 0)
	step(g, core.ActionConfirm)
	if snap := g.Snapshot(); snap.Selected == nil || *snap.Selected != engine.At(0, 0) {
		t.Fatalf("Selected = %v, want (0,0)", snap.Selected)
	}

	step(g, core.ActionRight)
	step(g, core.ActionRight)
	step(g, core.ActionRight)
	step(g, core.ActionConfirm)

	if g.Snapshot().State != StateAnimating {
		t.Fatalf("State = %q, want animating", g.Snapshot().State)
	}
	if g.eng.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", g.eng.Moves())
	}

	// Path (0,0)..(0,3) has three steps of two ticks each.
	for i := 0; i < 5; i++ {
		step(g)
		if !g.animating() {
			t.Fatalf("animation ended after %d ticks, want 6", i+1)
		}
	}
	step(g)
	if g.animating() {
		t.Fatal("animation still running after 6 ticks")
	}

	if c, _ := g.eng.Color(engine.At(0, 3)); c != 1 {
		t.Errorf("ball at (0,3) = %d, want 1", c)
	}
	if g.eng.EmptyCount() != 77 {
		t.Errorf("EmptyCount() = %d, want 77", g.eng.EmptyCount())
	}
	if g.Snapshot().Selected != nil {
		t.Error("selection should clear after a move")
	}
}

func TestInputIgnoredWhileAnimating(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	rows[0][0] = 1
	withBoard(t, g, rows, []engine.Color{2, 3, 4})

	g.selected, g.hasSel = engine.At(0, 0), true
	g.cursor = engine.At(8, 8)
	step(g, core.ActionConfirm)

	step(g, core.ActionUp)
	if g.cursor != engine.At(8, 8) {
		t.Errorf("cursor moved during animation: %v", g.cursor)
	}
	settle(t, g)
	step(g, core.ActionUp)
	if g.cursor != engine.At(7, 8) {
		t.Errorf("cursor = %v after animation, want (7,8)", g.cursor)
	}
}

func TestRejectedMoveKeepsSelection(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	rows[0][0] = 1
	rows[7][8] = 2
	rows[8][7] = 2
	withBoard(t, g, rows, []engine.Color{2, 3, 4})

	g.cursor = engine.At(0, 0)
	step(g, core.ActionConfirm)
	g.cursor = engine.At(8, 8)
	res := step(g, core.ActionConfirm)

	if res.Message != "No path to that cell" {
		t.Errorf("Message = %q", res.Message)
	}
	if g.Snapshot().Selected == nil {
		t.Error("selection should survive a rejected move")
	}
	if g.eng.Moves() != 0 || g.animating() {
		t.Errorf("rejected move was played: moves %d", g.eng.Moves())
	}
}

func TestConfirmWithoutSelection(t *testing.T) {
	g := newTestGame(t)
	withBoard(t, g, emptyRows(), []engine.Color{2, 3, 4})

	res := step(g, core.ActionConfirm)
	if res.Message != "Select a ball first" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestBackClearsSelection(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	rows[4][4] = 3
	withBoard(t, g, rows, []engine.Color{2, 3, 4})

	step(g, core.ActionConfirm)
	if !g.hasSel {
		t.Fatal("Confirm on a ball should select it")
	}
	step(g, core.ActionBack)
	if g.hasSel {
		t.Error("Back should clear the selection")
	}
}

func TestReselectAnotherBall(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	rows[4][4] = 3
	rows[4][5] = 5
	withBoard(t, g, rows, []engine.Color{2, 3, 4})

	step(g, core.ActionConfirm)
	step(g, core.ActionRight)
	step(g, core.ActionConfirm)
	if !g.hasSel || g.selected != engine.At(4, 5) {
		t.Errorf("selected = %v (%v), want (4,5)", g.selected, g.hasSel)
	}
}

func TestClearingMoveFlashes(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	for c := 0; c < 4; c++ {
		rows[4][c] = 2
	}
	rows[0][4] = 2
	withBoard(t, g, rows, []engine.Color{1, 6, 7})

	g.selected, g.hasSel = engine.At(0, 4), true
	g.cursor = engine.At(4, 4)
	res := step(g, core.ActionConfirm)
	if res.Message != "5 balls cleared" {
		t.Errorf("Message = %q", res.Message)
	}

	// Four path steps of two ticks, then the flash.
	for i := 0; i < 8; i++ {
		step(g)
	}
	if g.phase != phaseFlash || len(g.flash) != 5 {
		t.Fatalf("phase = %d, flash = %v; want flash of 5 cells", g.phase, g.flash)
	}
	settle(t, g)

	if g.State().Score != 5 {
		t.Errorf("Score = %d, want 5", g.State().Score)
	}
	if g.eng.EmptyCount() != 81 {
		t.Errorf("EmptyCount() = %d, want 81", g.eng.EmptyCount())
	}
}

func TestGameOverWhenBoardFills(t *testing.T) {
	g := newTestGame(t)
	rows := make([][]engine.Color, 9)
	for r := range rows {
		rows[r] = make([]engine.Color, 9)
		for c := range rows[r] {
			rows[r][c] = engine.Color((r*3+c)%7 + 1)
		}
	}
	rows[8][8] = engine.NoColor
	withBoard(t, g, rows, []engine.Color{1, 1, 1})

	g.selected, g.hasSel = engine.At(8, 7), true
	g.cursor = engine.At(8, 8)
	step(g, core.ActionConfirm)
	if g.State().GameOver {
		t.Fatal("game over should wait for the animation")
	}
	settle(t, g)

	if !g.State().GameOver {
		t.Fatal("GameOver = false on a full board")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("State = %q, want game_over", g.Snapshot().State)
	}

	before := g.Snapshot()
	step(g, core.ActionUp)
	if g.Snapshot().Cursor != before.Cursor {
		t.Error("input after game over should be ignored")
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t)

	step(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("Paused = false after Pause")
	}
	step(g, core.ActionUp)
	if g.cursor != engine.At(4, 4) {
		t.Errorf("cursor moved while paused: %v", g.cursor)
	}
	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestDeterministicReplay(t *testing.T) {
	inputs := []core.Action{
		core.ActionUp, core.ActionConfirm, core.ActionLeft, core.ActionConfirm,
		core.ActionDown, core.ActionDown, core.ActionConfirm, core.ActionRight,
		core.ActionConfirm, core.ActionUp, core.ActionConfirm,
	}

	run := func() uint64 {
		g := newTestGame(t)
		for i := 0; i < 5; i++ {
			for _, a := range inputs {
				step(g, a)
			}
			if starts := g.eng.LegalStarts(); len(starts) > 0 {
				g.cursor = starts[0]
				step(g, core.ActionConfirm)
			}
			if ends := g.eng.LegalEnds(); len(ends) > 0 {
				g.cursor = ends[len(ends)/2]
				step(g, core.ActionConfirm)
			}
			settle(t, g)
		}
		return g.Snapshot().Board.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and input gave hashes %x and %x", a, b)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	rows := emptyRows()
	rows[0][0] = 1
	withBoard(t, g, rows, []engine.Color{2, 3, 4})
	g.selected, g.hasSel = engine.At(0, 0), true

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Strike 5", "Score: 0  Moves: 0", "1/81", "Next:", helpText} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	bw, _ := g.boardSize()
	x0 := (80 - bw) / 2
	ball := screen.GetCell(x0+2, hudHeight+1)
	if ball.Rune != BallChar || ball.Color != core.BallColor(1) {
		t.Errorf("ball cell = %+v", ball)
	}
	if screen.Get(x0+1, hudHeight+1) != SelectLeft {
		t.Errorf("selection bracket = %q", screen.Get(x0+1, hudHeight+1))
	}
	if screen.Get(x0+1+4*cellWidth, hudHeight+1+4) != CursorLeft {
		t.Error("cursor bracket missing at (4,4)")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if !g.State().Paused {
		t.Error("a too-small window should pause the game")
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), tooSmallText) {
		t.Errorf("render = %q", screen.String())
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("Resize to a large window should unpause")
	}
}

// setSettings installs cfg without validation and restores the previous
// settings when the test ends.
func setSettings(t *testing.T, cfg config.Strike5Config) {
	t.Helper()
	prev := Settings()
	settingsMu.Lock()
	settings = cfg
	settingsMu.Unlock()
	t.Cleanup(func() {
		settingsMu.Lock()
		settings = prev
		settingsMu.Unlock()
	})
}

func TestConfigureRejectsInvalidSettings(t *testing.T) {
	setSettings(t, config.DefaultStrike5Config())

	bad := config.DefaultStrike5Config()
	bad.Rules.LineLength = 0
	if err := Configure(bad); err == nil {
		t.Fatal("Configure() accepted a zero line length")
	}
	if got := Settings().Rules.LineLength; got != 5 {
		t.Errorf("settings changed after rejected Configure: line length %d", got)
	}

	good := config.DefaultStrike5Config()
	good.Rules.Colors = 4
	if err := Configure(good); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	if got := Settings().Rules.Colors; got != 4 {
		t.Errorf("Colors = %d, want 4", got)
	}
}

func TestResetFallsBackOnBadRules(t *testing.T) {
	bad := config.DefaultStrike5Config()
	bad.Rules.Size = 0
	setSettings(t, bad)

	g := New(variants[1])
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	res := g.Step(core.InputFrame{})

	if !strings.HasPrefix(res.Message, "Default rules: ") {
		t.Errorf("message = %q, want the rules error", res.Message)
	}
	rules := g.Engine().Rules()
	if rules.Size != 9 || rules.Axes != engine.AxesLegacy {
		t.Errorf("fallback rules = %+v, want defaults with legacy axes", rules)
	}
}
