package strike5

import "github.com/vovakirdan/strike5/internal/engine"

// travel is a ball moving along its path over the board as it was before
// the move.
type travel struct {
	board [][]engine.Color // Pre-move board with the start cell emptied
	path  []engine.Cell
	color engine.Color
	index int // Current position in path
}

// startTravel begins the animation for an accepted move. The engine has
// already applied the turn; the animation replays it from the old board.
func (g *Game) startTravel(before [][]engine.Color, res engine.TurnResult) {
	g.phaseAge = 0
	if g.anim.StepTicks <= 0 || len(res.Path) < 2 {
		g.startFlash(res)
		return
	}

	start := res.Path[0]
	color := before[start.Row][start.Col]
	before[start.Row][start.Col] = engine.NoColor

	g.travel = travel{
		board: before,
		path:  res.Path,
		color: color,
	}
	g.phase = phaseTravel
}

func (g *Game) stepTravel() {
	g.phaseAge++
	if g.phaseAge < g.anim.StepTicks {
		return
	}
	g.phaseAge = 0
	g.travel.index++
	if g.travel.index >= len(g.travel.path)-1 {
		g.travel = travel{}
		g.startFlash(g.last)
	}
}

// startFlash highlights the cells the turn cleared, or ends the turn if
// there are none.
func (g *Game) startFlash(res engine.TurnResult) {
	g.phaseAge = 0
	if g.anim.FlashTicks <= 0 || len(res.Cleared) == 0 {
		g.finishTurn()
		return
	}
	g.flash = res.Cleared
	g.phase = phaseFlash
}

func (g *Game) stepFlash() {
	g.phaseAge++
	if g.phaseAge >= g.anim.FlashTicks {
		g.finishTurn()
	}
}

// animating reports whether input is currently ignored.
func (g *Game) animating() bool {
	return g.phase != phaseInput
}
