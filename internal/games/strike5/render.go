package strike5

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/strike5/internal/core"
	"github.com/vovakirdan/strike5/internal/engine"
)

const (
	cellWidth = 3 // "[●]"
	hudHeight = 3
	footer    = 2 // Message line + help line
)

// Visual characters for rendering.
const (
	BallChar     = '●'
	EmptyChar    = '·'
	FlashChar    = '✱'
	CursorLeft   = '['
	CursorRight  = ']'
	SelectLeft   = '('
	SelectRight  = ')'
	helpText     = "arrows move  enter pick/drop  esc cancel  p pause  q quit"
	tooSmallText = "Window too small"
)

func (g *Game) boardSize() (w, h int) {
	n := g.eng.Size()
	return n*cellWidth + 2, n + 2
}

func (g *Game) minSize() (w, h int) {
	bw, bh := g.boardSize()
	return bw + 2, hudHeight + bh + footer
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bw, bh := g.boardSize()
	boardX := (g.screenW - bw) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, bw)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+bh)

	switch {
	case g.gameOver:
		g.renderGameOver(dst, boardX, boardY, bw, bh)
	case g.paused:
		g.renderBanner(dst, boardX, boardY+bh/2, bw, "PAUSED", core.ColorYellow)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, tooSmallText)
	minW, minH := g.minSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderHUD draws the title, counters and the pending wave.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len([]rune(title)))/2, 0, title, core.ColorBrightWhite)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d  Moves: %d", g.eng.Score(), g.eng.Moves()))

	n := g.eng.Size()
	occ := fmt.Sprintf("%d/%d", n*n-g.eng.EmptyCount(), n*n)
	dst.DrawText(boardX+boardW-len(occ), 1, occ)

	dst.DrawText(boardX, 2, "Next:")
	for i, c := range g.eng.Pending() {
		dst.SetColored(boardX+6+i*2, 2, BallChar, core.BallColor(int(c)))
	}
}

// renderBoard draws the frame, balls, cursor and selection.
func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	bw, bh := g.boardSize()
	dst.DrawBox(core.NewRect(x0, y0, bw, bh), core.ColorGray)

	rows := g.eng.Rows()
	if g.phase == phaseTravel {
		rows = g.travel.board
	}

	flash := make(map[engine.Cell]bool, len(g.flash))
	for _, c := range g.flash {
		flash[c] = true
	}

	for r, row := range rows {
		for c, color := range row {
			cell := engine.At(r, c)
			x := x0 + 1 + c*cellWidth + 1
			y := y0 + 1 + r
			switch {
			case flash[cell]:
				dst.SetColored(x, y, FlashChar, core.ColorBrightWhite)
			case color.Empty():
				dst.SetColored(x, y, EmptyChar, core.ColorGray)
			default:
				dst.SetColored(x, y, BallChar, core.BallColor(int(color)))
			}
		}
	}

	if g.phase == phaseTravel {
		p := g.travel.path[g.travel.index]
		dst.SetColored(x0+2+p.Col*cellWidth, y0+1+p.Row, BallChar, core.BallColor(int(g.travel.color)))
		return
	}
	if g.animating() || g.gameOver {
		return
	}

	if g.hasSel {
		g.bracket(dst, x0, y0, g.selected, SelectLeft, SelectRight, core.ColorYellow)
	}
	g.bracket(dst, x0, y0, g.cursor, CursorLeft, CursorRight, core.ColorBrightWhite)
}

func (g *Game) bracket(dst *core.Screen, x0, y0 int, c engine.Cell, l, r rune, color core.Color) {
	x := x0 + 1 + c.Col*cellWidth
	y := y0 + 1 + c.Row
	dst.SetColored(x, y, l, color)
	dst.SetColored(x+2, y, r, color)
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCentered(y, g.message)
	}
	dst.DrawTextCentered(y+1, helpText)
}

func (g *Game) renderGameOver(dst *core.Screen, x0, y0, w, h int) {
	mid := y0 + h/2
	g.renderBanner(dst, x0, mid-1, w, "GAME OVER", core.ColorRed)
	g.renderBanner(dst, x0, mid, w, "Score: "+strconv.Itoa(g.eng.Score()), core.ColorBrightWhite)
	g.renderBanner(dst, x0, mid+1, w, "R restart  Q quit", core.ColorGray)
}

// renderBanner writes text centered over the board on a cleared strip.
func (g *Game) renderBanner(dst *core.Screen, x0, y, w int, text string, color core.Color) {
	tw := len([]rune(text)) + 2
	x := x0 + (w-tw)/2
	for i := 0; i < tw; i++ {
		dst.Set(x+i, y, ' ')
	}
	dst.DrawTextColored(x+1, y, text, color)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
