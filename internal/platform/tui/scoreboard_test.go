package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/strike5/internal/games/strike5"
	"github.com/vovakirdan/strike5/internal/storage"
)

func TestPointsPerMove(t *testing.T) {
	tests := []struct {
		score, moves float64
		want         string
	}{
		{0, 0, "-"},
		{10, 0, "-"},
		{10, 4, "2.50"},
		{5, 15, "0.33"},
	}

	for _, tt := range tests {
		if got := pointsPerMove(tt.score, tt.moves); got != tt.want {
			t.Errorf("pointsPerMove(%v, %v) = %q, want %q", tt.score, tt.moves, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	if got := statsLine(nil); got != "no games recorded" {
		t.Errorf("statsLine(nil) = %q", got)
	}
	got := statsLine(&storage.GameStats{GamesCount: 2, HighScore: 15, AvgScore: 10, AvgMoves: 20})
	want := "2 games  best 15  avg 10.0 in 20.0 moves  0.50 pts/move"
	if got != want {
		t.Errorf("statsLine() = %q, want %q", got, want)
	}
}

func sendBoard(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T, want ScoreboardModel", next)
	}
	return got, cmd
}

func TestScoreboardVariantsAndPanes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	for _, s := range []struct {
		id           string
		score, moves int
	}{
		{strike5.VariantClassic, 10, 4},
		{strike5.VariantClassic, 25, 10},
		{strike5.VariantLegacy, 5, 2},
	} {
		if _, err := store.SaveScore(s.id, s.score, s.moves); err != nil {
			t.Fatalf("SaveScore() error: %v", err)
		}
	}
	if _, err := store.SaveSimRun(storage.SimRun{
		GameID: strike5.VariantLegacy, Games: 100, MeanScore: 12.5, BestScore: 40, ClearRate: 0.125,
	}); err != nil {
		t.Fatalf("SaveSimRun() error: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.variantID() != strike5.VariantClassic {
		t.Fatalf("first variant = %q, want %q", m.variantID(), strike5.VariantClassic)
	}
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("classic rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "25" || rows[0][3] != "2.50" {
		t.Errorf("top row = %v, want score 25 at 2.50 pts/move", rows[0])
	}
	if !strings.Contains(m.View(), "2 games  best 25") {
		t.Error("view should show the classic stats line")
	}

	m, _ = sendBoard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.variantID() != strike5.VariantLegacy {
		t.Fatalf("after tab variant = %q, want %q", m.variantID(), strike5.VariantLegacy)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("legacy rows = %d, want 1", len(m.table.Rows()))
	}

	m, _ = sendBoard(t, m, runeKey('s'))
	rows = m.table.Rows()
	if len(rows) != 1 {
		t.Fatalf("sim run rows = %d, want 1", len(rows))
	}
	if rows[0][1] != "100" || rows[0][2] != "12.50" || rows[0][4] != "12.5%" {
		t.Errorf("sim run row = %v", rows[0])
	}

	// Wraps back to the first variant, staying on the sim run pane.
	m, _ = sendBoard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.variantID() != strike5.VariantClassic {
		t.Errorf("tab should wrap to %q, got %q", strike5.VariantClassic, m.variantID())
	}
	if !strings.Contains(m.View(), "No simulation runs yet") {
		t.Error("classic has no sim runs; view should say so")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No games recorded yet") {
		t.Error("empty scoreboard should say no games are recorded")
	}

	tests := []struct {
		name      string
		msg       tea.KeyMsg
		goingBack bool
		quitting  bool
	}{
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"q quits", runeKey('q'), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cmd := sendBoard(t, m, tt.msg)
			if got.IsGoingBack() != tt.goingBack || got.IsQuitting() != tt.quitting {
				t.Errorf("goingBack=%v quitting=%v, want %v %v",
					got.IsGoingBack(), got.IsQuitting(), tt.goingBack, tt.quitting)
			}
			if cmd == nil {
				t.Error("leaving the scoreboard should end its program")
			}
			if got.View() != "" {
				t.Error("view should be empty after leaving")
			}
		})
	}
}
