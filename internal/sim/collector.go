package sim

import "github.com/vovakirdan/strike5/internal/engine"

// GameStats holds the counters for one simulated session.
type GameStats struct {
	Seed         int64 `json:"seed"`
	Steps        int   `json:"steps"`
	Accepted     int   `json:"accepted"`
	Clears       int   `json:"clears"`        // Moves whose ball completed a line
	Code0        int   `json:"code0"`         // Accepted moves with no clear
	NoPath       int   `json:"no_path"`       // Code 0.5 rejections
	OtherRejects int   `json:"other_rejects"` // Codes 1, 2 and 3
	Repeats      int   `json:"repeats"`       // Same start and end as the previous step
	BallsCleared int   `json:"balls_cleared"` // Balls removed by clearing moves
	SpawnClears  int   `json:"spawn_clears"`  // Balls removed by lines a wave completed
	Score        int   `json:"score"`
	Terminated   bool  `json:"terminated"` // Board filled up
	Truncated    bool  `json:"truncated"`  // Hit the move limit
}

// Collector accumulates GameStats turn by turn.
type Collector struct {
	stats   GameStats
	prev    [2]engine.Cell
	hasPrev bool
}

// NewCollector starts counting for the session with the given seed.
func NewCollector(seed int64) *Collector {
	return &Collector{stats: GameStats{Seed: seed}}
}

// Observe records one step.
func (c *Collector) Observe(start, end engine.Cell, res engine.TurnResult) {
	c.stats.Steps++

	move := [2]engine.Cell{start, end}
	if c.hasPrev && move == c.prev {
		c.stats.Repeats++
	}
	c.prev = move
	c.hasPrev = true

	switch res.Validity {
	case engine.ValidityCleared:
		c.stats.Accepted++
		c.stats.Clears++
		c.stats.BallsCleared += len(res.Cleared)
	case engine.ValidityOK:
		c.stats.Accepted++
		c.stats.Code0++
		c.stats.SpawnClears += res.ClearedBySpawn()
	case engine.ValidityNoPath:
		c.stats.NoPath++
	default:
		c.stats.OtherRejects++
	}
	c.stats.Score += res.Points
}

// Finish closes the session and returns its counters.
func (c *Collector) Finish(terminated, truncated bool) GameStats {
	c.stats.Terminated = terminated
	c.stats.Truncated = truncated
	return c.stats
}

// Summary aggregates the sessions of one run.
type Summary struct {
	Games         int         `json:"games"`
	TotalSteps    int64       `json:"total_steps"`
	TotalAccepted int64       `json:"total_accepted"`
	TotalClears   int64       `json:"total_clears"`
	TotalNoPath   int64       `json:"total_no_path"`
	TotalRepeats  int64       `json:"total_repeats"`
	TotalCleared  int64       `json:"total_cleared"` // Balls, move and spawn clears
	MeanScore     float64     `json:"mean_score"`
	MeanAccepted  float64     `json:"mean_accepted"`
	ClearRate     float64     `json:"clear_rate"`   // Clearing moves per accepted move
	RepeatRate    float64     `json:"repeat_rate"`  // Repeats per step
	NoPathRate    float64     `json:"no_path_rate"` // Code 0.5 per step
	BestScore     int         `json:"best_score"`
	Terminated    int         `json:"terminated"`
	Truncated     int         `json:"truncated"`
	PerGame       []GameStats `json:"per_game,omitempty"`
}

// Summarize folds per-game counters into a Summary. games keeps its order.
func Summarize(games []GameStats) Summary {
	s := Summary{Games: len(games), PerGame: games}
	var totalScore int64
	for _, g := range games {
		s.TotalSteps += int64(g.Steps)
		s.TotalAccepted += int64(g.Accepted)
		s.TotalClears += int64(g.Clears)
		s.TotalNoPath += int64(g.NoPath)
		s.TotalRepeats += int64(g.Repeats)
		s.TotalCleared += int64(g.BallsCleared + g.SpawnClears)
		totalScore += int64(g.Score)
		s.BestScore = max(s.BestScore, g.Score)
		if g.Terminated {
			s.Terminated++
		}
		if g.Truncated {
			s.Truncated++
		}
	}

	if s.Games > 0 {
		s.MeanScore = float64(totalScore) / float64(s.Games)
		s.MeanAccepted = float64(s.TotalAccepted) / float64(s.Games)
	}
	if s.TotalAccepted > 0 {
		s.ClearRate = float64(s.TotalClears) / float64(s.TotalAccepted)
	}
	if s.TotalSteps > 0 {
		s.RepeatRate = float64(s.TotalRepeats) / float64(s.TotalSteps)
		s.NoPathRate = float64(s.TotalNoPath) / float64(s.TotalSteps)
	}
	return s
}
