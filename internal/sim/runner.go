// Package sim plays headless strike5 sessions with a random policy and
// reports aggregate metrics.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/strike5/internal/engine"
)

// ErrNoGames is returned when a run asks for zero sessions.
var ErrNoGames = errors.New("sim: games must be positive")

// Runner plays Games sessions across Workers goroutines.
// Session i uses seed Seed+i, so a run is reproducible regardless of Workers.
type Runner struct {
	Rules    engine.Rules
	Games    int
	Workers  int
	MaxMoves int // Steps per session; 0 means play until the board fills
	Seed     int64
	Logger   *log.Logger // Optional
}

// Run plays every session and returns the summary.
// Cancelling ctx stops workers between turns; the error is then ctx.Err().
func (r Runner) Run(ctx context.Context) (Summary, error) {
	if r.Games <= 0 {
		return Summary{}, ErrNoGames
	}
	if err := r.Rules.Validate(); err != nil {
		return Summary{}, fmt.Errorf("sim: %w", err)
	}
	workers := max(1, min(r.Workers, r.Games))

	results := make([]GameStats, r.Games)
	jobs := make(chan int)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				stats, err := r.playOne(ctx, r.Seed+int64(i))
				if err != nil {
					errs <- err
					return
				}
				results[i] = stats
			}
		}()
	}

	var err error
feed:
	for i := 0; i < r.Games; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case err = <-errs:
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err == nil {
		select {
		case err = <-errs:
		default:
		}
	}
	if err != nil {
		return Summary{}, err
	}

	sum := Summarize(results)
	if r.Logger != nil {
		r.Logger.Info("sim run finished",
			"games", sum.Games,
			"workers", workers,
			"mean_score", sum.MeanScore,
			"clear_rate", sum.ClearRate,
		)
	}
	return sum, nil
}

// playOne runs a single session to the end.
func (r Runner) playOne(ctx context.Context, seed int64) (GameStats, error) {
	rng := rand.New(rand.NewSource(seed))
	g, err := engine.NewGameRand(r.Rules, rng)
	if err != nil {
		return GameStats{}, fmt.Errorf("sim: seed %d: %w", seed, err)
	}

	col := NewCollector(seed)
	for {
		if err := ctx.Err(); err != nil {
			return GameStats{}, err
		}
		if g.Full() {
			return col.Finish(true, false), nil
		}
		if r.MaxMoves > 0 && col.stats.Steps >= r.MaxMoves {
			return col.Finish(false, true), nil
		}

		start, end, ok := RandomMove(g, rng)
		if !ok {
			return col.Finish(true, false), nil
		}
		res, err := g.ApplyMove(start, end)
		if err != nil {
			return GameStats{}, fmt.Errorf("sim: seed %d step %d: %w", seed, col.stats.Steps, err)
		}
		col.Observe(start, end, res)

		if r.Logger != nil {
			r.Logger.Debug("step", "seed", seed, "start", start, "end", end, "validity", res.Validity)
		}
	}
}

// RandomMove picks a uniform occupied start and a uniform empty end.
// ok is false when either set is empty.
func RandomMove(g *engine.Game, rng *rand.Rand) (start, end engine.Cell, ok bool) {
	starts := g.LegalStarts()
	ends := g.LegalEnds()
	if len(starts) == 0 || len(ends) == 0 {
		return engine.Cell{}, engine.Cell{}, false
	}
	return starts[rng.Intn(len(starts))], ends[rng.Intn(len(ends))], true
}
