package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/strike5/internal/games/strike5"
	"github.com/vovakirdan/strike5/internal/registry"
	"github.com/vovakirdan/strike5/internal/sim"
	"github.com/vovakirdan/strike5/internal/storage"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimMaxMoves int
	flagSimVariant  string
	flagSimSave     bool
	flagSimJSON     bool
	flagSimPerGame  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games and report metrics",
	Long: `Play many sessions with a random policy and print aggregate metrics:
mean score, clear rate, repeated moves and no-path rejections.

Session i of a run uses seed+i, so the same --seed reproduces a run no
matter how many workers are used. Defaults come from the sim section of
strike5.yaml.

Examples:
  strike5 sim
  strike5 sim --games 1000 --workers 8 --seed 7
  strike5 sim --variant strike5_legacy --max-moves 500
  strike5 sim --json --per-game > run.json
  strike5 sim --save && strike5 scores --sim-runs`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 0, "Number of sessions (default from config)")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Concurrent workers (default from config)")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", -1, "Steps per session, 0 plays until the board fills (default from config)")
	simCmd.Flags().StringVar(&flagSimVariant, "variant", strike5.VariantClassic, "Variant to simulate")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the summary as JSON")
	simCmd.Flags().BoolVar(&flagSimPerGame, "per-game", false, "Include per-session counters in JSON output")
}

func runSim(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagSimVariant) {
		return fmt.Errorf("unknown variant %q (run 'strike5 list')", flagSimVariant)
	}
	rules, err := strike5.RulesFor(flagSimVariant, settings.Rules)
	if err != nil {
		return err
	}

	runner := sim.Runner{
		Rules:    rules,
		Games:    settings.Sim.Games,
		Workers:  settings.Sim.Workers,
		MaxMoves: settings.Sim.MaxMoves,
		Seed:     flagSeed,
		Logger:   newLogger("sim"),
	}
	if flagSimGames > 0 {
		runner.Games = flagSimGames
	}
	if flagSimWorkers > 0 {
		runner.Workers = flagSimWorkers
	}
	if flagSimMaxMoves >= 0 {
		runner.MaxMoves = flagSimMaxMoves
	}
	if runner.Seed == 0 {
		runner.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if flagSimSave {
		if err := saveSimRun(runner, summary, elapsed); err != nil {
			return err
		}
	}

	if flagSimJSON {
		if !flagSimPerGame {
			summary.PerGame = nil
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary(runner, summary, elapsed)
	return nil
}

func printSummary(r sim.Runner, s sim.Summary, elapsed time.Duration) {
	fmt.Printf("Variant:        %s\n", flagSimVariant)
	fmt.Printf("Seed:           %d\n", r.Seed)
	fmt.Printf("Games:          %d (%d full, %d truncated)\n", s.Games, s.Terminated, s.Truncated)
	fmt.Printf("Steps:          %d (%d accepted)\n", s.TotalSteps, s.TotalAccepted)
	fmt.Printf("Mean score:     %.2f\n", s.MeanScore)
	fmt.Printf("Best score:     %d\n", s.BestScore)
	fmt.Printf("Mean moves:     %.2f\n", s.MeanAccepted)
	fmt.Printf("Clear rate:     %.4f\n", s.ClearRate)
	fmt.Printf("Repeat rate:    %.4f\n", s.RepeatRate)
	fmt.Printf("No-path rate:   %.4f\n", s.NoPathRate)
	fmt.Printf("Balls cleared:  %d\n", s.TotalCleared)
	fmt.Printf("Elapsed:        %s\n", elapsed.Round(time.Millisecond))
}

func saveSimRun(r sim.Runner, s sim.Summary, elapsed time.Duration) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveSimRun(storage.SimRun{
		GameID:        flagSimVariant,
		Seed:          r.Seed,
		Games:         s.Games,
		Workers:       r.Workers,
		MaxMoves:      r.MaxMoves,
		TotalSteps:    s.TotalSteps,
		TotalAccepted: s.TotalAccepted,
		TotalCleared:  s.TotalCleared,
		MeanScore:     s.MeanScore,
		MeanMoves:     s.MeanAccepted,
		ClearRate:     s.ClearRate,
		RepeatRate:    s.RepeatRate,
		NoPathRate:    s.NoPathRate,
		BestScore:     s.BestScore,
		DurationMS:    elapsed.Milliseconds(),
	})
	return err
}
