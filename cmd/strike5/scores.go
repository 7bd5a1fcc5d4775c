package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/strike5/internal/registry"
	"github.com/vovakirdan/strike5/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresRuns  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top scores for a variant, or a summary of every variant
when none is given.

Examples:
  strike5 scores
  strike5 scores strike5
  strike5 scores strike5 --limit 25
  strike5 scores strike5_legacy --clear
  strike5 scores --sim-runs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the variant")
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "sim-runs", false, "Show recent simulation runs instead")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'strike5 list' to see available variants.")
			os.Exit(1)
		}
	}

	switch {
	case flagScoresRuns:
		err = printSimRuns(store, gameID)
	case gameID == "":
		err = printAllStats(store)
	case flagScoresClear:
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Cleared scores for %s.\n", gameID)
		}
	default:
		err = printTopScores(store, gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printTopScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	title := gameID
	if info, ok := registry.Info(gameID); ok {
		title = info.Title
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'strike5 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Score", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-6d  %s\n", i+1, entry.Score, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %-8s  %s\n", "Variant", "Games", "Best", "Average", "Last played")
	for _, info := range registry.List() {
		s, ok := all[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-6d  %-8.1f  %s\n",
			info.ID, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSimRuns(store *storage.Store, gameID string) error {
	runs, err := store.RecentSimRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No simulation runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-10s  %-10s  %-10s  %s\n", "Variant", "Games", "Mean", "Clear rate", "No path", "Date")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-6d  %-10.2f  %-10.3f  %-10.3f  %s\n",
			r.GameID, r.Games, r.MeanScore, r.ClearRate, r.NoPathRate, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
