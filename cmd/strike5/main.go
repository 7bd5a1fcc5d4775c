// strike5 is a five-in-a-row ball game for the terminal, with SSH and HTTP
// servers for remote play and a headless simulator.
//
// Usage:
//
//	strike5 list              - List available variants
//	strike5 play [variant]    - Play a variant (menu when omitted)
//	strike5 menu              - Start menu to pick variants interactively
//	strike5 scores <variant>  - Show high scores for a variant
//	strike5 serve             - Start SSH and HTTP servers for remote play
//	strike5 sim               - Run headless games and report metrics
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible games
//	--db <path>      - Set database path (default: ~/.strike5/scores.db)
//	--config <path>  - Use a custom strike5.yaml
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/strike5/internal/config"
	"github.com/vovakirdan/strike5/internal/core"
	"github.com/vovakirdan/strike5/internal/games/strike5"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string

	// Loaded in PersistentPreRunE.
	env      config.Env
	settings config.Strike5Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "strike5",
	Short: "Strike 5 - line up five balls in your terminal",
	Long: `Strike 5 is a 9x9 ball-matching game. Move a ball along a free
path, line up five of a color to clear them, and keep the board from
filling up as new balls drop in after every move.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View high scores
  serve    - Start SSH and HTTP servers for remote play
  sim      - Run headless games and report metrics

Examples:
  strike5 play
  strike5 play strike5_legacy --seed 42
  strike5 serve --ssh :2222 --http :8080
  strike5 sim --games 500 --workers 8`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default $STRIKE5_DB or "+config.DefaultDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom strike5.yaml (default $STRIKE5_CONFIG)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadSettings reads the environment and config file and hands the rules
// to the game package. Flags win over the environment.
func loadSettings(_ *cobra.Command, _ []string) error {
	env = config.LoadEnv()
	if flagDBPath == "" {
		flagDBPath = env.DBPath
	}
	if flagConfig == "" {
		flagConfig = env.Config
	}

	cfg, err := config.LoadStrike5(flagConfig)
	if err != nil {
		return err
	}
	if err := strike5.Configure(cfg); err != nil {
		return err
	}
	settings = cfg
	return nil
}

// newLogger returns the stderr logger used by long-running commands.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
