package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/strike5/internal/core"
	"github.com/vovakirdan/strike5/internal/platform/tui"
	"github.com/vovakirdan/strike5/internal/registry"
	"github.com/vovakirdan/strike5/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or open the menu when none is given.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Pick up a ball, then drop it on an empty cell
  Esc/B             - Drop the selection (back to menu when paused or over)
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  strike5 play
  strike5 play strike5
  strike5 play strike5_legacy --seed 42
  strike5 play --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(cmd, args)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'strike5 list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStoreOrWarn()
	backToMenu, runErr := tui.Run(game, store, terminalConfig())
	if runErr == nil && backToMenu {
		menuLoop(store, terminalConfig())
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig sizes the runtime config from the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStoreOrWarn opens the score database. Play continues without it.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
