package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/strike5/internal/core"
	"github.com/vovakirdan/strike5/internal/platform/tui"
	"github.com/vovakirdan/strike5/internal/registry"
	"github.com/vovakirdan/strike5/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for high scores.
Back out of a paused or finished game to return to the menu.

Examples:
  strike5 menu
  strike5 menu --fps 60
  strike5 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStoreOrWarn()
	menuLoop(store, terminalConfig())
	if store != nil {
		store.Close()
	}
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
		// --seed applies to the first game only.
		cfg.Seed = 0
	}
}
