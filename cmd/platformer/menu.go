package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play the selected level.
After leaving a level you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play from the selected level
  M            - Toggle campaign/practice mode
  Tab          - Results board
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --db ./results.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	quietTerminal()

	for {
		// Reload each time so edited level files and new results show up
		lvls, err := platformer.LoadLevels()
		if err != nil {
			return err
		}

		menuResult, err := tui.RunMenu(lvls, store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsResults {
			goBack, err := tui.RunResults(store, lvls, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := tui.NewGame(menuResult)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		runCfg := cfg
		if runCfg.Seed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, runCfg, frameOptions()); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
