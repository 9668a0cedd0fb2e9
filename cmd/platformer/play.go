package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagPractice bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start the campaign, optionally at the given level ID.

Controls:
  Left/Right, A/D   - Run
  Up, W, Space      - Jump
  P                 - Pause
  R                 - Restart (after the campaign ends)
  Esc/B             - Leave (while paused or after the campaign ends)
  Q/Ctrl+C          - Quit

With --practice the chosen level repeats instead of advancing.

Examples:
  platformer play
  platformer play drip-cave
  platformer play lava-lake --practice
  platformer play --levels ./my-levels --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Repeat the chosen level instead of advancing")
}

// runtimeConfig builds the initial RuntimeConfig from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the results database; the game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	sel := tui.MenuResult{GameID: platformer.CampaignID, LevelID: appConfig.Levels.Start}
	if flagPractice {
		sel.GameID = platformer.PracticeID
	}
	if len(args) == 1 {
		sel.LevelID = args[0]
		loader := levelLoader(appConfig)
		if _, err := loader.LoadByID(args[0]); err != nil {
			if ids, lerr := loader.ListIDs(); lerr == nil && len(ids) > 0 {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(ids, ", "))
			}
			return fmt.Errorf("%w (run 'platformer list' to see available levels)", err)
		}
	}

	game, err := tui.NewGame(sel)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	quietTerminal()
	if err := tui.Run(game, store, runtimeConfig(), frameOptions()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
