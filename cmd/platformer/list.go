package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and levels",
	Long:  `Shows the registered game modes and the levels of the campaign in play order.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	fmt.Println("Game modes:")
	fmt.Println()
	for _, g := range registry.List() {
		fmt.Printf("  %-20s  %s\n", g.ID, g.Title)
	}
	fmt.Println()

	lvls, err := platformer.LoadLevels()
	if err != nil {
		return err
	}
	if len(lvls) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-24s  %s\n", "#", maxIDLen, "ID", "Name", "Size")
	fmt.Printf("  %-3s  %-*s  %-24s  %s\n", "-", maxIDLen, "--", "----", "----")
	for i, l := range lvls {
		coins := 0
		for _, s := range l.Grid.Spawns() {
			if s.Kind == core.KindCoin {
				coins++
			}
		}
		fmt.Printf("  %-3d  %-*s  %-24s  %dx%d, %d coins\n",
			i+1, maxIDLen, l.ID, l.Name, l.Grid.Width, l.Grid.Height, coins)
	}

	if store := openStore(); store != nil {
		defer store.Close()
		if best, err := store.HighScore(platformer.CampaignID); err == nil && best > 0 {
			fmt.Println()
			fmt.Printf("Best campaign score: %d coins\n", best)
		}
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to start at a level.")
	return nil
}
