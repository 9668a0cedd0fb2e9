package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagRunID       string
	flagClearScores bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [level]",
	Short: "Show stored level results",
	Long: `Display stored results.

Without arguments, shows per-level stats and the best campaign scores.
With a level ID, shows that level's stats and most recent attempts.

Examples:
  platformer results
  platformer results drip-cave
  platformer results --run 5f0c2e1a-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&flagRunID, "run", "", "Show every attempt of one campaign run")
	resultsCmd.Flags().BoolVar(&flagClearScores, "clear-scores", false, "Delete all stored campaign scores")
}

func runResults(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClearScores:
		if err := store.ClearScores(platformer.CampaignID); err != nil {
			return err
		}
		fmt.Println("Campaign scores cleared.")
		return nil
	case flagRunID != "":
		return printRun(store, flagRunID)
	case len(args) == 1:
		return printLevel(store, args[0])
	default:
		return printOverview(store)
	}
}

func printOverview(store *storage.Store) error {
	stats, err := store.LevelStatsAll()
	if err != nil {
		return err
	}

	fmt.Println("Level Results")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to record your first level!")
		return nil
	}

	fmt.Printf("  %-20s  %-6s  %-5s  %-8s  %-6s  %s\n", "Level", "Tries", "Wins", "Best", "Deaths", "Last played")
	fmt.Printf("  %-20s  %-6s  %-5s  %-8s  %-6s  %s\n", "-----", "-----", "----", "----", "------", "-----------")
	for _, s := range stats {
		best, deaths := "-", "-"
		if s.Wins > 0 {
			best = fmt.Sprintf("%.2fs", s.BestTime)
			deaths = fmt.Sprintf("%d", s.FewestDeaths)
		}
		fmt.Printf("  %-20s  %-6d  %-5d  %-8s  %-6s  %s\n",
			s.LevelID, s.Attempts, s.Wins, best, deaths, s.LastPlayed.Format("2006-01-02 15:04"))
	}

	scores, err := store.TopScores(platformer.CampaignID, 5)
	if err != nil {
		return err
	}
	if len(scores) > 0 {
		fmt.Println()
		fmt.Println("Best campaign runs:")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %3d coins  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func printLevel(store *storage.Store, levelID string) error {
	s, err := store.LevelStatsFor(levelID)
	if err != nil {
		return err
	}

	fmt.Printf("Results - %s\n", levelID)
	fmt.Println()
	if s.Attempts == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}
	fmt.Printf("  Attempts: %d   Wins: %d", s.Attempts, s.Wins)
	if s.Wins > 0 {
		fmt.Printf("   Best: %.2fs   Fewest deaths: %d", s.BestTime, s.FewestDeaths)
	}
	fmt.Println()
	fmt.Println()

	recent, err := store.RecentResults(levelID, 20)
	if err != nil {
		return err
	}
	printAttempts(recent)
	return nil
}

func printRun(store *storage.Store, runID string) error {
	results, err := store.RunResults(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n", runID)
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No results for this run.")
		return nil
	}
	printAttempts(results)
	return nil
}

func printAttempts(results []storage.LevelResult) {
	fmt.Printf("  %-20s  %-6s  %-8s  %-6s  %s\n", "Level", "Result", "Time", "Deaths", "Date")
	fmt.Printf("  %-20s  %-6s  %-8s  %-6s  %s\n", "-----", "------", "----", "------", "----")
	for _, r := range results {
		fmt.Printf("  %-20s  %-6s  %-8s  %-6d  %s\n",
			r.LevelID, r.Status, fmt.Sprintf("%.2fs", r.Elapsed), r.Deaths, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
