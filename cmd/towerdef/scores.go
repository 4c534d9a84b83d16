package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/registry"
	"github.com/vovakirdan/towerdef/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded results",
	Long: `Without a mode, shows the most recent games of every mode.
With a mode, shows its best games: highest wave first, then longest survival.

Examples:
  towerdef scores
  towerdef scores classic
  towerdef scores lives --limit 20
  towerdef scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			return fmt.Errorf("unknown mode %q, run 'towerdef modes' to see available modes", mode)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if mode == "" {
			return fmt.Errorf("--clear needs a mode")
		}
		if err := store.ClearResults(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared %s results.\n", mode)
		return nil
	}

	var results []storage.Result
	if mode == "" {
		fmt.Println("Recent games")
		results, err = store.RecentResults(flagScoresLimit)
	} else {
		fmt.Printf("Best games - %s\n", mode)
		results, err = store.TopResults(mode, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'towerdef play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-12s  %-4s  %-8s  %-6s  %s\n", "Rank", "Mode", "Map", "Wave", "Time", "Towers", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-4s  %-8s  %-6s  %s\n", "----", "----", "---", "----", "----", "------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-8s  %-12s  %-4d  %-8s  %-6d  %s\n",
			i+1, r.Mode, r.Map, r.Wave, fmt.Sprintf("%.1fs", r.GameTime), r.TowersBuilt, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
