package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show the best runs",
	Long: `Display the top runs, optionally for one difficulty tier.

Examples:
  forest scores
  forest scores hell
  forest scores --stats
  forest scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-difficulty totals instead")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, args []string) error {
	difficulty := ""
	if len(args) == 1 {
		preset, err := config.ParsePreset(args[0])
		if err != nil {
			return err
		}
		difficulty = string(preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening game database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		logger.Info("leaderboard cleared")
		fmt.Println("Leaderboard cleared.")
		return nil
	}
	if flagScoresStats {
		return printStats(store)
	}

	scores, err := store.TopScores(difficulty, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'forest' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-7s  %-6s  %-5s  %-4s  %-5s  %s\n", "Rank", "Player", "Score", "Tier", "Stage", "Day", "Kills", "Date")
	fmt.Printf("  %-4s  %-16s  %-7s  %-6s  %-5s  %-4s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "---", "-----", "----")

	// Print scores
	for i, e := range scores {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-7d  %-6s  %-5d  %-4d  %-5d  %s\n",
			i+1, e.Player, e.Score, e.Difficulty, e.StageID, e.Day, e.Kills, dateStr)
	}

	// Show high score
	fmt.Println()
	if best, err := store.HighScore(); err == nil {
		fmt.Printf("Best overall: %d\n", best)
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("  %-8s  %-5s  %-7s  %-7s  %-10s  %-6s  %s\n", "Tier", "Runs", "Best", "Avg", "Best stage", "Kills", "Last played")
	fmt.Printf("  %-8s  %-5s  %-7s  %-7s  %-10s  %-6s  %s\n", "----", "----", "----", "---", "----------", "-----", "-----------")
	for _, k := range keys {
		s := stats[k]
		fmt.Printf("  %-8s  %-5d  %-7d  %-7.0f  %-10d  %-6d  %s\n",
			s.Difficulty, s.Runs, s.HighScore, s.AvgScore, s.BestStage, s.TotalKills, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
