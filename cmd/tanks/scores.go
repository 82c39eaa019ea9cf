package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagInteractive bool
	flagEpisodes    bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores, or the most recent recorded rounds.

Examples:
  tanks scores
  tanks scores --limit 25
  tanks scores --episodes
  tanks scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagEpisodes, "episodes", false, "List recent rounds instead of high scores")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagEpisodes {
		printEpisodes(store)
		return
	}

	scores, err := store.TopScores(tanks.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Tank Arena")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tanks play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Stage", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10.3f  %-5d  %s\n", i+1, entry.Score, entry.Stage, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(tanks.ID); err == nil {
		fmt.Printf("Best: %.3f  Average: %.3f  Rounds: %d  Best stage: %d\n",
			stats.HighScore, stats.AvgScore, stats.GamesCount, stats.BestStage)
	}
}

func printEpisodes(store *storage.Store) {
	episodes, err := store.RecentEpisodes(tanks.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving episodes: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Rounds - Tank Arena")
	fmt.Println()

	if len(episodes) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-20s  %-10s  %-5s  %-7s  %s\n", "ID", "Seed", "Score", "Stage", "Ticks", "Reason")
	fmt.Printf("  %-8s  %-20s  %-10s  %-5s  %-7s  %s\n", "--", "----", "-----", "-----", "-----", "------")
	for _, ep := range episodes {
		id := ep.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  %-8s  %-20d  %-10.3f  %-5d  %-7d  %s\n", id, ep.Seed, ep.Score, ep.Stage, ep.Ticks, ep.Reason)
	}
}
