package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and stages",
	Long:  `Shows the registered games and the stages the arena cycles through.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	catalog := tanks.LoadCatalog()
	if catalog != nil && catalog.Len() > 0 {
		fmt.Println()
		fmt.Println("Stages:")
		fmt.Println()
		fmt.Printf("  %-5s  %-20s  %s\n", "Stage", "ID", "Name")
		fmt.Printf("  %-5s  %-20s  %s\n", "-----", "--", "----")
		for _, lvl := range catalog.Levels() {
			fmt.Printf("  %-5d  %-20s  %s\n", lvl.Stage, lvl.ID, lvl.Name)
		}
	}

	fmt.Println()
	fmt.Println("Run 'tanks play' to start a round.")
}
