// tanks is a terminal tank arena: drive a tank around a tile grid, shoot
// enemy tanks and protect the base.
//
// Usage:
//
//	tanks list              - List games and built-in stages
//	tanks play              - Play a round in the terminal
//	tanks simulate          - Run headless episodes with a scripted policy
//	tanks serve             - Start SSH server for remote play
//	tanks scores            - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 50)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tanks/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Load stages from a directory of YAML levels
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tank Arena - top-down tank battles in your terminal",
	Long: `Tank Arena is a terminal tank battle. Drive around the arena, shoot
the enemy tanks before they reach your base and collect power-ups.

Available commands:
  list      - Show games and built-in stages
  play      - Play a round
  simulate  - Run headless episodes and record them
  serve     - Start SSH server for remote play
  scores    - View high scores

Examples:
  tanks play
  tanks play --difficulty hard
  tanks simulate --episodes 20 --seed 1
  tanks serve --ssh :2222
  tanks scores --interactive`,
	PersistentPreRunE: configureGame,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of custom YAML levels")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// configureGame applies the global flags to the game package before any
// command creates an engine.
func configureGame(_ *cobra.Command, _ []string) error {
	switch flagDifficulty {
	case "", "easy", "normal", "hard", "fixed":
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(flagDifficulty)
	tanks.SetLevelDir(flagLevels)
	return nil
}

// newLogger builds a logger at the --log-level threshold.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
