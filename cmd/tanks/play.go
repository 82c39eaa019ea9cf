package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of Tank Arena.

Controls:
  W/A/S/D, Arrows - Drive
  Space/F         - Fire
  P/Esc           - Pause
  R               - Restart (after game over)
  Ctrl+S          - Save a screenshot to ~/.tanks/screenshots
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - More lives, fewer enemies on the field
  normal - Default settings
  hard   - One life, more enemies, faster fire
  fixed  - Config values without progression

Logs are written to ~/.tanks/tanks.log while playing.

Examples:
  tanks play
  tanks play --difficulty hard
  tanks play --levels ./my-levels
  tanks play --config ./my-tanks.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// The alternate screen owns stdout, so logs go to a file.
	logger, closeLog := openPlayLog()
	defer closeLog()
	tanks.SetLogger(logger)

	game, err := registry.Create(tanks.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openPlayLog opens ~/.tanks/tanks.log for appending. On failure logs are
// discarded.
func openPlayLog() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "tanks"), func() {}
	}
	path := filepath.Join(home, ".tanks", "tanks.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard, "tanks"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, "tanks"), func() {}
	}
	return newLogger(f, "tanks"), func() { f.Close() }
}
