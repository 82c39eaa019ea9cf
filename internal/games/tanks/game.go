// Package tanks adapts the tank arena simulation to the arcade platform:
// it loads configuration and levels, maps platform input onto the engine and
// draws the arena into a character screen.
package tanks

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tanks"

// configPath stores the custom config path set via CLI
var configPath string

// levelDir stores a custom level directory set via CLI
var levelDir string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives engine diagnostics; discarded unless set
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelDir makes the game load stages from dir instead of the built-in set.
func SetLevelDir(dir string) {
	levelDir = dir
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetLogger routes engine diagnostics to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig returns the effective game configuration: the config file (or
// embedded defaults) with the difficulty preset applied.
func LoadConfig() config.TanksConfig {
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultTanksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// LoadCatalog returns the stage catalog, preferring the custom level
// directory when one is set.
func LoadCatalog() *levels.Catalog {
	if levelDir != "" {
		cat, err := levels.NewLoader(levelDir).Catalog()
		if err == nil {
			return cat
		}
		logger.Warn("using built-in levels", "dir", levelDir, "err", err)
	}
	cat, err := levels.Builtin().Catalog()
	if err != nil {
		logger.Error("built-in levels unavailable", "err", err)
		return nil
	}
	return cat
}

// Game implements registry.Game on top of the arena engine.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.TanksConfig
	catalog *levels.Catalog
	engine  *sim.Engine

	paused         bool
	screenTooSmall bool
}

// New creates a new tank arena game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tank Arena"
}

// Reset starts a new round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = LoadConfig()
	if g.catalog == nil {
		g.catalog = LoadCatalog()
	}

	var src sim.LevelSource
	if g.catalog != nil {
		src = g.catalog
	}
	g.engine = sim.New(g.cfg, src,
		sim.WithSeed(runtime.Seed),
		sim.WithTickRate(runtime.TickRate),
		sim.WithLogger(logger),
	)

	g.paused = false
	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
}

// Resize records new terminal dimensions. The arena has a fixed size, so
// only the too-small check changes.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.engine.IsOver() {
		next := g.runtime
		next.Seed = g.runtime.Seed + 1
		g.Reset(next)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.IsOver() {
		g.paused = !g.paused
	}

	if g.paused || g.screenTooSmall || g.engine.IsOver() {
		return core.StepResult{State: g.State()}
	}

	g.engine.Tick(InputFor(in))
	return core.StepResult{State: g.State()}
}

// InputFor maps a platform input frame onto an engine command.
func InputFor(in core.InputFrame) sim.Input {
	cmd := sim.Input{Fire: in.Has(core.ActionFire)}
	if a, ok := in.Direction(); ok {
		switch a {
		case core.ActionUp:
			cmd.Move = sim.DirUp
		case core.ActionRight:
			cmd.Move = sim.DirRight
		case core.ActionDown:
			cmd.Move = sim.DirDown
		case core.ActionLeft:
			cmd.Move = sim.DirLeft
		}
		cmd.Moving = true
	}
	return cmd
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Stage:    g.engine.Stage(),
		Lives:    g.engine.Lives(),
		Ticks:    g.engine.Ticks(),
		GameOver: g.engine.IsOver(),
		Reason:   g.engine.Reason(),
		Paused:   g.paused,
	}
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// Snapshot returns the current engine state.
func (g *Game) Snapshot() sim.Snapshot {
	return g.engine.Snapshot()
}

// EncodeState serializes the current engine state for episode storage.
func (g *Game) EncodeState() ([]byte, error) {
	snap := g.engine.Snapshot()
	return snap.Encode()
}

var (
	_ registry.Recorder = (*Game)(nil)
	_ registry.Resizer  = (*Game)(nil)
)
