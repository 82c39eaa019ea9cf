package tanks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 50, Seed: 7})
	return g
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Tank Arena", g.Title())
}

func TestInputFor(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    sim.Input
	}{
		{"idle", nil, sim.Input{}},
		{"fire", []core.Action{core.ActionFire}, sim.Input{Fire: true}},
		{"left", []core.Action{core.ActionLeft}, sim.MoveInput(sim.DirLeft)},
		{"fire and down", []core.Action{core.ActionFire, core.ActionDown}, sim.Input{Fire: true, Move: sim.DirDown, Moving: true}},
		{"pause only", []core.Action{core.ActionPause}, sim.Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := core.NewInputFrame()
			for _, a := range tt.actions {
				in.Set(a)
			}
			assert.Equal(t, tt.want, InputFor(in))
		})
	}
}

func TestStepMovesPlayer(t *testing.T) {
	g := newGame(t)
	start := g.Engine().Player().Rect.TopLeft()

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	res := g.Step(in)

	assert.Equal(t, start.Y-2, g.Engine().Player().Rect.Y)
	assert.Equal(t, 1, res.State.Stage)
	assert.Equal(t, 3, res.State.Lives)
}

func TestPauseFreezesEngine(t *testing.T) {
	g := newGame(t)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	require.True(t, res.State.Paused)

	ticks := g.Engine().Ticks()
	g.Step(core.NewInputFrame())
	assert.Equal(t, ticks, g.Engine().Ticks())

	// The unpausing step ticks as well.
	g.Step(pause)
	assert.Equal(t, ticks+1, g.Engine().Ticks())
	g.Step(core.NewInputFrame())
	assert.Equal(t, ticks+2, g.Engine().Ticks())
}

func TestRestartAfterGameOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tanks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing:\n  stage_time_limit_ms: 100\n"), 0o600))
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := newGame(t)
	idle := core.NewInputFrame()
	for range 5 {
		g.Step(idle)
	}
	require.True(t, g.State().GameOver)

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	assert.False(t, g.State().GameOver)
	assert.Zero(t, g.Engine().Ticks())
}

func TestRenderDrawsArena(t *testing.T) {
	g := newGame(t)
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Stage: 1")
	assert.Contains(t, out, "Lives: 3")
	assert.Contains(t, out, "/^^\\")
	assert.Contains(t, out, "▲", "player barrel faces up")
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 50})
	screen := core.NewScreen(40, 20)

	g.Render(screen)

	assert.True(t, strings.Contains(screen.String(), "Window too small"))
}

func TestResizeKeepsRound(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 50, Seed: 3})
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	ticks := g.Engine().Ticks()

	g.Resize(20, 10)
	assert.True(t, g.screenTooSmall)
	g.Step(core.NewInputFrame())
	assert.Equal(t, ticks, g.Engine().Ticks(), "too small screen must not advance the round")

	g.Resize(80, 40)
	g.Step(core.NewInputFrame())
	assert.Equal(t, ticks+1, g.Engine().Ticks())
}
