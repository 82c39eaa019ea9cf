package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// holdWindow is how long a direction key keeps the tank driving.
// Terminals report key repeats rather than key-up events, so a held key
// shows up as a stream of presses separated by the repeat delay.
const holdWindow = 150 * time.Millisecond

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	palette    Palette
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	held       core.Action
	heldUntil  time.Time
	gameState  core.GameState
	player     string
	quitting   bool
	recorded   bool // Whether the round has been stored for current game over
}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithLogger routes storage and screenshot errors to l.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPalette renders with p instead of the local terminal palette.
func WithPalette(p Palette) ModelOption {
	return func(m *Model) {
		m.palette = p
	}
}

// WithPlayer labels log lines with the player's name.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		m.player = name
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		palette:    defaultPalette,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case isMove(action):
		m.held = action
		m.heldUntil = now.Add(holdWindow)
		m.inputFrame.Set(action)
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.held = core.ActionNone
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.held != core.ActionNone {
		if now.Before(m.heldUntil) {
			m.inputFrame.Set(m.held)
		} else {
			m.held = core.ActionNone
		}
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.recordRound()
		m.recorded = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRound stores the final score and, when the game supports it, the
// encoded final state. Arena scores may be negative and are kept anyway.
func (m *Model) recordRound() {
	st := m.gameState
	m.logger.Info("round over",
		"player", m.player,
		"score", st.Score,
		"stage", st.Stage,
		"reason", st.Reason,
	)
	if m.store == nil {
		return
	}

	if _, err := m.store.SaveScore(m.game.ID(), st.Score, st.Stage); err != nil {
		m.logger.Error("cannot save score", "err", err)
	}

	ep := storage.Episode{
		GameID: m.game.ID(),
		Seed:   m.config.Seed,
		Stage:  st.Stage,
		Score:  st.Score,
		Ticks:  st.Ticks,
		Reason: st.Reason,
	}
	if rec, ok := m.game.(registry.Recorder); ok {
		data, err := rec.EncodeState()
		if err != nil {
			m.logger.Warn("cannot encode final state", "err", err)
		}
		ep.Snapshot = data
	}
	if _, err := m.store.SaveEpisode(ep); err != nil {
		m.logger.Error("cannot save episode", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".tanks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
