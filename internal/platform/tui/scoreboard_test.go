package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.SaveScore("fake", -3.5, 2)
	require.NoError(t, err)
	_, err = store.SaveEpisode(storage.Episode{GameID: "fake", Stage: 2, Score: -3.5, Ticks: 640, Reason: "no lives left"})
	require.NoError(t, err)

	m := NewScoreboardModel(store, 100, 30)
	require.Len(t, m.scores, 1)
	require.Len(t, m.episodes, 1)

	view := m.View()
	assert.Contains(t, view, "HIGH SCORES - Fake")
	assert.Contains(t, view, "-3.50")

	next, _ := m.Update(keyMsg('e'))
	m = next.(ScoreboardModel)
	view = m.View()
	assert.Contains(t, view, "RECENT ROUNDS - Fake")
	assert.Contains(t, view, "640")
	assert.Contains(t, view, "no lives left")
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	assert.Contains(t, m.View(), "No rounds recorded yet.")
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab", centerText("ab", 6))
	assert.Equal(t, "abcdef", centerText("abcdef", 4))
}

func TestScoreboardSingleGameHidesGameSwitching(t *testing.T) {
	require.Len(t, registry.List(), 1)

	m := NewScoreboardModel(nil, 100, 30)
	assert.False(t, m.showSidebar)
	assert.False(t, m.keys.NextGame.Enabled())
	assert.False(t, m.keys.PrevGame.Enabled())
	assert.True(t, m.keys.Toggle.Enabled())

	view := m.View()
	assert.NotContains(t, view, "next game")
	assert.NotContains(t, view, "Games")
	assert.Contains(t, view, "scores/episodes")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, next.(ScoreboardModel).gameCursor)
}
