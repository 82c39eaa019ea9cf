package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []float64{1.25, -0.5, 3.75} {
		if _, err := store.SaveScore("tanks", s, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 99, 4); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("tanks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending, negatives last
	want := []float64{3.75, 1.25, -0.5}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %v, want %v", i, scores[i].Score, w)
		}
		if scores[i].Stage != 1 {
			t.Errorf("scores[%d].Stage = %d, want 1", i, scores[i].Stage)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("tanks", float64(i+1)*0.5, 1)
	}

	scores, err := store.TopScores("tanks", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 2.5 || scores[1].Score != 2.0 || scores[2].Score != 1.5 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if ok {
		t.Error("Expected no high score for empty game")
	}

	store.SaveScore("tanks", -2.5, 1)
	store.SaveScore("tanks", -1.25, 1)

	high, ok, err := store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if !ok || high != -1.25 {
		t.Errorf("HighScore() = %v, %v; want -1.25, true", high, ok)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tanks", 1, 1)
	store.SaveScore("tanks", 2, 1)
	store.SaveScore("other", 3, 1)

	if err := store.ClearScores("tanks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("tanks", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("Other game's scores should not be affected")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		store.SaveScore("tanks", float64(i)/10, 1)
	}

	scores, err := store.AllScores("tanks")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreEpisodes(t *testing.T) {
	store := openTestStore(t)

	blob := []byte{0x81, 0xa4, 't', 'i', 'c', 'k', 0x05}
	id, err := store.SaveEpisode(Episode{
		GameID:   "tanks",
		Seed:     42,
		Stage:    2,
		Score:    -1.5,
		Ticks:    900,
		Reason:   "no lives left",
		Snapshot: blob,
	})
	if err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveEpisode() returned empty id")
	}

	ep, err := store.EpisodeByID(id)
	if err != nil {
		t.Fatalf("EpisodeByID() failed: %v", err)
	}
	if ep == nil {
		t.Fatal("EpisodeByID() returned nil")
	}
	if ep.Seed != 42 || ep.Stage != 2 || ep.Score != -1.5 || ep.Ticks != 900 {
		t.Errorf("Episode fields mismatch: %+v", ep)
	}
	if !bytes.Equal(ep.Snapshot, blob) {
		t.Errorf("Snapshot = %x, want %x", ep.Snapshot, blob)
	}

	missing, err := store.EpisodeByID("nope")
	if err != nil || missing != nil {
		t.Errorf("EpisodeByID(missing) = %v, %v; want nil, nil", missing, err)
	}

	if _, err := store.SaveEpisode(Episode{ID: "fixed", GameID: "tanks"}); err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}
	recent, err := store.RecentEpisodes("tanks", 10)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "fixed" {
		t.Errorf("RecentEpisodes() = %+v, want newest first", recent)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tanks", 1, 1)
	store.SaveScore("tanks", 3, 3)

	stats, err := store.GetGameStats("tanks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 3 || stats.AvgScore != 2 || stats.BestStage != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["tanks"] == nil {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
