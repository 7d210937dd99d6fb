package storage

import (
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
	dbPath := filepath.Join(t.TempDir(), "test.db")

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

	results := []Result{
		{GameID: "match3", Player: "ann", Score: 100, Moves: 30, BestCombo: 3, Seed: 7},
		{GameID: "match3", Score: 50, Moves: 30, BestCombo: 2},
		{GameID: "match3", Score: 200, Moves: 12, BestCombo: 5, Seed: 9},
		{GameID: "match3_hex", Score: 500},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %d, %d, %d", scores[0].Score, scores[1].Score, scores[2].Score)
	}

	top := scores[0]
	if top.Moves != 12 || top.BestCombo != 5 || top.Seed != 9 {
		t.Errorf("result fields not stored: %+v", top)
	}
	if scores[1].Player != "ann" {
		t.Errorf("Player = %q, want ann", scores[1].Player)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveResult(Result{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		saveScore(t, store, "match3", i*10)
	}

	scores, err := store.TopScores("match3", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Top score = %d, want 190", scores[0].Score)
	}

	all, err := store.TopScores("match3", 100)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	saveScore(t, store, "match3", 100)
	saveScore(t, store, "match3", 300)
	saveScore(t, store, "match3", 200)

	if high, _ = store.HighScore("match3"); high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStorePruneScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{40, 90, 10, 90, 70, 20, 60} {
		saveScore(t, store, "match3", s)
	}
	saveScore(t, store, "match3_lite", 5)

	n, err := store.PruneScores("match3", 5)
	if err != nil {
		t.Fatalf("PruneScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned %d rows, want 2", n)
	}

	scores, _ := store.TopScores("match3", 100)
	want := []int{90, 90, 70, 60, 40}
	if len(scores) != len(want) {
		t.Fatalf("kept %d scores, want %d", len(scores), len(want))
	}
	for i, s := range want {
		if scores[i].Score != s {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, s)
		}
	}

	if other, _ := store.TopScores("match3_lite", 100); len(other) != 1 {
		t.Error("pruning touched another game")
	}
	if n, _ := store.PruneScores("match3", 0); n != 0 {
		t.Error("keep=0 should not delete")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "match3", 100)
	saveScore(t, store, "match3", 200)
	saveScore(t, store, "match3_endless", 300)

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("match3", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("match3_endless", 10); len(scores) != 1 {
		t.Errorf("Expected endless scores unaffected, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{GameID: "match3", Score: 100, BestCombo: 3})
	store.SaveResult(Result{GameID: "match3", Score: 300, BestCombo: 6})
	store.SaveResult(Result{GameID: "match3_hex", Score: 50, BestCombo: 2})

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.BestCombo != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("match3_lite")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["match3_hex"].HighScore != 50 {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
