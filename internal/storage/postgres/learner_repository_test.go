package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/pathway/internal/learner"
	"github.com/felixgeelhaar/pathway/internal/memory"
)

// openTestDB connects to the database named by PATHWAY_TEST_POSTGRES_DSN.
// The suite is skipped when no test database is available.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("PATHWAY_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PATHWAY_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	t.Cleanup(func() {
		db.Pool.Exec(ctx, "TRUNCATE learners, decks, struggle_trackers, engagement_trackers")
		db.Close()
	})
	return db
}

func TestLearnerRepository_RoundTrip(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

	rec := &learner.StoredLearner{
		ID:        "ada",
		Mastery:   map[string]float64{"loops": 2.5},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.SaveLearner(ctx, rec); err != nil {
		t.Fatalf("SaveLearner() error = %v", err)
	}

	got, err := repo.LoadLearner(ctx, "ada")
	if err != nil {
		t.Fatalf("LoadLearner() error = %v", err)
	}
	if got.ID != "ada" || got.Mastery["loops"] != 2.5 {
		t.Errorf("LoadLearner() = %+v; want the saved record", got)
	}

	deck := &memory.StoredDeck{
		LearnerID: "ada",
		Cards: map[string]memory.StoredCard{
			"loops": {EaseFactor: 2.6, IntervalDays: 6, Repetitions: 2},
		},
		UpdatedAt: now,
	}
	if err := repo.SaveDeck(ctx, deck); err != nil {
		t.Fatalf("SaveDeck() error = %v", err)
	}
	gotDeck, err := repo.LoadDeck(ctx, "ada")
	if err != nil {
		t.Fatalf("LoadDeck() error = %v", err)
	}
	if gotDeck.Cards["loops"].IntervalDays != 6 {
		t.Errorf("deck card = %+v; want interval 6", gotDeck.Cards["loops"])
	}
}

func TestLearnerRepository_MissingLearner(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))

	_, err := repo.LoadLearner(context.Background(), "nobody")
	if !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("LoadLearner() error = %v; want learner.ErrNotFound", err)
	}
}

func TestLearnerRepository_SaveIsUpsert(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

	if err := repo.SaveLearner(ctx, &learner.StoredLearner{ID: "ada", Goal: "build a bot", UpdatedAt: now}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveLearner(ctx, &learner.StoredLearner{ID: "ada", Goal: "make a game", UpdatedAt: now.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.LoadLearner(ctx, "ada")
	if err != nil {
		t.Fatal(err)
	}
	if got.Goal != "make a game" {
		t.Errorf("Goal = %q; want the overwritten value", got.Goal)
	}
}
