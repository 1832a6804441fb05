package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/pathway/internal/learner"
	"github.com/felixgeelhaar/pathway/internal/memory"
)

var repoNow = time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

func TestLearnerRepository_RoundTrip(t *testing.T) {
	repo, err := NewLearnerRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewLearnerRepository() error = %v", err)
	}
	ctx := context.Background()

	rec := &learner.StoredLearner{
		ID:        "ada",
		Mastery:   map[string]float64{"loops": 2.5},
		CreatedAt: repoNow,
		UpdatedAt: repoNow,
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
			"loops": {EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2},
		},
		UpdatedAt: repoNow,
	}
	if err := repo.SaveDeck(ctx, deck); err != nil {
		t.Fatalf("SaveDeck() error = %v", err)
	}
	gotDeck, err := repo.LoadDeck(ctx, "ada")
	if err != nil {
		t.Fatalf("LoadDeck() error = %v", err)
	}
	if gotDeck.Cards["loops"].IntervalDays != 6 {
		t.Errorf("LoadDeck() = %+v; want the saved card", gotDeck.Cards["loops"])
	}
}

func TestLearnerRepository_MissingLearner(t *testing.T) {
	repo, _ := NewLearnerRepository(t.TempDir())

	_, err := repo.LoadLearner(context.Background(), "nobody")
	if !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("LoadLearner() error = %v; want learner.ErrNotFound", err)
	}
}

func TestLearnerRepository_MalformedFieldIsTolerated(t *testing.T) {
	dir := t.TempDir()
	repo, _ := NewLearnerRepository(dir)

	// A mastery value of the wrong type must not lose the record.
	raw := `{"id": "ada", "mastery": "not-a-map", "goal": "build a bot"}`
	path := filepath.Join(dir, "learners", "ada.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := repo.LoadLearner(context.Background(), "ada")
	if err != nil {
		t.Fatalf("LoadLearner() error = %v; want partial decode", err)
	}
	if got.ID != "ada" {
		t.Errorf("ID = %q; want ada from the partial record", got.ID)
	}
}

func TestLearnerRepository_ListLearners(t *testing.T) {
	repo, _ := NewLearnerRepository(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"ada", "grace"} {
		if err := repo.SaveLearner(ctx, &learner.StoredLearner{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := repo.ListLearners(ctx)
	if err != nil {
		t.Fatalf("ListLearners() error = %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ListLearners() = %v; want 2 ids", ids)
	}
}
