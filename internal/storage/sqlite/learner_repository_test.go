package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/pathway/internal/engagement"
	"github.com/felixgeelhaar/pathway/internal/learner"
	"github.com/felixgeelhaar/pathway/internal/memory"
	"github.com/felixgeelhaar/pathway/internal/struggle"
)

var repoNow = time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

func TestLearnerRepository_RoundTrip(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()

	rec := &learner.StoredLearner{
		ID:             "ada",
		Mastery:        map[string]float64{"loops": 2.5},
		StruggleCounts: map[string]int{"loops": 3},
		CreatedAt:      repoNow,
		UpdatedAt:      repoNow,
	}
	if err := repo.SaveLearner(ctx, rec); err != nil {
		t.Fatalf("SaveLearner() error = %v", err)
	}

	got, err := repo.LoadLearner(ctx, "ada")
	if err != nil {
		t.Fatalf("LoadLearner() error = %v", err)
	}
	if got.ID != "ada" || got.Mastery["loops"] != 2.5 || got.StruggleCounts["loops"] != 3 {
		t.Errorf("LoadLearner() = %+v; want the saved record", got)
	}
}

func TestLearnerRepository_SaveIsUpsert(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()

	first := &learner.StoredLearner{ID: "ada", Goal: "build a bot", UpdatedAt: repoNow}
	second := &learner.StoredLearner{ID: "ada", Goal: "make a game", UpdatedAt: repoNow.Add(time.Hour)}

	if err := repo.SaveLearner(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveLearner(ctx, second); err != nil {
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

func TestLearnerRepository_MissingRecords(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()

	if _, err := repo.LoadLearner(ctx, "nobody"); !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("LoadLearner() error = %v; want learner.ErrNotFound", err)
	}
	if _, err := repo.LoadDeck(ctx, "nobody"); !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("LoadDeck() error = %v; want learner.ErrNotFound", err)
	}
	if _, err := repo.LoadStruggle(ctx, "nobody"); !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("LoadStruggle() error = %v; want learner.ErrNotFound", err)
	}
	if _, err := repo.LoadEngagement(ctx, "nobody"); !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("LoadEngagement() error = %v; want learner.ErrNotFound", err)
	}
}

func TestLearnerRepository_AllConcerns(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()

	deck := &memory.StoredDeck{
		LearnerID: "ada",
		Cards: map[string]memory.StoredCard{
			"loops": {EaseFactor: 2.6, IntervalDays: 6, Repetitions: 2},
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
	if gotDeck.Cards["loops"].EaseFactor != 2.6 {
		t.Errorf("deck card = %+v; want ease 2.6", gotDeck.Cards["loops"])
	}

	tracker := &struggle.StoredTracker{
		LearnerID: "ada",
		Records: map[string]struggle.StoredRecord{
			"loops": {Successes: 2, Failures: 5, TotalHints: 4},
		},
		UpdatedAt: repoNow,
	}
	if err := repo.SaveStruggle(ctx, tracker); err != nil {
		t.Fatalf("SaveStruggle() error = %v", err)
	}
	gotTracker, err := repo.LoadStruggle(ctx, "ada")
	if err != nil {
		t.Fatalf("LoadStruggle() error = %v", err)
	}
	if gotTracker.Records["loops"].Failures != 5 {
		t.Errorf("struggle record = %+v; want 5 failures", gotTracker.Records["loops"])
	}

	eng := &engagement.StoredTracker{
		LearnerID: "ada",
		Weights: map[engagement.Style]float64{
			engagement.StyleProblemSolving:    0.5,
			engagement.StyleTimePressure:      0.1,
			engagement.StyleCompletionism:     0.1,
			engagement.StyleOpenEndedBuilding: 0.1,
			engagement.StyleHeadToHead:        0.1,
			engagement.StyleDeepMastery:       0.1,
		},
		UpdatedAt: repoNow,
	}
	if err := repo.SaveEngagement(ctx, eng); err != nil {
		t.Fatalf("SaveEngagement() error = %v", err)
	}
	gotEng, err := repo.LoadEngagement(ctx, "ada")
	if err != nil {
		t.Fatalf("LoadEngagement() error = %v", err)
	}
	if gotEng.Weights[engagement.StyleProblemSolving] != 0.5 {
		t.Errorf("engagement weights = %+v; want problem_solving 0.5", gotEng.Weights)
	}
}

func TestLearnerRepository_ListLearnersByRecency(t *testing.T) {
	repo := NewLearnerRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.SaveLearner(ctx, &learner.StoredLearner{ID: "ada", UpdatedAt: repoNow}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveLearner(ctx, &learner.StoredLearner{ID: "grace", UpdatedAt: repoNow.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	ids, err := repo.ListLearners(ctx)
	if err != nil {
		t.Fatalf("ListLearners() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "grace" || ids[1] != "ada" {
		t.Errorf("ListLearners() = %v; want [grace ada] by recency", ids)
	}
}
