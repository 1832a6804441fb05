package learner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/pathway/internal/affect"
	"github.com/felixgeelhaar/pathway/internal/content"
	"github.com/felixgeelhaar/pathway/internal/domain"
	"github.com/felixgeelhaar/pathway/internal/engagement"
	"github.com/felixgeelhaar/pathway/internal/goal"
	"github.com/felixgeelhaar/pathway/internal/memory"
	"github.com/felixgeelhaar/pathway/internal/recommend"
	"github.com/felixgeelhaar/pathway/internal/struggle"
)

// ErrNoGoal is returned when a plan is requested before a goal is declared.
var ErrNoGoal = errors.New("learner has no declared goal")

// goalReadyMastery is the level at which a goal concept counts as covered.
const goalReadyMastery = 2.0

// state is the fully hydrated in-memory state for one learner. Its mutex
// makes the learner a single-writer aggregate; different learners never
// block each other.
type state struct {
	mu sync.Mutex

	profile    *domain.LearnerProfile
	deck       *memory.Deck
	struggle   *struggle.Tracker
	engagement *engagement.Tracker
	affect     *affect.Monitor
	session    *recommend.Session
}

// Service is the entry point for everything a learner does. It hydrates
// learner state from the repository, routes observations through the
// recommendation engine, and persists the aggregate after every mutation.
type Service struct {
	repo   Repository
	graph  *domain.Graph
	seq    *goal.Sequencer
	engine *recommend.Engine
	logger *slog.Logger

	mu       sync.Mutex // guards learners
	learners map[string]*state
}

// NewService creates a service over a repository and a content table set.
func NewService(repo Repository, tables content.Tables, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	graph := tables.Graph()
	return &Service{
		repo:     repo,
		graph:    graph,
		seq:      goal.NewSequencer(graph, tables.GoalPatterns, tables.Themes, tables.BasicConcepts),
		engine:   recommend.NewEngine(graph),
		logger:   logger,
		learners: make(map[string]*state),
	}
}

// load hydrates a learner's state, caching it for the life of the service,
// and returns it locked. A learner with no stored records starts fresh; a
// corrupt record fails only when its learner id is gone.
func (s *Service) load(ctx context.Context, id string, now time.Time) (*state, error) {
	s.mu.Lock()
	st, ok := s.learners[id]
	s.mu.Unlock()
	if ok {
		st.mu.Lock()
		return st, nil
	}

	st, err := s.hydrate(ctx, id, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Another goroutine may have hydrated the same learner concurrently.
	if existing, ok := s.learners[id]; ok {
		st = existing
	} else {
		s.learners[id] = st
	}
	s.mu.Unlock()

	st.mu.Lock()
	return st, nil
}

func (s *Service) hydrate(ctx context.Context, id string, now time.Time) (*state, error) {
	st := &state{
		affect:  affect.NewMonitor(),
		session: &recommend.Session{StartedAt: now},
	}

	rec, err := s.repo.LoadLearner(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.Info("new learner", "learner", id)
		st.profile = domain.NewLearnerProfile(id, now)
	case err != nil:
		return nil, fmt.Errorf("load learner %s: %w", id, err)
	default:
		profile, err := ToProfile(rec)
		if err != nil {
			return nil, fmt.Errorf("load learner %s: %w", id, err)
		}
		st.profile = profile
	}

	deckRec, err := s.repo.LoadDeck(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		st.deck = memory.NewDeck(id)
	case err != nil:
		return nil, fmt.Errorf("load deck %s: %w", id, err)
	default:
		st.deck = memory.DeckFromStored(deckRec)
	}

	struggleRec, err := s.repo.LoadStruggle(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		st.struggle = struggle.NewTracker(id)
	case err != nil:
		return nil, fmt.Errorf("load struggle %s: %w", id, err)
	default:
		st.struggle = struggle.TrackerFromStored(struggleRec)
	}

	engagementRec, err := s.repo.LoadEngagement(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		st.engagement = engagement.NewTracker(id)
	case err != nil:
		return nil, fmt.Errorf("load engagement %s: %w", id, err)
	default:
		st.engagement = engagement.TrackerFromStored(engagementRec)
	}
	return st, nil
}

// persist writes every per-learner document back to the repository.
func (s *Service) persist(ctx context.Context, st *state, now time.Time) error {
	if err := s.repo.SaveLearner(ctx, FromProfile(st.profile, now)); err != nil {
		return fmt.Errorf("save learner %s: %w", st.profile.ID, err)
	}
	if err := s.repo.SaveDeck(ctx, st.deck.Stored(now)); err != nil {
		return fmt.Errorf("save deck %s: %w", st.profile.ID, err)
	}
	if err := s.repo.SaveStruggle(ctx, st.struggle.Stored(now)); err != nil {
		return fmt.Errorf("save struggle %s: %w", st.profile.ID, err)
	}
	if err := s.repo.SaveEngagement(ctx, st.engagement.Stored(now)); err != nil {
		return fmt.Errorf("save engagement %s: %w", st.profile.ID, err)
	}
	return nil
}

func (s *Service) engineContext(st *state, now time.Time) *recommend.Context {
	return &recommend.Context{
		Profile:    st.profile,
		Deck:       st.deck,
		Struggle:   st.struggle,
		Engagement: st.engagement,
		Affect:     st.affect,
		Session:    st.session,
		Now:        now,
	}
}

// StartSession resets session-scoped state for a learner. The challenge
// counter, affect samples, and the session clock all start over; the
// persisted profile is untouched.
func (s *Service) StartSession(ctx context.Context, id string, now time.Time) error {
	st, err := s.load(ctx, id, now)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	st.affect = affect.NewMonitor()
	st.session = &recommend.Session{StartedAt: now}
	s.logger.Info("session started", "learner", id)
	return nil
}

// ObserveAttempt records one challenge attempt and persists the result.
func (s *Service) ObserveAttempt(ctx context.Context, id, conceptID string, success bool, elapsed time.Duration, hints int, now time.Time) (memory.Card, error) {
	st, err := s.load(ctx, id, now)
	if err != nil {
		return memory.Card{}, err
	}
	defer st.mu.Unlock()

	card := s.engine.ApplyAttempt(s.engineContext(st, now), conceptID, success, elapsed, hints)
	s.logger.Debug("attempt recorded",
		"learner", id,
		"concept", conceptID,
		"success", success,
		"interval_days", card.Interval,
	)

	if err := s.persist(ctx, st, now); err != nil {
		return memory.Card{}, err
	}
	return card, nil
}

// ObserveAffect records one live affect sample. Affect state itself is
// session-scoped, but its side effects on the profile are persisted.
func (s *Service) ObserveAffect(ctx context.Context, id string, dim affect.Dimension, value float64, note string, now time.Time) error {
	if dim != affect.DimensionFrustration && dim != affect.DimensionEngagement {
		return fmt.Errorf("unknown affect dimension %q", dim)
	}

	st, err := s.load(ctx, id, now)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	s.engine.ApplyAffect(s.engineContext(st, now), dim, value, note)
	return s.persist(ctx, st, now)
}

// RecommendNext produces the single next-step recommendation for a learner.
func (s *Service) RecommendNext(ctx context.Context, id string, now time.Time) (domain.Recommendation, error) {
	st, err := s.load(ctx, id, now)
	if err != nil {
		return domain.Recommendation{}, err
	}
	defer st.mu.Unlock()

	rec := s.engine.RecommendNext(s.engineContext(st, now))
	s.logger.Debug("recommendation",
		"learner", id,
		"action", rec.Action,
		"concept", rec.ConceptID,
		"confidence", rec.Confidence,
	)
	return rec, nil
}

// DeclareGoal turns free-form goal text into an ordered concept plan and
// stores it on the profile. Concepts the learner already covers are skipped.
func (s *Service) DeclareGoal(ctx context.Context, id, goalText string, now time.Time) (*goal.Plan, error) {
	st, err := s.load(ctx, id, now)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	known := make(map[string]bool)
	for concept, level := range st.profile.Mastery {
		if level >= goalReadyMastery {
			known[concept] = true
		}
	}

	plan := s.seq.Generate(goalText, known)
	st.profile.SetGoal(goalText, plan.Concepts, now)
	s.logger.Info("goal declared",
		"learner", id,
		"goal", goalText,
		"concepts", len(plan.Concepts),
		"estimated_hours", plan.EstimatedHours,
	)

	if err := s.persist(ctx, st, now); err != nil {
		return nil, err
	}
	return plan, nil
}

// Plan regenerates the challenge plan for the learner's declared goal.
func (s *Service) Plan(ctx context.Context, id string, now time.Time) (*goal.Plan, error) {
	st, err := s.load(ctx, id, now)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	if st.profile.Goal == "" {
		return nil, ErrNoGoal
	}

	known := make(map[string]bool)
	for concept, level := range st.profile.Mastery {
		if level >= goalReadyMastery {
			known[concept] = true
		}
	}
	return s.seq.Generate(st.profile.Goal, known), nil
}

// Stats is a read-only snapshot of a learner's aggregate state.
type Stats struct {
	LearnerID      string
	ConceptsSeen   int
	AverageMastery float64
	DueReviews     int
	WeakConcepts   []string
	StyleWeights   map[engagement.Style]float64
	Goal           string
	GoalProgress   float64 // fraction of goal concepts covered
	FlowTriggers   []string
	PeakHour       int // hour of day with the most attempts
}

// Stats summarizes a learner's state for display.
func (s *Service) Stats(ctx context.Context, id string, now time.Time) (Stats, error) {
	st, err := s.load(ctx, id, now)
	if err != nil {
		return Stats{}, err
	}
	defer st.mu.Unlock()

	stats := Stats{
		LearnerID:    id,
		ConceptsSeen: len(st.profile.Mastery),
		DueReviews:   len(st.deck.Due(now)),
		WeakConcepts: st.struggle.WeakConcepts(struggle.DefaultMinAttempts, struggle.DefaultWeakThreshold),
		StyleWeights: st.engagement.Weights(),
		Goal:         st.profile.Goal,
		FlowTriggers: st.profile.FlowTriggers,
	}

	var sum float64
	for _, level := range st.profile.Mastery {
		sum += level
	}
	if stats.ConceptsSeen > 0 {
		stats.AverageMastery = sum / float64(stats.ConceptsSeen)
	}

	if len(st.profile.GoalConcepts) > 0 {
		var covered int
		for _, concept := range st.profile.GoalConcepts {
			if st.profile.MasteryOf(concept) >= goalReadyMastery {
				covered++
			}
		}
		stats.GoalProgress = float64(covered) / float64(len(st.profile.GoalConcepts))
	}

	for hour, count := range st.profile.PeakHours {
		if count > st.profile.PeakHours[stats.PeakHour] {
			stats.PeakHour = hour
		}
	}
	return stats, nil
}

// ListLearners returns the ids of every learner with stored state.
func (s *Service) ListLearners(ctx context.Context) ([]string, error) {
	return s.repo.ListLearners(ctx)
}
