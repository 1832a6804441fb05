package learner

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/felixgeelhaar/pathway/internal/domain"
)

// ErrMissingLearnerID is the only fatal defect in a stored learner record.
// Every other malformed field falls back to a documented default.
var ErrMissingLearnerID = errors.New("stored learner record has no id")

// StoredLearner is the JSON-serializable form of a learner profile.
// Timestamps serialize as RFC3339 strings, durations as seconds.
type StoredLearner struct {
	ID             string                        `json:"id"`
	Mastery        map[string]float64            `json:"mastery"`
	StruggleCounts map[string]int                `json:"struggle_counts"`
	SeenIntervals  map[string]StoredSeenInterval `json:"seen_intervals"`
	PeakHours      []int                         `json:"peak_hours"`
	Pacing         StoredPacing                  `json:"pacing"`
	FlowTriggers   []string                      `json:"flow_triggers"`
	Goal           string                        `json:"goal,omitempty"`
	GoalConcepts   []string                      `json:"goal_concepts,omitempty"`
	CreatedAt      time.Time                     `json:"created_at"`
	UpdatedAt      time.Time                     `json:"updated_at"`
}

// StoredSeenInterval is the persisted last-seen/interval scheduling pair.
type StoredSeenInterval struct {
	LastSeen     time.Time `json:"last_seen"`
	IntervalDays float64   `json:"interval_days"`
}

// StoredPacing is the persisted pacing preference block.
type StoredPacing struct {
	SessionLengthSeconds int     `json:"session_length_seconds"`
	BreakCadence         int     `json:"break_cadence"`
	FrustrationThreshold float64 `json:"frustration_threshold"`
}

// FromProfile converts a profile to its persisted form.
func FromProfile(p *domain.LearnerProfile, now time.Time) *StoredLearner {
	s := &StoredLearner{
		ID:             p.ID,
		Mastery:        p.Mastery,
		StruggleCounts: p.StruggleCounts,
		SeenIntervals:  make(map[string]StoredSeenInterval, len(p.SeenIntervals)),
		PeakHours:      make([]int, len(p.PeakHours)),
		Pacing: StoredPacing{
			SessionLengthSeconds: int(p.Pacing.SessionSweetSpot.Seconds()),
			BreakCadence:         p.Pacing.BreakCadence,
			FrustrationThreshold: p.Pacing.FrustrationThreshold,
		},
		FlowTriggers: p.FlowTriggers,
		Goal:         p.Goal,
		GoalConcepts: p.GoalConcepts,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    now,
	}
	for id, pair := range p.SeenIntervals {
		s.SeenIntervals[id] = StoredSeenInterval{
			LastSeen:     pair.LastSeen,
			IntervalDays: pair.Interval,
		}
	}
	copy(s.PeakHours, p.PeakHours[:])
	return s
}

// ToProfile rebuilds a profile from its persisted form. A record without an
// id is rejected; any other missing or out-of-range field is repaired to its
// default so one corrupt value never loses the rest of a learner's history.
func ToProfile(s *StoredLearner) (*domain.LearnerProfile, error) {
	if s.ID == "" {
		return nil, ErrMissingLearnerID
	}

	p := domain.NewLearnerProfile(s.ID, s.CreatedAt)
	p.UpdatedAt = s.UpdatedAt

	for id, level := range s.Mastery {
		if level < 0 {
			level = 0
		}
		if level > domain.MaxMastery {
			level = domain.MaxMastery
		}
		p.Mastery[id] = level
	}
	for id, count := range s.StruggleCounts {
		if count < 0 {
			count = 0
		}
		p.StruggleCounts[id] = count
	}
	for id, pair := range s.SeenIntervals {
		interval := pair.IntervalDays
		if interval < 0 {
			interval = 0
		}
		p.SeenIntervals[id] = domain.SeenInterval{
			LastSeen: pair.LastSeen,
			Interval: interval,
		}
	}
	for i, count := range s.PeakHours {
		if i >= len(p.PeakHours) {
			break
		}
		if count > 0 {
			p.PeakHours[i] = count
		}
	}

	defaults := domain.DefaultPacing()
	p.Pacing = defaults
	if s.Pacing.SessionLengthSeconds > 0 {
		p.Pacing.SessionSweetSpot = time.Duration(s.Pacing.SessionLengthSeconds) * time.Second
	}
	if s.Pacing.BreakCadence > 0 {
		p.Pacing.BreakCadence = s.Pacing.BreakCadence
	}
	if t := s.Pacing.FrustrationThreshold; t >= domain.MinFrustrationThreshold && t <= 1 {
		p.Pacing.FrustrationThreshold = t
	}

	for _, concept := range s.FlowTriggers {
		if concept != "" {
			p.AddFlowTrigger(concept)
		}
	}
	p.Goal = s.Goal
	p.GoalConcepts = s.GoalConcepts
	return p, nil
}

// TolerateTypeError filters decode errors: a field of the wrong JSON type is
// swallowed so the partially decoded record can be repaired by ToProfile,
// while syntax errors and everything else stay fatal.
func TolerateTypeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}
