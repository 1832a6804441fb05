package domain

import (
	"time"
)

const (
	// MaxMastery caps the continuous mastery scale.
	MaxMastery = 4.0
	// MinFrustrationThreshold is the floor for the self-tuning threshold.
	MinFrustrationThreshold = 0.3

	maxFlowTriggers = 10
	maxSeenInterval = 30.0 // days
)

// PacingPreferences describes how a learner likes to pace a session.
type PacingPreferences struct {
	SessionSweetSpot     time.Duration // preferred continuous practice length
	BreakCadence         int           // challenges before a break is due
	FrustrationThreshold float64       // negative-affect level that triggers relief
}

// DefaultPacing returns the pacing used for learners with no history.
func DefaultPacing() PacingPreferences {
	return PacingPreferences{
		SessionSweetSpot:     25 * time.Minute,
		BreakCadence:         5,
		FrustrationThreshold: 0.7,
	}
}

// SeenInterval is the simple last-seen/interval scheduling pair kept on the
// profile. It evolves independently of the memory scheduler's cards; the two
// signals are deliberately not unified.
type SeenInterval struct {
	LastSeen time.Time
	Interval float64 // days
}

// LearnerProfile is the aggregate root for one learner. It exclusively owns
// its scheduling, struggle, and engagement state; the concept graph is the
// only shared data it reads.
type LearnerProfile struct {
	ID             string
	Mastery        map[string]float64 // concept -> 0.0-4.0, partial credit accrues
	StruggleCounts map[string]int
	SeenIntervals  map[string]SeenInterval
	PeakHours      [24]int // attempt counts per hour of day
	Pacing         PacingPreferences
	FlowTriggers   []string // concepts known to trigger a flow response, newest last
	Goal           string
	GoalConcepts   []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewLearnerProfile creates a fresh profile with default pacing.
func NewLearnerProfile(id string, now time.Time) *LearnerProfile {
	return &LearnerProfile{
		ID:             id,
		Mastery:        make(map[string]float64),
		StruggleCounts: make(map[string]int),
		SeenIntervals:  make(map[string]SeenInterval),
		Pacing:         DefaultPacing(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MasteryOf returns the mastery level for a concept, zero if never seen.
func (p *LearnerProfile) MasteryOf(concept string) float64 {
	return p.Mastery[concept]
}

// RaiseMastery increases mastery for a concept, capped at MaxMastery.
func (p *LearnerProfile) RaiseMastery(concept string, delta float64) {
	level := p.Mastery[concept] + delta
	if level > MaxMastery {
		level = MaxMastery
	}
	p.Mastery[concept] = level
}

// RecordStruggle increments the struggle count for a concept.
func (p *LearnerProfile) RecordStruggle(concept string) {
	p.StruggleCounts[concept]++
}

// TouchConcept updates the legacy last-seen/interval pair for a concept.
// Success doubles the interval up to maxSeenInterval days; failure resets
// it to one day.
func (p *LearnerProfile) TouchConcept(concept string, success bool, now time.Time) {
	pair := p.SeenIntervals[concept]
	if success {
		if pair.Interval < 1 {
			pair.Interval = 1
		} else {
			pair.Interval = min(pair.Interval*2, maxSeenInterval)
		}
	} else {
		pair.Interval = 1
	}
	pair.LastSeen = now
	p.SeenIntervals[concept] = pair
	p.PeakHours[now.Hour()]++
	p.UpdatedAt = now
}

// AddFlowTrigger records a concept that produced a flow response.
// The list is deduplicated and bounded, oldest entries dropped first.
func (p *LearnerProfile) AddFlowTrigger(concept string) {
	for i, c := range p.FlowTriggers {
		if c == concept {
			p.FlowTriggers = append(p.FlowTriggers[:i], p.FlowTriggers[i+1:]...)
			break
		}
	}
	p.FlowTriggers = append(p.FlowTriggers, concept)
	if len(p.FlowTriggers) > maxFlowTriggers {
		p.FlowTriggers = p.FlowTriggers[len(p.FlowTriggers)-maxFlowTriggers:]
	}
}

// LowerFrustrationThreshold nudges the frustration threshold down by step,
// modeling increasing sensitivity, floored at MinFrustrationThreshold.
func (p *LearnerProfile) LowerFrustrationThreshold(step float64) {
	t := p.Pacing.FrustrationThreshold - step
	if t < MinFrustrationThreshold {
		t = MinFrustrationThreshold
	}
	p.Pacing.FrustrationThreshold = t
}

// SetGoal declares a goal and its required concept path.
func (p *LearnerProfile) SetGoal(goal string, concepts []string, now time.Time) {
	p.Goal = goal
	p.GoalConcepts = concepts
	p.UpdatedAt = now
}
