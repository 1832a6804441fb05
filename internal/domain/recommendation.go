package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies what the learner should do next.
type Action string

const (
	// ActionChallenge offers a new or review challenge.
	ActionChallenge Action = "offer_challenge"
	// ActionSpacedReview resurfaces a concept whose review is due.
	ActionSpacedReview Action = "offer_spaced_review"
	// ActionBreak suggests stepping away from the session.
	ActionBreak Action = "suggest_break"
	// ActionGoalStep offers the next concept on the learner's goal path.
	ActionGoalStep Action = "offer_goal_step"
)

// Recommendation is the single output of the recommendation engine.
// Recommendations are ephemeral: produced on demand, never persisted,
// never mutated after creation.
type Recommendation struct {
	ID          uuid.UUID
	Action      Action
	ConceptID   string // empty when the action has no target concept
	ChallengeID string // empty when no concrete challenge is attached
	Reason      string
	Confidence  float64 // 0.0 - 1.0
	CreatedAt   time.Time
}

// NewRecommendation creates a recommendation with a fresh identifier.
func NewRecommendation(action Action, conceptID, reason string, confidence float64, now time.Time) Recommendation {
	return Recommendation{
		ID:         uuid.New(),
		Action:     action,
		ConceptID:  conceptID,
		Reason:     reason,
		Confidence: confidence,
		CreatedAt:  now,
	}
}
