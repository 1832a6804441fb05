package memory

import "time"

const (
	// DefaultEase is the ease factor assigned to brand-new cards.
	DefaultEase = 2.5
	// MinEase is the floor below which the ease factor never drops.
	MinEase = 1.3
)

// Card tracks spaced-repetition state for one (learner, concept) pair.
// Cards are created lazily on first observation of a concept, mutated only
// by Review, and never deleted (failure resets interval and streak instead).
type Card struct {
	ConceptID      string
	Ease           float64
	Interval       float64 // days
	Repetitions    int     // consecutive successful reviews
	LastReviewed   *time.Time
	Due            *time.Time
	TotalReviews   int
	TotalCorrect   int
	TotalIncorrect int
	Streak         int
}

// NewCard creates a card that has never been reviewed.
// A card with no review history is always due.
func NewCard(conceptID string) Card {
	return Card{
		ConceptID: conceptID,
		Ease:      DefaultEase,
	}
}

// IsDue reports whether the card needs review at the given time.
func (c Card) IsDue(now time.Time) bool {
	if c.LastReviewed == nil || c.Due == nil {
		return true
	}
	return !c.Due.After(now)
}

// Overdue returns how far past due the card is at the given time.
// Never-reviewed cards report the maximum possible overdue.
func (c Card) Overdue(now time.Time) time.Duration {
	if c.LastReviewed == nil || c.Due == nil {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(*c.Due)
}
