package memory

import "time"

// StoredDeck is the JSON-serializable form of a learner's deck.
// One record per learner; timestamps serialize as RFC3339 strings.
type StoredDeck struct {
	LearnerID string                `json:"learner_id"`
	Cards     map[string]StoredCard `json:"cards"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// StoredCard is the JSON-serializable form of a memory card.
type StoredCard struct {
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   float64    `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty"`
	NextDue        *time.Time `json:"next_due,omitempty"`
	TotalReviews   int        `json:"total_reviews"`
	TotalCorrect   int        `json:"total_correct"`
	TotalIncorrect int        `json:"total_incorrect"`
	Streak         int        `json:"streak"`
}

// Stored converts the deck to its persisted form.
func (d *Deck) Stored(now time.Time) *StoredDeck {
	s := &StoredDeck{
		LearnerID: d.LearnerID,
		Cards:     make(map[string]StoredCard, len(d.Cards)),
		UpdatedAt: now,
	}
	for id, c := range d.Cards {
		s.Cards[id] = StoredCard{
			EaseFactor:     c.Ease,
			IntervalDays:   c.Interval,
			Repetitions:    c.Repetitions,
			LastReviewed:   c.LastReviewed,
			NextDue:        c.Due,
			TotalReviews:   c.TotalReviews,
			TotalCorrect:   c.TotalCorrect,
			TotalIncorrect: c.TotalIncorrect,
			Streak:         c.Streak,
		}
	}
	return s
}

// DeckFromStored rebuilds a deck from its persisted form. Missing or
// out-of-range fields fall back to documented defaults rather than failing.
func DeckFromStored(s *StoredDeck) *Deck {
	d := NewDeck(s.LearnerID)
	for id, sc := range s.Cards {
		ease := sc.EaseFactor
		if ease < MinEase {
			ease = DefaultEase
		}
		interval := sc.IntervalDays
		if interval < 0 {
			interval = 0
		}
		d.Cards[id] = Card{
			ConceptID:      id,
			Ease:           ease,
			Interval:       interval,
			Repetitions:    sc.Repetitions,
			LastReviewed:   sc.LastReviewed,
			Due:            sc.NextDue,
			TotalReviews:   sc.TotalReviews,
			TotalCorrect:   sc.TotalCorrect,
			TotalIncorrect: sc.TotalIncorrect,
			Streak:         sc.Streak,
		}
	}
	return d
}
