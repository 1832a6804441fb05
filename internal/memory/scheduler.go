package memory

import (
	"sort"
	"time"
)

// Quality grades a recall attempt on the classic five-point scale.
// 0-2 count as failed recall, 3-5 as successful recall.
type Quality int

const (
	QualityBlackout Quality = 0 // gave up almost immediately
	QualityWrong    Quality = 1
	QualityClose    Quality = 2 // failed after real effort or heavy hinting
	QualityHard     Quality = 3
	QualityGood     Quality = 4
	QualityPerfect  Quality = 5
)

// Successful reports whether the quality counts as a successful recall.
func (q Quality) Successful() bool {
	return q >= QualityHard
}

// Review applies the graduated-interval update for a recall of the given
// quality at the given time. The input card is not mutated.
//
// On success the interval ladder is 1 day, 6 days, then interval x ease.
// On failure the interval, consecutive-success count, and streak reset, but
// the ease factor is never reset; it only moves by the ease formula below.
func Review(card Card, q Quality, now time.Time) Card {
	c := card
	c.TotalReviews++

	if q.Successful() {
		switch c.Repetitions {
		case 0:
			c.Interval = 1
		case 1:
			c.Interval = 6
		default:
			c.Interval = c.Interval * c.Ease
		}
		c.Repetitions++
		c.TotalCorrect++
		c.Streak++
	} else {
		c.Repetitions = 0
		c.Interval = 1
		c.Streak = 0
		c.TotalIncorrect++
	}

	c.Ease = nextEase(c.Ease, q)

	reviewed := now
	due := now.Add(time.Duration(c.Interval * 24 * float64(time.Hour)))
	c.LastReviewed = &reviewed
	c.Due = &due
	return c
}

// nextEase applies the ease update for both success and failure,
// floored at MinEase.
func nextEase(ease float64, q Quality) float64 {
	d := float64(QualityPerfect - q)
	ease += 0.1 - d*(0.08+d*0.02)
	if ease < MinEase {
		ease = MinEase
	}
	return ease
}

// QualityFromTelemetry converts observed gameplay telemetry into a quality
// score. expected is the baseline time a comparable learner needs.
func QualityFromTelemetry(success bool, elapsed, expected time.Duration, hints int) Quality {
	if !success {
		switch {
		case hints >= 3 || elapsed > 3*expected:
			return QualityClose
		case elapsed < expected/2:
			return QualityBlackout // gave up fast
		default:
			return QualityWrong
		}
	}
	switch {
	case hints == 0 && elapsed < expected/2:
		return QualityPerfect
	case hints <= 1 && elapsed < expected:
		return QualityGood
	default:
		return QualityHard
	}
}

// Deck holds all memory cards for one learner, keyed by concept.
type Deck struct {
	LearnerID string
	Cards     map[string]Card
}

// NewDeck creates an empty deck for a learner.
func NewDeck(learnerID string) *Deck {
	return &Deck{
		LearnerID: learnerID,
		Cards:     make(map[string]Card),
	}
}

// Card returns the card for a concept, creating it lazily on first use.
func (d *Deck) Card(conceptID string) Card {
	if c, ok := d.Cards[conceptID]; ok {
		return c
	}
	return NewCard(conceptID)
}

// Review grades a recall of the concept and stores the updated card.
func (d *Deck) Review(conceptID string, q Quality, now time.Time) Card {
	c := Review(d.Card(conceptID), q, now)
	d.Cards[conceptID] = c
	return c
}

// Due returns all cards due at the given time, most overdue first.
// Cards that have never been reviewed sort before any time-based comparison.
func (d *Deck) Due(now time.Time) []Card {
	var due []Card
	for _, c := range d.Cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		iNew := due[i].LastReviewed == nil
		jNew := due[j].LastReviewed == nil
		if iNew != jNew {
			return iNew
		}
		if iNew {
			return due[i].ConceptID < due[j].ConceptID
		}
		oi, oj := due[i].Overdue(now), due[j].Overdue(now)
		if oi != oj {
			return oi > oj
		}
		return due[i].ConceptID < due[j].ConceptID
	})
	return due
}

// NextDue returns the most overdue card, if any card is due.
func (d *Deck) NextDue(now time.Time) (Card, bool) {
	due := d.Due(now)
	if len(due) == 0 {
		return Card{}, false
	}
	return due[0], true
}
