package struggle

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/pathway/internal/domain"
)

const (
	// WindowSize bounds the rolling outcome and attempt-time windows.
	WindowSize = 10
	// DefaultMinAttempts is the attempt floor for weakness detection.
	DefaultMinAttempts = 2
	// DefaultWeakThreshold is the success rate below which a concept is weak.
	DefaultWeakThreshold = 0.5
	// DefaultCooldown is how long a concept rests before resurfacing.
	DefaultCooldown = 4 * time.Hour
	// DefaultTrendWindow is the outcome window used for trend detection.
	DefaultTrendWindow = 5
)

// Record accumulates attempt statistics for one (learner, concept) pair.
// Records are mutated on every attempt and never deleted.
type Record struct {
	ConceptID     string
	Successes     int
	Failures      int
	TotalTime     time.Duration
	TotalHints    int
	FirstSeen     time.Time
	LastPracticed time.Time

	recentOutcomes *ring[bool]
	recentTimes    *ring[time.Duration]
}

func newRecord(conceptID string, now time.Time) *Record {
	return &Record{
		ConceptID:      conceptID,
		FirstSeen:      now,
		recentOutcomes: newRing[bool](WindowSize),
		recentTimes:    newRing[time.Duration](WindowSize),
	}
}

// Attempts returns the lifetime attempt count.
func (r *Record) Attempts() int {
	return r.Successes + r.Failures
}

// SuccessRate returns the lifetime success rate, zero when unattempted.
func (r *Record) SuccessRate() float64 {
	if r.Attempts() == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Attempts())
}

// AvgHints returns the average hints used per attempt.
func (r *Record) AvgHints() float64 {
	if r.Attempts() == 0 {
		return 0
	}
	return float64(r.TotalHints) / float64(r.Attempts())
}

// AvgTime returns the average time spent per attempt.
func (r *Record) AvgTime() time.Duration {
	if r.Attempts() == 0 {
		return 0
	}
	return r.TotalTime / time.Duration(r.Attempts())
}

// Severity scores how badly the learner struggles with this concept, in
// [0,1]: accuracy weighs 0.4, failure volume 0.3, hint reliance 0.2, and
// time cost 0.1.
func (r *Record) Severity() float64 {
	s := 0.4 * (1 - r.SuccessRate())
	s += 0.3 * min(1, float64(r.Failures)/10)
	s += 0.2 * min(1, r.AvgHints()/5)
	s += 0.1 * min(1, r.AvgTime().Seconds()/180)
	return s
}

// RecentOutcomes returns the bounded rolling outcome window, oldest first.
func (r *Record) RecentOutcomes() []bool {
	return r.recentOutcomes.values()
}

// RecentTimes returns the bounded rolling attempt-time window, oldest first.
func (r *Record) RecentTimes() []time.Duration {
	return r.recentTimes.values()
}

// Tracker holds struggle records for one learner.
type Tracker struct {
	LearnerID string
	records   map[string]*Record
}

// NewTracker creates an empty tracker for a learner.
func NewTracker(learnerID string) *Tracker {
	return &Tracker{
		LearnerID: learnerID,
		records:   make(map[string]*Record),
	}
}

// RecordAttempt appends an attempt to the rolling windows and totals.
func (t *Tracker) RecordAttempt(conceptID string, success bool, elapsed time.Duration, hints int, now time.Time) {
	rec, ok := t.records[conceptID]
	if !ok {
		rec = newRecord(conceptID, now)
		t.records[conceptID] = rec
	}
	if success {
		rec.Successes++
	} else {
		rec.Failures++
	}
	rec.TotalTime += elapsed
	rec.TotalHints += hints
	rec.LastPracticed = now
	rec.recentOutcomes.push(success)
	rec.recentTimes.push(elapsed)
}

// Record returns the record for a concept, if the learner has attempted it.
func (t *Tracker) Record(conceptID string) (*Record, bool) {
	rec, ok := t.records[conceptID]
	return rec, ok
}

// Concepts returns all attempted concept ids in lexical order.
func (t *Tracker) Concepts() []string {
	ids := make([]string, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WeakConcepts returns every concept with at least minAttempts attempts and
// a success rate below threshold, most severe first.
func (t *Tracker) WeakConcepts(minAttempts int, threshold float64) []string {
	var weak []string
	for id, rec := range t.records {
		if rec.Attempts() >= minAttempts && rec.SuccessRate() < threshold {
			weak = append(weak, id)
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		si, sj := t.records[weak[i]].Severity(), t.records[weak[j]].Severity()
		if si != sj {
			return si > sj
		}
		return weak[i] < weak[j]
	})
	return weak
}

// Severity returns the weakness severity for a concept, zero if unattempted.
func (t *Tracker) Severity(conceptID string) float64 {
	rec, ok := t.records[conceptID]
	if !ok {
		return 0
	}
	return rec.Severity()
}

// IsImproving reports whether the learner's recent outcomes trend upward.
// It needs at least window recent outcomes and compares the success rate of
// the first half of the window against the second; the trend counts as
// improving only when the second half is strictly higher.
func (t *Tracker) IsImproving(conceptID string, window int) bool {
	rec, ok := t.records[conceptID]
	if !ok {
		return false
	}
	outcomes := rec.recentOutcomes.values()
	if len(outcomes) < window {
		return false
	}
	outcomes = outcomes[len(outcomes)-window:]
	half := window / 2
	return successRate(outcomes[half:]) > successRate(outcomes[:half])
}

func successRate(outcomes []bool) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var ok int
	for _, o := range outcomes {
		if o {
			ok++
		}
	}
	return float64(ok) / float64(len(outcomes))
}

// Approach describes how a weak concept should be brought back.
type Approach string

const (
	// ApproachDisguised embeds the weak concept inside an
	// unrelated-seeming challenge, one difficulty step down.
	ApproachDisguised Approach = "disguised"
	// ApproachScaffolded breaks the challenge into sub-steps.
	ApproachScaffolded Approach = "scaffolded"
	// ApproachFunIntegrated blends the concept with the learner's
	// preferred engagement style.
	ApproachFunIntegrated Approach = "fun_integrated"
)

// ResurfacePlan describes when and how to bring a weak concept back.
type ResurfacePlan struct {
	ConceptID       string
	Approach        Approach
	DifficultyShift int // applied to the concept's authored level
	Severity        float64
}

// PlanResurface decides how a concept should resurface. It returns false
// while the concept is still inside its post-practice cooldown or has never
// been attempted.
func (t *Tracker) PlanResurface(conceptID string, now time.Time, cooldown time.Duration) (ResurfacePlan, bool) {
	rec, ok := t.records[conceptID]
	if !ok {
		return ResurfacePlan{}, false
	}
	if now.Sub(rec.LastPracticed) < cooldown {
		return ResurfacePlan{}, false
	}

	plan := ResurfacePlan{ConceptID: conceptID, Severity: rec.Severity()}
	switch {
	case plan.Severity >= 0.7:
		plan.Approach = ApproachDisguised
		plan.DifficultyShift = -1
	case plan.Severity >= 0.5:
		plan.Approach = ApproachScaffolded
	default:
		plan.Approach = ApproachFunIntegrated
	}
	return plan, true
}

// PrerequisiteGaps flags prerequisites of a concept that are probable root
// causes of struggle: never attempted, or weak themselves.
func (t *Tracker) PrerequisiteGaps(concept domain.Concept, threshold float64) []string {
	var gaps []string
	for _, prereq := range concept.Prerequisites {
		rec, ok := t.records[prereq]
		if !ok || rec.SuccessRate() < threshold {
			gaps = append(gaps, prereq)
		}
	}
	return gaps
}
