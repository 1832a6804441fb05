package engagement

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLearningRate scales how far one observation moves a weight.
	DefaultLearningRate = 0.1
	// DefaultExplorationRate is the chance RecommendStyle picks at random.
	DefaultExplorationRate = 0.2

	maxObservations = 50
)

// Observation is one raw enjoyment signal for a style.
type Observation struct {
	ID         uuid.UUID `json:"id"`
	Style      Style     `json:"style"`
	Enjoyment  float64   `json:"enjoyment"`
	Context    string    `json:"context"`
	ObservedAt time.Time `json:"observed_at"`
}

// Tracker maintains one learner's preference weights over the fixed style
// taxonomy. Weights are non-negative and renormalized to sum to 1 after
// every update; a fresh tracker starts uniform.
type Tracker struct {
	LearnerID string

	weights         map[Style]float64
	observations    []Observation
	learningRate    float64
	explorationRate float64
	flow            FlowDetector
	rng             *rand.Rand
}

// NewTracker creates a tracker with uniform weights and default rates.
func NewTracker(learnerID string) *Tracker {
	styles := Styles()
	weights := make(map[Style]float64, len(styles))
	for _, s := range styles {
		weights[s] = 1.0 / float64(len(styles))
	}
	return &Tracker{
		LearnerID:       learnerID,
		weights:         weights,
		learningRate:    DefaultLearningRate,
		explorationRate: DefaultExplorationRate,
		flow:            NewFlowDetector(),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Weight returns the current preference weight for a style.
func (t *Tracker) Weight(s Style) float64 {
	return t.weights[s]
}

// Weights returns a copy of all current weights.
func (t *Tracker) Weights() map[Style]float64 {
	out := make(map[Style]float64, len(t.weights))
	for s, w := range t.weights {
		out[s] = w
	}
	return out
}

// Observations returns the bounded list of recent raw observations,
// oldest first.
func (t *Tracker) Observations() []Observation {
	out := make([]Observation, len(t.observations))
	copy(out, t.observations)
	return out
}

// Observe nudges a style's weight by (enjoyment - 0.5) x learning rate,
// floors it at zero, and renormalizes all weights to sum to 1.
func (t *Tracker) Observe(style Style, enjoyment float64, context string, now time.Time) {
	if !style.Valid() {
		return
	}
	enjoyment = clamp01(enjoyment)

	w := t.weights[style] + (enjoyment-0.5)*t.learningRate
	if w < 0 {
		w = 0
	}
	t.weights[style] = w
	t.renormalize()

	t.observations = append(t.observations, Observation{
		ID:         uuid.New(),
		Style:      style,
		Enjoyment:  enjoyment,
		Context:    context,
		ObservedAt: now,
	})
	if len(t.observations) > maxObservations {
		t.observations = t.observations[len(t.observations)-maxObservations:]
	}
}

// ObserveSignals derives enjoyment from an independent positive/negative
// signal pair, both in [0,1], and records it as a normal observation.
func (t *Tracker) ObserveSignals(style Style, positive, negative float64, context string, now time.Time) {
	enjoyment := (clamp01(positive) - clamp01(negative) + 1) / 2
	t.Observe(style, enjoyment, context, now)
}

// ObserveFlow feeds a flow signal through the detector. A strong flow state
// nudges the deep-skill-mastery weight as a high-enjoyment observation.
// It reports whether flow was detected at all.
func (t *Tracker) ObserveFlow(sig FlowSignal, context string, now time.Time) bool {
	strength, ok := t.flow.Detect(sig)
	if !ok {
		return false
	}
	if strength >= strongFlowStrength {
		t.Observe(StyleDeepMastery, 0.9, context, now)
	}
	return true
}

// RecommendStyle returns a uniformly random style with probability equal to
// the exploration rate, otherwise the currently highest-weighted style.
func (t *Tracker) RecommendStyle() Style {
	styles := Styles()
	if t.rng.Float64() < t.explorationRate {
		return styles[t.rng.Intn(len(styles))]
	}

	best := styles[0]
	for _, s := range styles[1:] {
		if t.weights[s] > t.weights[best] {
			best = s
		}
	}
	return best
}

// renormalize scales weights back to a sum of 1. If every weight has been
// floored to zero the distribution resets to uniform.
func (t *Tracker) renormalize() {
	var sum float64
	for _, w := range t.weights {
		sum += w
	}
	if sum <= 0 {
		for _, s := range Styles() {
			t.weights[s] = 1.0 / float64(len(t.weights))
		}
		return
	}
	for s, w := range t.weights {
		t.weights[s] = w / sum
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
