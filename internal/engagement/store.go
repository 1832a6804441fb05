package engagement

import "time"

// StoredTracker is the JSON-serializable form of a learner's engagement
// state: the six style weights and a bounded list of recent observations.
type StoredTracker struct {
	LearnerID    string             `json:"learner_id"`
	Weights      map[Style]float64  `json:"weights"`
	Observations []Observation      `json:"observations"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Stored converts the tracker to its persisted form.
func (t *Tracker) Stored(now time.Time) *StoredTracker {
	return &StoredTracker{
		LearnerID:    t.LearnerID,
		Weights:      t.Weights(),
		Observations: t.Observations(),
		UpdatedAt:    now,
	}
}

// TrackerFromStored rebuilds a tracker from its persisted form. Missing or
// invalid weights fall back to the uniform distribution; the weight set is
// renormalized so the sum-to-one invariant holds even for hand-edited state.
func TrackerFromStored(s *StoredTracker) *Tracker {
	t := NewTracker(s.LearnerID)
	if len(s.Weights) > 0 {
		valid := true
		for _, style := range Styles() {
			w, ok := s.Weights[style]
			if !ok || w < 0 {
				valid = false
				break
			}
		}
		if valid {
			for _, style := range Styles() {
				t.weights[style] = s.Weights[style]
			}
			t.renormalize()
		}
	}

	obs := s.Observations
	if len(obs) > maxObservations {
		obs = obs[len(obs)-maxObservations:]
	}
	t.observations = append(t.observations, obs...)
	return t
}
