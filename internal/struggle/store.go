package struggle

import "time"

// StoredTracker is the JSON-serializable form of a learner's struggle
// records. Rolling windows are truncated to their bound before write.
type StoredTracker struct {
	LearnerID string                  `json:"learner_id"`
	Records   map[string]StoredRecord `json:"records"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// StoredRecord is the JSON-serializable form of one struggle record.
// Durations serialize as seconds.
type StoredRecord struct {
	Successes          int       `json:"successes"`
	Failures           int       `json:"failures"`
	TotalTimeSeconds   float64   `json:"total_time_seconds"`
	TotalHints         int       `json:"total_hints"`
	FirstSeen          time.Time `json:"first_seen"`
	LastPracticed      time.Time `json:"last_practiced"`
	RecentOutcomes     []bool    `json:"recent_outcomes"`
	RecentTimesSeconds []float64 `json:"recent_times_seconds"`
}

// Stored converts the tracker to its persisted form.
func (t *Tracker) Stored(now time.Time) *StoredTracker {
	s := &StoredTracker{
		LearnerID: t.LearnerID,
		Records:   make(map[string]StoredRecord, len(t.records)),
		UpdatedAt: now,
	}
	for id, rec := range t.records {
		times := rec.recentTimes.values()
		seconds := make([]float64, len(times))
		for i, d := range times {
			seconds[i] = d.Seconds()
		}
		s.Records[id] = StoredRecord{
			Successes:          rec.Successes,
			Failures:           rec.Failures,
			TotalTimeSeconds:   rec.TotalTime.Seconds(),
			TotalHints:         rec.TotalHints,
			FirstSeen:          rec.FirstSeen,
			LastPracticed:      rec.LastPracticed,
			RecentOutcomes:     rec.recentOutcomes.values(),
			RecentTimesSeconds: seconds,
		}
	}
	return s
}

// TrackerFromStored rebuilds a tracker from its persisted form. Windows
// longer than the bound (written by older builds) are truncated to the
// newest entries.
func TrackerFromStored(s *StoredTracker) *Tracker {
	t := NewTracker(s.LearnerID)
	for id, sr := range s.Records {
		rec := newRecord(id, sr.FirstSeen)
		rec.Successes = sr.Successes
		rec.Failures = sr.Failures
		rec.TotalTime = time.Duration(sr.TotalTimeSeconds * float64(time.Second))
		rec.TotalHints = sr.TotalHints
		rec.LastPracticed = sr.LastPracticed

		outcomes := sr.RecentOutcomes
		if len(outcomes) > WindowSize {
			outcomes = outcomes[len(outcomes)-WindowSize:]
		}
		for _, o := range outcomes {
			rec.recentOutcomes.push(o)
		}

		times := sr.RecentTimesSeconds
		if len(times) > WindowSize {
			times = times[len(times)-WindowSize:]
		}
		for _, sec := range times {
			rec.recentTimes.push(time.Duration(sec * float64(time.Second)))
		}

		t.records[id] = rec
	}
	return t
}
