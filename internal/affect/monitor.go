package affect

import (
	"math"
	"time"
)

// Dimension tags one live affect channel reported by the session layer.
type Dimension string

const (
	// DimensionFrustration is the negative affect channel.
	DimensionFrustration Dimension = "frustration"
	// DimensionEngagement is the positive affect channel.
	DimensionEngagement Dimension = "engagement"
)

const (
	// DefaultMinSamples is how many samples "sustained" requires.
	DefaultMinSamples = 5
	// DefaultHighNegative is the sustained frustration level that
	// signals a needed break.
	DefaultHighNegative = 0.7
	// DefaultLowPositive is the sustained engagement level below which
	// a break is signaled.
	DefaultLowPositive = 0.3

	windowSize = 20
)

type sample struct {
	value float64
	at    time.Time
}

// Monitor keeps bounded rolling windows of live affect samples per
// dimension and derives sustained-signal judgments from them. Affect state
// is session-scoped and never persisted.
type Monitor struct {
	samples      map[Dimension][]sample
	minSamples   int
	highNegative float64
	lowPositive  float64
}

// NewMonitor creates a monitor with default thresholds.
func NewMonitor() *Monitor {
	return &Monitor{
		samples:      make(map[Dimension][]sample),
		minSamples:   DefaultMinSamples,
		highNegative: DefaultHighNegative,
		lowPositive:  DefaultLowPositive,
	}
}

// Observe appends one sample, clamped into [0,1], to a dimension's window.
func (m *Monitor) Observe(dim Dimension, value float64, now time.Time) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	window := append(m.samples[dim], sample{value: value, at: now})
	if len(window) > windowSize {
		window = window[len(window)-windowSize:]
	}
	m.samples[dim] = window
}

// SampleCount returns how many samples a dimension currently holds.
func (m *Monitor) SampleCount(dim Dimension) int {
	return len(m.samples[dim])
}

// Level returns the sustained level of a dimension: the mean of its most
// recent samples, zero when nothing has been observed.
func (m *Monitor) Level(dim Dimension) float64 {
	window := m.samples[dim]
	if len(window) == 0 {
		return 0
	}
	if len(window) > m.minSamples {
		window = window[len(window)-m.minSamples:]
	}
	var sum float64
	for _, s := range window {
		sum += s.value
	}
	return sum / float64(len(window))
}

// NeedsBreak reports whether the live affect state independently signals a
// break: sustained high negative affect or sustained low positive affect,
// each judged only once its dimension has the minimum sample count.
func (m *Monitor) NeedsBreak() bool {
	if m.SampleCount(DimensionFrustration) >= m.minSamples &&
		m.Level(DimensionFrustration) > m.highNegative {
		return true
	}
	if m.SampleCount(DimensionEngagement) >= m.minSamples &&
		m.Level(DimensionEngagement) < m.lowPositive {
		return true
	}
	return false
}

// Stability grades recent emotional steadiness in [0,1]: 1 means flat
// affect, 0 means wild swings. Dimensions with too few samples are skipped;
// with no usable dimension the learner is assumed steady.
func (m *Monitor) Stability() float64 {
	var total float64
	var dims int
	for _, window := range m.samples {
		if len(window) < 2 {
			continue
		}
		recent := window
		if len(recent) > m.minSamples {
			recent = recent[len(recent)-m.minSamples:]
		}
		total += stddev(recent)
		dims++
	}
	if dims == 0 {
		return 1
	}
	// Values live in [0,1], so a stddev of 0.5 is already chaotic.
	return 1 - math.Min(1, 2*total/float64(dims))
}

// Enjoyment derives a single enjoyment estimate from the positive and
// negative channels, mapped into [0,1].
func (m *Monitor) Enjoyment() float64 {
	return (m.Level(DimensionEngagement) - m.Level(DimensionFrustration) + 1) / 2
}

func stddev(window []sample) float64 {
	var mean float64
	for _, s := range window {
		mean += s.value
	}
	mean /= float64(len(window))

	var variance float64
	for _, s := range window {
		d := s.value - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(window)))
}
