package affect

import (
	"math"
	"testing"
	"time"
)

var sampledAt = time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

func observeSeries(m *Monitor, dim Dimension, values ...float64) {
	for i, v := range values {
		m.Observe(dim, v, sampledAt.Add(time.Duration(i)*10*time.Second))
	}
}

func TestLevel_MeanOfRecentSamples(t *testing.T) {
	m := NewMonitor()

	if got := m.Level(DimensionFrustration); got != 0 {
		t.Errorf("Level() with no samples = %v; want 0", got)
	}

	// Older samples fall out of the sustained window.
	observeSeries(m, DimensionFrustration, 1.0, 1.0, 1.0, 0.2, 0.2, 0.2, 0.2, 0.2)

	if got := m.Level(DimensionFrustration); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Level() = %v; want 0.2 from the recent window", got)
	}
}

func TestObserve_ClampsValues(t *testing.T) {
	m := NewMonitor()
	observeSeries(m, DimensionEngagement, 7.0, -3.0)

	if got := m.Level(DimensionEngagement); got != 0.5 {
		t.Errorf("Level() = %v; want 0.5 from clamped samples", got)
	}
}

func TestNeedsBreak_SustainedFrustration(t *testing.T) {
	m := NewMonitor()

	// Four hot samples: not yet sustained.
	observeSeries(m, DimensionFrustration, 0.9, 0.9, 0.9, 0.9)
	if m.NeedsBreak() {
		t.Error("NeedsBreak() below the minimum sample count; want false")
	}

	m.Observe(DimensionFrustration, 0.9, sampledAt.Add(time.Minute))
	if !m.NeedsBreak() {
		t.Error("NeedsBreak() after sustained high frustration; want true")
	}
}

func TestNeedsBreak_SustainedDisengagement(t *testing.T) {
	m := NewMonitor()

	observeSeries(m, DimensionEngagement, 0.1, 0.1, 0.2, 0.1, 0.15)
	if !m.NeedsBreak() {
		t.Error("NeedsBreak() after sustained low engagement; want true")
	}
}

func TestNeedsBreak_HealthyState(t *testing.T) {
	m := NewMonitor()

	observeSeries(m, DimensionEngagement, 0.8, 0.7, 0.9, 0.8, 0.7)
	observeSeries(m, DimensionFrustration, 0.2, 0.3, 0.2, 0.1, 0.2)
	if m.NeedsBreak() {
		t.Error("NeedsBreak() with healthy affect; want false")
	}
}

func TestStability(t *testing.T) {
	steady := NewMonitor()
	observeSeries(steady, DimensionEngagement, 0.7, 0.7, 0.7, 0.7, 0.7)

	swingy := NewMonitor()
	observeSeries(swingy, DimensionEngagement, 0.0, 1.0, 0.0, 1.0, 0.0)

	if got := steady.Stability(); got != 1 {
		t.Errorf("steady Stability() = %v; want 1", got)
	}
	if got := swingy.Stability(); got >= 0.5 {
		t.Errorf("swingy Stability() = %v; want low", got)
	}
	if got := NewMonitor().Stability(); got != 1 {
		t.Errorf("empty Stability() = %v; want assumed steady 1", got)
	}
}

func TestEnjoyment(t *testing.T) {
	m := NewMonitor()
	observeSeries(m, DimensionEngagement, 0.9, 0.9, 0.9, 0.9, 0.9)
	observeSeries(m, DimensionFrustration, 0.1, 0.1, 0.1, 0.1, 0.1)

	if got := m.Enjoyment(); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("Enjoyment() = %v; want 0.9", got)
	}
	if got := NewMonitor().Enjoyment(); got != 0.5 {
		t.Errorf("empty Enjoyment() = %v; want neutral 0.5", got)
	}
}

func TestObserve_WindowBounded(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 200; i++ {
		m.Observe(DimensionFrustration, 0.5, sampledAt.Add(time.Duration(i)*time.Second))
	}
	if got := m.SampleCount(DimensionFrustration); got != windowSize {
		t.Errorf("SampleCount() = %d; want bounded at %d", got, windowSize)
	}
}
