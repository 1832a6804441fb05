package domain

import (
	"testing"
	"time"
)

func TestLearnerProfile_RaiseMastery_Capped(t *testing.T) {
	p := NewLearnerProfile("kai", time.Now())

	p.RaiseMastery("loops", 3.5)
	p.RaiseMastery("loops", 1.0)

	if got := p.MasteryOf("loops"); got != MaxMastery {
		t.Errorf("MasteryOf() = %v; want capped at %v", got, MaxMastery)
	}
}

func TestLearnerProfile_TouchConcept(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	p := NewLearnerProfile("kai", now)

	p.TouchConcept("loops", true, now)
	if got := p.SeenIntervals["loops"].Interval; got != 1 {
		t.Errorf("first success interval = %v; want 1", got)
	}

	p.TouchConcept("loops", true, now)
	if got := p.SeenIntervals["loops"].Interval; got != 2 {
		t.Errorf("second success interval = %v; want 2", got)
	}

	p.TouchConcept("loops", false, now)
	if got := p.SeenIntervals["loops"].Interval; got != 1 {
		t.Errorf("interval after failure = %v; want 1", got)
	}

	if p.PeakHours[15] != 3 {
		t.Errorf("PeakHours[15] = %d; want 3", p.PeakHours[15])
	}
}

func TestLearnerProfile_TouchConcept_IntervalBounded(t *testing.T) {
	now := time.Now()
	p := NewLearnerProfile("kai", now)

	for i := 0; i < 20; i++ {
		p.TouchConcept("loops", true, now)
	}

	if got := p.SeenIntervals["loops"].Interval; got != 30 {
		t.Errorf("interval = %v; want bounded at 30", got)
	}
}

func TestLearnerProfile_AddFlowTrigger(t *testing.T) {
	p := NewLearnerProfile("kai", time.Now())

	p.AddFlowTrigger("loops")
	p.AddFlowTrigger("strings")
	p.AddFlowTrigger("loops") // re-trigger moves it to the end

	if len(p.FlowTriggers) != 2 {
		t.Fatalf("FlowTriggers = %v; want 2 entries", p.FlowTriggers)
	}
	if p.FlowTriggers[1] != "loops" {
		t.Errorf("most recent trigger = %q; want loops", p.FlowTriggers[1])
	}

	for i := 0; i < 30; i++ {
		p.AddFlowTrigger(string(rune('a' + i)))
	}
	if len(p.FlowTriggers) > 10 {
		t.Errorf("FlowTriggers grew to %d; want bounded at 10", len(p.FlowTriggers))
	}
}

func TestLearnerProfile_LowerFrustrationThreshold_Floor(t *testing.T) {
	p := NewLearnerProfile("kai", time.Now())

	for i := 0; i < 100; i++ {
		p.LowerFrustrationThreshold(0.02)
	}

	if got := p.Pacing.FrustrationThreshold; got != MinFrustrationThreshold {
		t.Errorf("FrustrationThreshold = %v; want floored at %v", got, MinFrustrationThreshold)
	}
}
