package engagement

import "time"

// strongFlowStrength is the detector strength above which flow feeds back
// into the weight profile.
const strongFlowStrength = 0.5

// FlowSignal carries the inputs to flow-state detection.
type FlowSignal struct {
	EngagedTime time.Duration // sustained time on the current challenge
	Stability   float64       // 0-1 emotional stability
	Balance     float64       // 0-1 challenge/skill balance
}

// FlowDetector triggers when sustained engagement time, emotional
// stability, and challenge/skill balance each clear their own threshold.
type FlowDetector struct {
	MinEngagedTime time.Duration
	MinStability   float64
	MinBalance     float64
}

// NewFlowDetector returns a detector with the default thresholds.
func NewFlowDetector() FlowDetector {
	return FlowDetector{
		MinEngagedTime: 180 * time.Second,
		MinStability:   0.7,
		MinBalance:     0.6,
	}
}

// Detect reports whether the signal qualifies as flow and, if so, how far
// stability and balance clear their thresholds, graded into [0,1].
func (d FlowDetector) Detect(sig FlowSignal) (strength float64, ok bool) {
	if sig.EngagedTime < d.MinEngagedTime ||
		sig.Stability < d.MinStability ||
		sig.Balance < d.MinBalance {
		return 0, false
	}
	stabilityMargin := (sig.Stability - d.MinStability) / (1 - d.MinStability)
	balanceMargin := (sig.Balance - d.MinBalance) / (1 - d.MinBalance)
	return (stabilityMargin + balanceMargin) / 2, true
}
