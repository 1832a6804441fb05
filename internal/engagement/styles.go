package engagement

// Style is one of the six fixed engagement-style tags describing what kind
// of challenge a learner tends to enjoy.
type Style string

const (
	StyleProblemSolving    Style = "problem_solving"
	StyleTimePressure      Style = "time_pressure"
	StyleCompletionism     Style = "completionism"
	StyleOpenEndedBuilding Style = "open_ended_building"
	StyleHeadToHead        Style = "head_to_head_competition"
	StyleDeepMastery       Style = "deep_skill_mastery"
)

// Styles returns the fixed taxonomy in canonical order.
func Styles() []Style {
	return []Style{
		StyleProblemSolving,
		StyleTimePressure,
		StyleCompletionism,
		StyleOpenEndedBuilding,
		StyleHeadToHead,
		StyleDeepMastery,
	}
}

// Valid reports whether s is part of the fixed taxonomy.
func (s Style) Valid() bool {
	switch s {
	case StyleProblemSolving, StyleTimePressure, StyleCompletionism,
		StyleOpenEndedBuilding, StyleHeadToHead, StyleDeepMastery:
		return true
	}
	return false
}

// ChallengeFacets are the boolean facets of a challenge description used
// for style classification.
type ChallengeFacets struct {
	TimeLimited     bool
	Competitive     bool
	OpenEnded       bool
	CompletionBased bool
	DeepReasoning   bool
}

// Classify maps challenge facets to exactly one style by first-match
// priority: competitive, then time-limited, open-ended, completion-based,
// deep-reasoning, with deep-skill-mastery as the default.
func Classify(f ChallengeFacets) Style {
	switch {
	case f.Competitive:
		return StyleHeadToHead
	case f.TimeLimited:
		return StyleTimePressure
	case f.OpenEnded:
		return StyleOpenEndedBuilding
	case f.CompletionBased:
		return StyleCompletionism
	case f.DeepReasoning:
		return StyleProblemSolving
	default:
		return StyleDeepMastery
	}
}
