package goal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/pathway/internal/domain"
)

// Challenge is one goal-themed challenge descriptor on a learning path.
type Challenge struct {
	ID          string
	ConceptID   string
	Title       string
	Description string
}

// Plan is an ordered, prerequisite-respecting path toward a declared goal.
type Plan struct {
	GoalText       string
	Concepts       []string
	Challenges     []Challenge
	EstimatedHours float64
}

// Sequencer expands free-text goals into concept paths. Its tables are
// immutable configuration injected at startup, never hidden global state.
type Sequencer struct {
	graph    *domain.Graph
	patterns []Pattern
	themes   ThemeTable
	fallback []string
}

// NewSequencer creates a sequencer over the given content tables.
// fallback is the basic concept set used when no pattern matches.
func NewSequencer(graph *domain.Graph, patterns []Pattern, themes ThemeTable, fallback []string) *Sequencer {
	return &Sequencer{
		graph:    graph,
		patterns: patterns,
		themes:   themes,
		fallback: fallback,
	}
}

// Expand matches the goal text against the pattern table, unions all
// matches (or falls back to the basic set), then closes the result one
// level under prerequisites: direct prerequisites of matched concepts are
// added, transitive ones are not.
func (s *Sequencer) Expand(goalText string) []string {
	lower := strings.ToLower(goalText)

	set := make(map[string]bool)
	for _, p := range s.patterns {
		if strings.Contains(lower, strings.ToLower(p.Match)) {
			for _, c := range p.Concepts {
				set[c] = true
			}
		}
	}
	if len(set) == 0 {
		for _, c := range s.fallback {
			set[c] = true
		}
	}

	// One level of prerequisite closure, deliberately not transitive.
	var matched []string
	for c := range set {
		matched = append(matched, c)
	}
	for _, c := range matched {
		for _, prereq := range s.graph.Get(c).Prerequisites {
			set[prereq] = true
		}
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Order sorts concepts so every prerequisite precedes its dependents
// (Kahn's algorithm over the induced subgraph). Among removable concepts
// the lowest difficulty level goes first, ties broken lexically.
func (s *Sequencer) Order(concepts []string) []string {
	inSet := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		inSet[c] = true
	}

	indegree := make(map[string]int, len(concepts))
	dependents := make(map[string][]string, len(concepts))
	for _, c := range concepts {
		indegree[c] += 0
		for _, prereq := range s.graph.Get(c).Prerequisites {
			if inSet[prereq] {
				indegree[c]++
				dependents[prereq] = append(dependents[prereq], c)
			}
		}
	}

	var ready []string
	for c, deg := range indegree {
		if deg == 0 {
			ready = append(ready, c)
		}
	}

	ordered := make([]string, 0, len(concepts))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			li, lj := s.graph.Get(ready[i]).Level, s.graph.Get(ready[j]).Level
			if li != lj {
				return li < lj
			}
			return ready[i] < ready[j]
		})
		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, next)

		for _, dep := range dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	// A cycle would strand concepts; append the remainder by level so the
	// plan never silently loses a concept.
	if len(ordered) < len(concepts) {
		var rest []string
		seen := make(map[string]bool, len(ordered))
		for _, c := range ordered {
			seen[c] = true
		}
		for _, c := range concepts {
			if !seen[c] {
				rest = append(rest, c)
			}
		}
		sort.Slice(rest, func(i, j int) bool {
			li, lj := s.graph.Get(rest[i]).Level, s.graph.Get(rest[j]).Level
			if li != lj {
				return li < lj
			}
			return rest[i] < rest[j]
		})
		ordered = append(ordered, rest...)
	}

	return ordered
}

// Theme returns the goal-flavored descriptor for a concept, falling back to
// a generic one when no theme entry matches the goal text.
func (s *Sequencer) Theme(conceptID, goalText string) Theme {
	lower := strings.ToLower(goalText)
	for _, entry := range s.themes[conceptID] {
		if strings.Contains(lower, strings.ToLower(entry.Match)) {
			return entry.Theme
		}
	}
	return Theme{
		Title:       fmt.Sprintf("Practice: %s", conceptID),
		Description: fmt.Sprintf("A focused challenge to sharpen your %s skills.", conceptID),
	}
}

// EstimateHours sums the per-concept estimate of 1 + 0.5 x level hours.
func (s *Sequencer) EstimateHours(concepts []string) float64 {
	var hours float64
	for _, c := range concepts {
		hours += 1 + 0.5*float64(s.graph.Get(c).Level)
	}
	return hours
}

// Generate runs the full pipeline: expand the goal, drop already-known
// concepts, order what remains, theme each step, and estimate the total.
func (s *Sequencer) Generate(goalText string, known map[string]bool) *Plan {
	expanded := s.Expand(goalText)

	remaining := expanded[:0:0]
	for _, c := range expanded {
		if !known[c] {
			remaining = append(remaining, c)
		}
	}

	ordered := s.Order(remaining)

	challenges := make([]Challenge, 0, len(ordered))
	for _, c := range ordered {
		theme := s.Theme(c, goalText)
		challenges = append(challenges, Challenge{
			ID:          fmt.Sprintf("goal/%s", c),
			ConceptID:   c,
			Title:       theme.Title,
			Description: theme.Description,
		})
	}

	return &Plan{
		GoalText:       goalText,
		Concepts:       ordered,
		Challenges:     challenges,
		EstimatedHours: s.EstimateHours(ordered),
	}
}
