package domain

import "sort"

// MaxConceptLevel is the highest difficulty level a concept can carry.
const MaxConceptLevel = 6

// Concept is a single teachable unit of the curriculum: an identifier, a
// difficulty level (0-6), and the concepts that should be learned first.
// Concepts are authored at content time and never mutated at runtime.
type Concept struct {
	ID            string
	Level         int
	Prerequisites []string
}

// Graph is the process-wide, read-only concept reference data.
// It is loaded once at startup and shared by every component.
type Graph struct {
	concepts map[string]Concept
}

// NewGraph builds a graph from authored concepts.
func NewGraph(concepts []Concept) *Graph {
	m := make(map[string]Concept, len(concepts))
	for _, c := range concepts {
		m[c.ID] = c
	}
	return &Graph{concepts: m}
}

// Get returns the concept for id. Unknown ids degrade to a level-0 concept
// with no prerequisites so that content updates never break saved profiles.
func (g *Graph) Get(id string) Concept {
	if c, ok := g.concepts[id]; ok {
		return c
	}
	return Concept{ID: id, Level: 0}
}

// Known reports whether id is part of the authored curriculum.
func (g *Graph) Known(id string) bool {
	_, ok := g.concepts[id]
	return ok
}

// Len returns the number of authored concepts.
func (g *Graph) Len() int {
	return len(g.concepts)
}

// IDs returns all authored concept ids in lexical order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.concepts))
	for id := range g.concepts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
