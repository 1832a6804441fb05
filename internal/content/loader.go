package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/pathway/internal/domain"
	"github.com/felixgeelhaar/pathway/internal/goal"
)

// File is the YAML structure for a content pack.
type File struct {
	Concepts []struct {
		ID            string   `yaml:"id"`
		Level         int      `yaml:"level"`
		Prerequisites []string `yaml:"prerequisites"`
	} `yaml:"concepts"`
	BasicConcepts []string `yaml:"basic_concepts"`
	GoalPatterns  []struct {
		Match    string   `yaml:"match"`
		Concepts []string `yaml:"concepts"`
	} `yaml:"goal_patterns"`
	Themes []struct {
		Concept     string `yaml:"concept"`
		Match       string `yaml:"match"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"themes"`
}

// Load reads content tables from a YAML file. Concept levels are clamped
// into the supported range; a concept without an id is a content error.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read content file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Tables{}, fmt.Errorf("parse content file: %w", err)
	}

	tables := Tables{
		BasicConcepts: file.BasicConcepts,
		Themes:        make(goal.ThemeTable),
	}

	for i, c := range file.Concepts {
		if c.ID == "" {
			return Tables{}, fmt.Errorf("concept %d: missing id", i)
		}
		level := c.Level
		if level < 0 {
			level = 0
		}
		if level > domain.MaxConceptLevel {
			level = domain.MaxConceptLevel
		}
		tables.Concepts = append(tables.Concepts, domain.Concept{
			ID:            c.ID,
			Level:         level,
			Prerequisites: c.Prerequisites,
		})
	}

	for i, p := range file.GoalPatterns {
		if p.Match == "" {
			return Tables{}, fmt.Errorf("goal pattern %d: missing match text", i)
		}
		tables.GoalPatterns = append(tables.GoalPatterns, goal.Pattern{
			Match:    p.Match,
			Concepts: p.Concepts,
		})
	}

	for i, th := range file.Themes {
		if th.Concept == "" || th.Match == "" {
			return Tables{}, fmt.Errorf("theme %d: missing concept or match text", i)
		}
		tables.Themes[th.Concept] = append(tables.Themes[th.Concept], goal.ThemeEntry{
			Match: th.Match,
			Theme: goal.Theme{Title: th.Title, Description: th.Description},
		})
	}

	return tables, nil
}
