package content

import (
	"github.com/felixgeelhaar/pathway/internal/domain"
	"github.com/felixgeelhaar/pathway/internal/goal"
)

// Tables bundles the immutable content configuration the personalization
// core consumes: the concept graph, the goal pattern table, the theme
// table, and the basic fallback concept set. Tables are loaded once at
// startup and injected; components never read hidden globals.
type Tables struct {
	Concepts      []domain.Concept
	GoalPatterns  []goal.Pattern
	Themes        goal.ThemeTable
	BasicConcepts []string
}

// Graph builds the shared read-only concept graph from the tables.
func (t Tables) Graph() *domain.Graph {
	return domain.NewGraph(t.Concepts)
}

// Defaults returns the compiled-in curriculum used when no content file
// is configured.
func Defaults() Tables {
	return Tables{
		Concepts: []domain.Concept{
			{ID: "variables", Level: 0},
			{ID: "numbers", Level: 0},
			{ID: "strings", Level: 1, Prerequisites: []string{"variables"}},
			{ID: "conditionals", Level: 1, Prerequisites: []string{"variables"}},
			{ID: "loops", Level: 2, Prerequisites: []string{"conditionals"}},
			{ID: "functions", Level: 2, Prerequisites: []string{"variables"}},
			{ID: "lists", Level: 2, Prerequisites: []string{"loops"}},
			{ID: "dictionaries", Level: 3, Prerequisites: []string{"lists"}},
			{ID: "error-handling", Level: 3, Prerequisites: []string{"functions"}},
			{ID: "modules", Level: 3, Prerequisites: []string{"functions"}},
			{ID: "files", Level: 3, Prerequisites: []string{"strings", "error-handling"}},
			{ID: "classes", Level: 4, Prerequisites: []string{"functions", "dictionaries"}},
			{ID: "testing", Level: 4, Prerequisites: []string{"functions", "modules"}},
			{ID: "apis", Level: 5, Prerequisites: []string{"functions", "dictionaries", "error-handling"}},
			{ID: "async", Level: 6, Prerequisites: []string{"functions", "apis"}},
		},
		BasicConcepts: []string{"variables", "strings", "conditionals", "loops", "functions"},
		GoalPatterns: []goal.Pattern{
			{Match: "discord bot", Concepts: []string{"strings", "functions", "apis", "async"}},
			{Match: "bot", Concepts: []string{"functions", "apis"}},
			{Match: "website", Concepts: []string{"functions", "dictionaries", "apis", "files"}},
			{Match: "web", Concepts: []string{"functions", "dictionaries", "apis"}},
			{Match: "game", Concepts: []string{"conditionals", "loops", "functions", "classes"}},
			{Match: "data", Concepts: []string{"loops", "lists", "dictionaries", "files"}},
			{Match: "automat", Concepts: []string{"files", "loops", "functions"}},
			{Match: "script", Concepts: []string{"files", "loops", "functions"}},
			{Match: "machine learning", Concepts: []string{"lists", "dictionaries", "functions", "classes", "apis"}},
			{Match: "ai", Concepts: []string{"lists", "dictionaries", "functions", "apis"}},
		},
		Themes: goal.ThemeTable{
			"strings": {
				{Match: "discord bot", Theme: goal.Theme{
					Title:       "Format Bot Replies",
					Description: "Build the message formatter your bot will use to answer in channels.",
				}},
				{Match: "game", Theme: goal.Theme{
					Title:       "Score Banner Builder",
					Description: "Assemble the text banner that announces the winner of each round.",
				}},
			},
			"functions": {
				{Match: "discord bot", Theme: goal.Theme{
					Title:       "Command Handlers",
					Description: "Write one handler per bot command and route messages to the right one.",
				}},
				{Match: "game", Theme: goal.Theme{
					Title:       "Game Loop Helpers",
					Description: "Split the round logic into small, reusable helper functions.",
				}},
			},
			"apis": {
				{Match: "discord bot", Theme: goal.Theme{
					Title:       "Talk to the Gateway",
					Description: "Call the chat API, handle its responses, and survive its error codes.",
				}},
				{Match: "web", Theme: goal.Theme{
					Title:       "Serve Your First Endpoint",
					Description: "Expose a JSON endpoint and shape the responses clients expect.",
				}},
			},
			"loops": {
				{Match: "data", Theme: goal.Theme{
					Title:       "Walk the Dataset",
					Description: "Iterate over a messy dataset and keep running totals as you go.",
				}},
			},
			"files": {
				{Match: "automat", Theme: goal.Theme{
					Title:       "Tame the Downloads Folder",
					Description: "Scan a folder, pick out the files that matter, and file them away.",
				}},
			},
			"classes": {
				{Match: "game", Theme: goal.Theme{
					Title:       "Model the Players",
					Description: "Design the player and board types the rest of the game builds on.",
				}},
			},
		},
	}
}
