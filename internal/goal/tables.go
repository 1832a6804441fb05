package goal

// Pattern maps a goal-text fragment to the concepts that goal requires.
// Matching is case-insensitive substring matching.
type Pattern struct {
	Match    string
	Concepts []string
}

// Theme is a goal-flavored challenge descriptor for one concept.
type Theme struct {
	Title       string
	Description string
}

// ThemeEntry pairs a goal-text fragment with the theme to use when the
// learner's goal matches it.
type ThemeEntry struct {
	Match string
	Theme Theme
}

// ThemeTable maps concept ids to their goal-themed descriptors. Entries are
// ordered; the first matching fragment wins.
type ThemeTable map[string][]ThemeEntry
