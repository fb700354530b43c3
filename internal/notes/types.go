// Package notes holds the release-note domain model: parsed PR entries,
// the fixed category set, and the cumulative categorized output.
package notes

// Category is one of the eight fixed release-note section keys.
type Category string

const (
	BCBreaking    Category = "bc_breaking"
	Deprecations  Category = "deprecations"
	NewFeatures   Category = "new_features"
	Improvements  Category = "improvements"
	BugFixes      Category = "bug_fixes"
	Performance   Category = "performance"
	Documentation Category = "documentation"
	Developers    Category = "developers"
)

// CategoryOrder is the fixed presentation order used by the renderer.
var CategoryOrder = []Category{
	BCBreaking,
	Deprecations,
	NewFeatures,
	Improvements,
	BugFixes,
	Performance,
	Documentation,
	Developers,
}

// categoryTitles maps each key to its canonical display title.
var categoryTitles = map[Category]string{
	BCBreaking:    "BC breaking",
	Deprecations:  "Deprecations",
	NewFeatures:   "New_features",
	Improvements:  "Improvements",
	BugFixes:      "Bug Fixes",
	Performance:   "Performance",
	Documentation: "Documentation",
	Developers:    "Developers",
}

// Title returns the canonical display title for a category key.
func (c Category) Title() string {
	return categoryTitles[c]
}

// PREntry is one parsed input line: PR number, the raw title line, and the
// leading bracket tags in order of appearance.
type PREntry struct {
	Number        string
	OriginalTitle string
	Tags          []string
}

// PRDetail carries the input entry plus the metadata fetched from GitHub.
type PRDetail struct {
	Number        string
	Title         string
	Body          string
	Comments      []Comment
	OriginalTitle string
	Tags          []string
}

// Comment is a non-bot issue comment on a PR.
type Comment struct {
	User string
	Body string
}

// CategorizedEntry is one summarized PR as emitted by the model.
type CategorizedEntry struct {
	Summary  string
	PRNumber string
}

// CategoryMap holds the cumulative categorized entries, keyed by the eight
// fixed categories. Entries within a key keep append order across batches.
type CategoryMap map[Category][]CategorizedEntry

// NewCategoryMap returns a map with all eight keys present and empty.
func NewCategoryMap() CategoryMap {
	m := make(CategoryMap, len(CategoryOrder))
	for _, c := range CategoryOrder {
		m[c] = nil
	}
	return m
}

// Merge appends the new batch's entries to the cumulative map, key by key.
// No de-duplication and no reordering.
func (m CategoryMap) Merge(batch CategoryMap) {
	for _, c := range CategoryOrder {
		if entries := batch[c]; len(entries) > 0 {
			m[c] = append(m[c], entries...)
		}
	}
}
