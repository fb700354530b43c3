package notes

import (
	"regexp"
	"strings"

	"github.com/FindHao/relgen/internal/logging"
)

// bulletPattern matches a response bullet: an optional run of bracket tag
// groups, a free-text summary, and the first trailing (#digits) group.
var bulletPattern = regexp.MustCompile(`^-\s*((?:\[[^\]]*\])*)\s*(.*?)\s*\(#(\d+)\)`)

// headerLookup maps normalized header text to a category key. Matching is
// case-insensitive and treats spaces and underscores as equivalent.
var headerLookup = func() map[string]Category {
	m := make(map[string]Category, len(CategoryOrder))
	for _, c := range CategoryOrder {
		m[normalizeHeader(c.Title())] = c
	}
	return m
}()

func normalizeHeader(title string) string {
	title = strings.ToLower(title)
	title = strings.ReplaceAll(title, " ", "")
	return strings.ReplaceAll(title, "_", "")
}

// MatchCategoryHeader resolves a section-header title against the eight
// known categories.
func MatchCategoryHeader(title string) (Category, bool) {
	c, ok := headerLookup[normalizeHeader(title)]
	return c, ok
}

// ParseResponse scans the model response line by line, collecting bullets
// under the most recent recognized "## " section header. Unknown headers,
// bullets outside a section, and bullets that do not match the grammar are
// reported and dropped. Anything else (blank lines, prose) is ignored.
func ParseResponse(text string, log logging.Logger) CategoryMap {
	result := NewCategoryMap()
	var current Category
	inCategory := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "## "):
			title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[3:]), ":"))
			c, ok := MatchCategoryHeader(title)
			if !ok {
				log.Info("unknown category header, skipping section", "header", title)
				inCategory = false
				continue
			}
			current = c
			inCategory = true
		case strings.HasPrefix(line, "- "):
			m := bulletPattern.FindStringSubmatch(line)
			if m == nil || !inCategory {
				log.Info("bullet does not match expected format or no active category, skipping", "line", line)
				continue
			}
			summary := m[2]
			if m[1] != "" {
				summary = m[1] + " " + summary
			}
			result[current] = append(result[current], CategorizedEntry{
				Summary:  summary,
				PRNumber: m[3],
			})
		}
	}
	return result
}

// TagsInSummary returns the lower-cased set of bracket tags present in a
// summary string.
func TagsInSummary(summary string) map[string]bool {
	tags := make(map[string]bool)
	for _, m := range bracketGroup.FindAllStringSubmatch(summary, -1) {
		tags[strings.ToLower(m[1])] = true
	}
	return tags
}

// EnrichTags prepends input-file tags that the model omitted from each
// entry's summary, preserving the input tag order. Entries whose PR number
// has no matching detail record are reported and left unchanged.
func EnrichTags(batch CategoryMap, details []PRDetail, log logging.Logger) {
	byNumber := make(map[string]PRDetail, len(details))
	for _, d := range details {
		byNumber[d.Number] = d
	}
	for _, c := range CategoryOrder {
		entries := batch[c]
		for i := range entries {
			detail, ok := byNumber[entries[i].PRNumber]
			if !ok {
				log.Info("tags not found for PR", "pr", entries[i].PRNumber)
				continue
			}
			existing := TagsInSummary(entries[i].Summary)
			var missing []string
			for _, tag := range detail.Tags {
				if !existing[strings.ToLower(tag)] {
					missing = append(missing, "["+tag+"]")
				}
			}
			if len(missing) > 0 {
				entries[i].Summary = strings.Join(missing, "") + " " + entries[i].Summary
			}
		}
	}
}
