package notes

import (
	"fmt"
	"strings"
)

// Render emits the Markdown document for the cumulative category map.
// Categories are rendered in the fixed presentation order; empty categories
// are omitted entirely, header included. When includeURLs is set, the
// trailing (#n) reference becomes a [#n](pull-request-url) link.
func Render(m CategoryMap, owner, repo string, includeURLs bool) string {
	var b strings.Builder
	for _, c := range CategoryOrder {
		entries := m[c]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s:\n", c.Title())
		for _, e := range entries {
			if includeURLs {
				url := fmt.Sprintf("https://github.com/%s/%s/pull/%s", owner, repo, e.PRNumber)
				fmt.Fprintf(&b, "- %s [#%s](%s).\n", e.Summary, e.PRNumber, url)
			} else {
				fmt.Fprintf(&b, "- %s (#%s).\n", e.Summary, e.PRNumber)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
