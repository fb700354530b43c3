// Package prompt renders the fixed instruction template plus a batch of PR
// titles into the single text blob sent to the model. The category
// definitions and worked example are re-sent on every call; the model
// service is stateless across calls.
package prompt

import (
	"strings"

	"github.com/FindHao/relgen/internal/notes"
)

// Build renders the prompt for one batch: instruction preamble, category
// definitions, worked example, then one bulleted line per PR.
func Build(batch []notes.PRDetail) string {
	var b strings.Builder
	instructions := strings.ReplaceAll(instructionsTemplate, "{{.CategoryDefinitions}}", categoryDefinitions)
	instructions = strings.ReplaceAll(instructions, "{{.ExampleResponse}}", exampleResponse)
	b.WriteString(instructions)
	for _, pr := range batch {
		b.WriteString("- ")
		b.WriteString(pr.OriginalTitle)
		b.WriteString("\n")
	}
	return b.String()
}
