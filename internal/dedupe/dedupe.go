// Package dedupe normalizes bracketed tags on an already-rendered release
// notes file: per bullet it drops duplicate tags (case-insensitive, first
// casing wins) and tags equal to the surrounding category, then rewrites the
// line as one bullet marker, the surviving tags, and the remaining text.
// The pass is idempotent; the file is rewritten only when a line changed.
package dedupe

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/FindHao/relgen/internal/logging"
)

var bracketGroup = regexp.MustCompile(`\[([^\]]*)\]`)

// CleanFile normalizes tags in place. Returns whether the file was changed.
func CleanFile(path string, log logging.Logger) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	cleaned := make([]string, 0, len(lines))
	currentCategory := ""
	changed := false

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "##"):
			title := strings.TrimSpace(strings.Trim(line, "#"))
			currentCategory = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(title, ":")))
			cleaned = append(cleaned, line)
		case !strings.HasPrefix(strings.TrimSpace(line), "-"):
			cleaned = append(cleaned, line)
		default:
			newLine := cleanBulletLine(strings.TrimSpace(line), currentCategory)
			if newLine != line {
				changed = true
				log.Info("line changed", "line", i+1, "from", strings.TrimSpace(line), "to", strings.TrimSpace(newLine))
			}
			cleaned = append(cleaned, newLine)
		}
	}

	if !changed {
		log.Info("no changes were necessary", "path", path)
		return false, nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(cleaned, "\n")), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("file updated", "path", path)
	return true, nil
}

// cleanBulletLine rebuilds one bullet: surviving tags first, then the text
// with every bracket group stripped out.
func cleanBulletLine(line, category string) string {
	var tags []string
	for _, m := range bracketGroup.FindAllStringSubmatch(line, -1) {
		tags = append(tags, m[1])
	}
	content := strings.TrimSpace(bracketGroup.ReplaceAllString(line, ""))
	content = strings.TrimSpace(strings.TrimLeft(content, "- "))

	seen := make(map[string]bool)
	var kept []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		lower := strings.ToLower(tag)
		if lower == "" || lower == category || seen[lower] {
			continue
		}
		seen[lower] = true
		kept = append(kept, "["+tag+"]")
	}

	out := "- " + strings.Join(kept, " ")
	if len(kept) > 0 {
		out += " "
	}
	return out + content
}
