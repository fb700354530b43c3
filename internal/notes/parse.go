package notes

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/FindHao/relgen/internal/logging"
)

var (
	// One or more leading bracket tags, arbitrary text, trailing (#digits).
	titleWithTags = regexp.MustCompile(`^((?:\[[^\]]*\])+).*\(#(\d+)\)\s*$`)
	// No leading bracket, arbitrary text, trailing (#digits).
	titleWithoutTags = regexp.MustCompile(`^[^\[].*\(#(\d+)\)\s*$`)

	bracketGroup = regexp.MustCompile(`\[([^\]]*)\]`)
)

// ParseTitleLine parses a single PR title line. ok is false when the line
// does not match either accepted form.
func ParseTitleLine(line string) (PREntry, bool) {
	line = strings.TrimSpace(line)
	if m := titleWithTags.FindStringSubmatch(line); m != nil {
		var tags []string
		for _, g := range bracketGroup.FindAllStringSubmatch(m[1], -1) {
			tags = append(tags, g[1])
		}
		return PREntry{Number: m[2], OriginalTitle: line, Tags: tags}, true
	}
	if m := titleWithoutTags.FindStringSubmatch(line); m != nil {
		return PREntry{Number: m[1], OriginalTitle: line}, true
	}
	return PREntry{}, false
}

// ReadPRList reads the input file, one PR title per line. Malformed lines are
// reported and skipped; they contribute no entry. Input order is preserved.
func ReadPRList(path string, log logging.Logger) ([]PREntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []PREntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, ok := ParseTitleLine(line)
		if !ok {
			log.Info("input line does not match expected format, skipping", "line", line)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
