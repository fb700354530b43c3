package notes

import (
	"os"
	"regexp"
)

var prRefPattern = regexp.MustCompile(`\(#(\d+)\)`)

// ExtractPRNumbers collects every (#digits) reference found in the rendered
// release file. A missing file yields an empty set, not an error: the caller
// treats it as "nothing was processed".
func ExtractPRNumbers(path string) (map[string]bool, error) {
	numbers := make(map[string]bool)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return numbers, nil
		}
		return nil, err
	}
	for _, m := range prRefPattern.FindAllStringSubmatch(string(data), -1) {
		numbers[m[1]] = true
	}
	return numbers, nil
}

// ReconcileResult summarizes the diff between the input PR list and the PR
// numbers present in the rendered output.
type ReconcileResult struct {
	Total       int
	Processed   int
	Unprocessed []PREntry
}

// Reconcile diffs the input entries against the set of PR numbers extracted
// from the rendered output. Unprocessed entries keep their input order.
func Reconcile(input []PREntry, released map[string]bool) ReconcileResult {
	inputNumbers := make(map[string]bool, len(input))
	for _, e := range input {
		inputNumbers[e.Number] = true
	}

	result := ReconcileResult{Total: len(inputNumbers)}
	for n := range released {
		if inputNumbers[n] {
			result.Processed++
		}
	}

	seen := make(map[string]bool)
	for _, e := range input {
		if !released[e.Number] && !seen[e.Number] {
			seen[e.Number] = true
			result.Unprocessed = append(result.Unprocessed, e)
		}
	}
	return result
}
