package notes

// Batch splits entries into contiguous, non-overlapping groups of at most
// size. The last batch may be smaller. Order is preserved and nothing is
// filtered; concatenating the result reproduces the input.
func Batch(entries []PREntry, size int) [][]PREntry {
	if size <= 0 {
		size = 1
	}
	var batches [][]PREntry
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, entries[start:end])
	}
	return batches
}
