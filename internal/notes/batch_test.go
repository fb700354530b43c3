package notes

import "testing"

func TestBatch_LosslessPartition(t *testing.T) {
	entries := make([]PREntry, 12)
	for i := range entries {
		entries[i] = PREntry{Number: string(rune('0' + i))}
	}

	batches := Batch(entries, 5)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 5 || len(batches[1]) != 5 || len(batches[2]) != 2 {
		t.Fatalf("unexpected batch sizes: %d %d %d", len(batches[0]), len(batches[1]), len(batches[2]))
	}

	var flat []PREntry
	for _, b := range batches {
		flat = append(flat, b...)
	}
	for i := range entries {
		if flat[i].Number != entries[i].Number {
			t.Fatalf("order not preserved at index %d", i)
		}
	}
}

func TestBatch_Empty(t *testing.T) {
	if batches := Batch(nil, 5); len(batches) != 0 {
		t.Fatalf("expected no batches, got %d", len(batches))
	}
}

func TestBatch_NonPositiveSize(t *testing.T) {
	batches := Batch([]PREntry{{Number: "1"}, {Number: "2"}}, 0)
	if len(batches) != 2 {
		t.Fatalf("expected size to fall back to 1, got %d batches", len(batches))
	}
}
