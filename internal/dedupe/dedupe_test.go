package dedupe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"

	"github.com/FindHao/relgen/internal/logging"
)

func discard() logging.Logger {
	return logging.New(logr.Discard())
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "release.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return string(data)
}

func TestCleanFile_DropsCategoryAndDuplicateTags(t *testing.T) {
	path := writeTemp(t, "## Bug Fixes:\n- [Bug Fixes][inductor][Inductor] Fixes a crash (#123).\n")

	changed, err := CleanFile(path, discard())
	if err != nil {
		t.Fatalf("CleanFile: %v", err)
	}
	if !changed {
		t.Fatalf("expected file to change")
	}

	got := readBack(t, path)
	want := "## Bug Fixes:\n- [inductor] Fixes a crash (#123).\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestCleanFile_FirstCasingWins(t *testing.T) {
	path := writeTemp(t, "## Improvements:\n- [AOTI][aoti][Inductor] Improves layout (#5).\n")

	if _, err := CleanFile(path, discard()); err != nil {
		t.Fatalf("CleanFile: %v", err)
	}

	got := readBack(t, path)
	want := "## Improvements:\n- [AOTI] [Inductor] Improves layout (#5).\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestCleanFile_Idempotent(t *testing.T) {
	path := writeTemp(t, "## Performance:\n- [performance][cuda][CUDA] Speeds up kernels (#7).\n\nprose line\n")

	if _, err := CleanFile(path, discard()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := readBack(t, path)

	changed, err := CleanFile(path, discard())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if changed {
		t.Fatalf("second run must be a no-op")
	}
	if got := readBack(t, path); got != first {
		t.Fatalf("second run changed the file:\n%q\nvs\n%q", got, first)
	}
}

func TestCleanFile_NonBulletLinesUntouched(t *testing.T) {
	content := "# Release 2.6\n\nSome prose.\n## Documentation:\n- [docs] Updates docs (#42).\n"
	path := writeTemp(t, content)

	if _, err := CleanFile(path, discard()); err != nil {
		t.Fatalf("CleanFile: %v", err)
	}

	got := readBack(t, path)
	if got != content {
		t.Fatalf("already-clean file should be byte-identical:\n%q\nvs\n%q", got, content)
	}
}

func TestCleanFile_MissingFile(t *testing.T) {
	if _, err := CleanFile(filepath.Join(t.TempDir(), "nope.md"), discard()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
