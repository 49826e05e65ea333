package workspace

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestScannerList_DirectoriesOnly(t *testing.T) {
	root := t.TempDir()
	parent := mkDir(t, root, "apps", "services")
	mkDir(t, parent, "billing")
	mkDir(t, parent, "auth")
	writeFile(t, filepath.Join(parent, "README.md"), "not a project")

	got := NewScanner().List(parent)

	want := []string{"auth", "billing"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerList_MissingDirectory(t *testing.T) {
	var buf bytes.Buffer
	s := NewScanner(WithLogger(bufferLogger(&buf)))

	got := s.List(filepath.Join(t.TempDir(), "apps", "services"))

	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", got)
	}
	if !strings.Contains(buf.String(), "directory does not exist") {
		t.Errorf("expected missing directory to be logged, got %q", buf.String())
	}
}

func TestScannerList_ReadErrorDegradesToEmpty(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "libs")
	writeFile(t, file, "a file where a directory is expected")

	var buf bytes.Buffer
	got := NewScanner(WithLogger(bufferLogger(&buf))).List(file)

	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected a warning to be logged, got %q", buf.String())
	}
}

func TestScannerList_SkipHidden(t *testing.T) {
	parent := mkDir(t, t.TempDir(), "libs")
	mkDir(t, parent, ".cache")
	mkDir(t, parent, "ui")

	if got := NewScanner().List(parent); len(got) != 2 {
		t.Errorf("List() without skip = %v, want 2 entries", got)
	}

	got := NewScanner(WithSkipHidden(true)).List(parent)
	if diff := cmp.Diff([]string{"ui"}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerList_GitIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "legacy\n")
	parent := mkDir(t, root, "apps", "web")
	mkDir(t, parent, "legacy")
	mkDir(t, parent, "site")

	got := NewScanner(WithGitIgnore(root)).List(parent)

	if diff := cmp.Diff([]string{"site"}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerList_GitIgnoreMissingFile(t *testing.T) {
	root := t.TempDir()
	parent := mkDir(t, root, "libs")
	mkDir(t, parent, "ui")

	got := NewScanner(WithGitIgnore(root)).List(parent)

	if diff := cmp.Diff([]string{"ui"}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}
