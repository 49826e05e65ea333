package workspace

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/seawingai/nx/internal/defs"
)

// Scanner lists project directories under a category parent.
// Scanning is best-effort: read failures degrade to an empty result.
type Scanner struct {
	logger     *slog.Logger
	root       string
	ignore     *ignore.GitIgnore
	skipHidden bool
}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithLogger sets the logger used to report degraded scans.
func WithLogger(l *slog.Logger) ScanOption {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGitIgnore makes the scanner skip directories matched by the
// .gitignore at root. A missing or unreadable .gitignore disables matching.
func WithGitIgnore(root string) ScanOption {
	return func(s *Scanner) {
		path := filepath.Join(root, defs.GitIgnore)
		gi, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("failed to read ignore rules", "path", path, "error", err)
			}
			return
		}
		s.root = root
		s.ignore = gi
	}
}

// WithSkipHidden makes the scanner skip names starting with a dot.
func WithSkipHidden(skip bool) ScanOption {
	return func(s *Scanner) { s.skipHidden = skip }
}

// NewScanner creates a Scanner. Options are applied in order, so
// WithLogger should precede WithGitIgnore when both are given.
func NewScanner(opts ...ScanOption) *Scanner {
	s := &Scanner{logger: slog.Default().With("module", "workspace")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the names of the immediate subdirectories of dir, sorted by
// name. A missing dir yields an empty slice; any other read error is logged
// and also yields an empty slice.
func (s *Scanner) List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("directory does not exist", "path", dir)
		} else {
			s.logger.Warn("failed to read directory", "path", dir, "error", err)
		}
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if s.skipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if s.ignored(filepath.Join(dir, name)) {
			s.logger.Debug("skipping ignored directory", "path", filepath.Join(dir, name))
			continue
		}
		names = append(names, name)
	}
	return names
}

func (s *Scanner) ignored(path string) bool {
	if s.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	return s.ignore.MatchesPath(rel) || s.ignore.MatchesPath(rel+"/")
}
