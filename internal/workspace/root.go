package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/seawingai/nx/internal/defs"
)

const remediation = `Run nx-launch from within an Nx workspace or pass the workspace folder:
  nx-launch /path/to/workspace`

// Resolve returns the workspace root. A non-empty explicit path is used
// as-is (made absolute, not checked); otherwise the root is discovered by
// walking up from the current working directory.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path: %w", err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return FindRoot(cwd)
}

// FindRoot locates the workspace root by searching for nx.json.
// It starts at start and traverses upward until it finds the marker file.
// Returns the absolute path of the first directory containing it.
func FindRoot(start string) (string, error) {
	absDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if HasMarker(absDir) {
			return absDir, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("%w (%s not found in %s or any parent directory)\n%s",
				ErrWorkspaceNotFound, defs.NxJSON, start, remediation)
		}
		absDir = parent
	}
}

// Validate checks an explicitly supplied workspace path: it must exist,
// be a directory and contain nx.json.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, path)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, path)
	}
	if !HasMarker(path) {
		return fmt.Errorf("%w: %s", ErrMarkerMissing, filepath.Join(path, defs.NxJSON))
	}
	return nil
}

// HasMarker reports whether dir contains nx.json.
func HasMarker(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, defs.NxJSON))
	return err == nil
}
