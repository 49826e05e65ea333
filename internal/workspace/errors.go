// Package workspace locates the root of an Nx workspace and lists the
// projects found under its category directories.
package workspace

import "errors"

// Sentinel errors for the workspace package.
var (
	// ErrWorkspaceNotFound indicates no ancestor directory contains nx.json.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrInvalidRoot indicates the given workspace path is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid workspace path")

	// ErrMarkerMissing indicates the given workspace path has no nx.json.
	ErrMarkerMissing = errors.New("nx.json not found in workspace path")
)
