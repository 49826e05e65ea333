// Package generator scans an Nx workspace and writes its VS Code launch
// configuration.
package generator

import "errors"

// Sentinel errors for the generator package.
var (
	// ErrCreateDir indicates the .vscode directory could not be created.
	ErrCreateDir = errors.New("generate: create .vscode directory")

	// ErrWrite indicates launch.json could not be written.
	ErrWrite = errors.New("generate: write launch.json")
)
