package defs

// Common file and directory names used across the project.
const (
	// NxJSON marks the root of an Nx workspace.
	NxJSON = "nx.json"

	// VSCodeDir is the editor configuration directory under the workspace root.
	VSCodeDir = ".vscode"

	// LaunchJSON is the debug configuration file written into VSCodeDir.
	LaunchJSON = "launch.json"

	// ConfigYAML is the optional generator configuration file at the workspace root.
	ConfigYAML = ".nx-launch.yaml"

	// DotEnv holds environment overrides at the workspace root.
	DotEnv = ".env"

	// GitIgnore is consulted when scan.respect_gitignore is enabled.
	GitIgnore = ".gitignore"
)

// Default category parents, relative to the workspace root and slash-separated.
const (
	ServicesDir = "apps/services"
	WebDir      = "apps/web"
	LibsDir     = "libs"
)
