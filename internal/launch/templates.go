package launch

import (
	"path"

	"github.com/seawingai/nx/internal/defs"
)

// VS Code variables substituted by the editor at launch time.
const (
	WorkspaceFolder = "${workspaceFolder}"
	WebRoot         = "${webRoot}"
)

const (
	nxProgram              = WorkspaceFolder + "/node_modules/nx/bin/nx.js"
	consoleIntegrated      = "integratedTerminal"
	internalConsoleNever   = "neverOpen"
	testTimeoutUnlimited   = "--testTimeout=9999999"
	skipNxCache            = "--skip-nx-cache"
	defaultClientURL       = "http://localhost:3000"
	defaultPackageManager  = "pnpm"
	defaultTestPattern     = "example.spec.ts"
	webpackScheme          = "webpack://"
	outFilesNodeModulesNeg = "!**/node_modules/**"
)

// Templates turns project names into launch entries. The zero value is not
// useful; start from DefaultTemplates.
type Templates struct {
	// WebDir is the slash-separated web apps parent relative to the workspace root.
	WebDir         string
	ClientURL      string
	PackageManager string
	TestPattern    string
}

// DefaultTemplates returns the templates matching a stock Nx layout.
func DefaultTemplates() Templates {
	return Templates{
		WebDir:         defs.WebDir,
		ClientURL:      defaultClientURL,
		PackageManager: defaultPackageManager,
		TestPattern:    defaultTestPattern,
	}
}

// ServerName is the entry name of a web app's dev server.
func ServerName(web string) string { return web + " (server)" }

// ClientName is the entry name of a web app's browser session.
func ClientName(web string) string { return web + " (client)" }

func skipFiles() []string {
	return []string{"<node_internals>/**", "**/node_modules/**"}
}

// Service builds the entry that serves a backend service through nx.
func (t Templates) Service(name string) ServiceEntry {
	return ServiceEntry{
		Type:                   "node",
		Request:                "launch",
		Name:                   name,
		Program:                nxProgram,
		Args:                   []string{"serve", name},
		Cwd:                    WorkspaceFolder,
		SkipFiles:              skipFiles(),
		Console:                consoleIntegrated,
		InternalConsoleOptions: internalConsoleNever,
		SmartStep:              true,
	}
}

// WebServer builds the entry that runs a web app's dev target.
func (t Templates) WebServer(name string) WebServerEntry {
	return WebServerEntry{
		Type:                   "node",
		Request:                "launch",
		Name:                   ServerName(name),
		RuntimeExecutable:      t.PackageManager,
		RuntimeArgs:            []string{"exec", "nx", "run", name + ":dev"},
		Console:                consoleIntegrated,
		InternalConsoleOptions: internalConsoleNever,
		SkipFiles:              skipFiles(),
		SourceMaps:             true,
		OutFiles: []string{
			path.Join(WorkspaceFolder, "dist", t.WebDir, name) + "/**/*.(m|c|)js",
			outFilesNodeModulesNeg,
		},
		AutoAttachChildProcesses: true,
		SmartStep:                true,
	}
}

// WebClient builds the browser entry for a web app, with source map
// rewrites from webpack URLs back to the app's source tree.
func (t Templates) WebClient(name string) WebClientEntry {
	return WebClientEntry{
		Type:       "chrome",
		Request:    "launch",
		Name:       ClientName(name),
		URL:        t.ClientURL,
		WebRoot:    path.Join(WorkspaceFolder, t.WebDir, name),
		SmartStep:  true,
		SourceMaps: true,
		SourceMapPathOverrides: PathOverrides{
			{From: webpackScheme + name + "/*", To: WebRoot + "/src/*"},
			{From: webpackScheme + name + "/./src/*", To: WebRoot + "/src/*"},
			{From: webpackScheme + "/./*", To: WebRoot + "/*"},
			{From: webpackScheme + "/src/*", To: WebRoot + "/src/*"},
			{From: webpackScheme + "/*", To: "*"},
		},
	}
}

// LibraryTest builds the entry that debugs a library's tests with no
// timeout and the nx cache bypassed.
func (t Templates) LibraryTest(name string) LibraryTestEntry {
	return LibraryTestEntry{
		Type:    "node",
		Request: "launch",
		Name:    name,
		Program: nxProgram,
		Args: []string{
			"test",
			name,
			"--testPathPattern=" + t.TestPattern,
			testTimeoutUnlimited,
			skipNxCache,
		},
		Cwd:                    WorkspaceFolder,
		SkipFiles:              skipFiles(),
		Console:                consoleIntegrated,
		InternalConsoleOptions: internalConsoleNever,
		SmartStep:              true,
	}
}

// FullstackCompound starts a web app's server and client together.
func FullstackCompound(web string) Compound {
	return Compound{
		Name:           web + " (fullstack)",
		Configurations: []string{ServerName(web), ClientName(web)},
		StopAll:        true,
		Kind:           CompoundFullstack,
	}
}

// ServiceCompound starts a web app's server and client with one backend service.
func ServiceCompound(web, service string) Compound {
	return Compound{
		Name:           web + " (" + service + ")",
		Configurations: []string{ServerName(web), ClientName(web), service},
		StopAll:        true,
		Kind:           CompoundService,
	}
}
