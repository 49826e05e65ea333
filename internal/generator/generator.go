package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/seawingai/nx/internal/config"
	"github.com/seawingai/nx/internal/defs"
	"github.com/seawingai/nx/internal/launch"
	"github.com/seawingai/nx/internal/ui"
	"github.com/seawingai/nx/internal/workspace"
)

// Reporter receives human-readable progress.
type Reporter interface {
	Stage(title string)
	Item(format string, args ...any)
	Info(format string, args ...any)
	Detail(format string, args ...any)
	Success(format string, args ...any)
	Error(format string, args ...any)
}

// Generator produces launch.json for one workspace. It holds no state
// between runs; every call rescans the workspace.
type Generator struct {
	root     string
	cfg      *config.Config
	scanner  *workspace.Scanner
	reporter Reporter
	logger   *slog.Logger
	dryRun   bool
	out      io.Writer
}

// Option configures a Generator.
type Option func(*Generator)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(g *Generator) {
		if r != nil {
			g.reporter = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithScanner replaces the scanner built from the configuration.
func WithScanner(s *workspace.Scanner) Option {
	return func(g *Generator) { g.scanner = s }
}

// WithDryRun makes Generate write the document to w instead of disk.
func WithDryRun(w io.Writer) Option {
	return func(g *Generator) {
		g.dryRun = true
		g.out = w
	}
}

// Result describes one generation run.
type Result struct {
	Path      string
	Inventory launch.Inventory
	Document  launch.Document
	Stats     launch.Stats
	Data      []byte
	Written   bool
}

// New creates a Generator for the workspace at root. A nil cfg uses defaults.
func New(root string, cfg *config.Config, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	g := &Generator{
		root:     root,
		cfg:      cfg,
		reporter: ui.Discard(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.scanner == nil {
		scanOpts := []workspace.ScanOption{
			workspace.WithLogger(g.logger.With("module", "workspace")),
			workspace.WithSkipHidden(cfg.Scan.SkipHidden),
		}
		if cfg.Scan.RespectGitignore {
			scanOpts = append(scanOpts, workspace.WithGitIgnore(root))
		}
		g.scanner = workspace.NewScanner(scanOpts...)
	}
	g.logger = g.logger.With("module", "generator")
	return g
}

// Root returns the workspace root.
func (g *Generator) Root() string { return g.root }

// VSCodeDir returns the editor configuration directory.
func (g *Generator) VSCodeDir() string { return filepath.Join(g.root, defs.VSCodeDir) }

// LaunchPath returns the path launch.json is written to.
func (g *Generator) LaunchPath() string { return filepath.Join(g.VSCodeDir(), defs.LaunchJSON) }

// WatchDirs returns the category parents whose children become entries.
func (g *Generator) WatchDirs() []string {
	services, web, libs := g.cfg.CategoryDirs(g.root)
	return []string{services, web, libs}
}

// Generate scans the workspace, builds the document and overwrites
// launch.json. The document is fully built before anything is written.
// Failures are reported and returned.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	res, err := g.generate(ctx)
	if err != nil {
		g.reporter.Error("Error generating launch.json: %v", err)
		return nil, err
	}
	return res, nil
}

func (g *Generator) generate(ctx context.Context) (*Result, error) {
	g.reporter.Info("Starting launch.json generation...")
	g.reporter.Info("Workspace folder: %s", g.root)

	if !g.dryRun {
		if err := g.ensureVSCodeDir(); err != nil {
			return nil, err
		}
	}

	res, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	if g.dryRun {
		if _, err := fmt.Fprintf(g.out, "%s\n", res.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrite, err)
		}
		return res, nil
	}

	g.reporter.Stage("Writing launch.json...")
	if err := os.WriteFile(res.Path, res.Data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	res.Written = true
	g.logger.Info("launch.json written", "path", res.Path, "bytes", len(res.Data))

	g.reporter.Success("Successfully generated launch.json with:")
	g.reporter.Detail("%d configurations", res.Stats.Configurations())
	g.reporter.Detail("%d compounds", res.Stats.Compounds())
	g.reporter.Detail("File location: %s", res.Path)
	return res, nil
}

// Build scans the workspace and encodes the document without touching disk.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	inv, err := g.Scan(ctx)
	if err != nil {
		return nil, err
	}

	doc := launch.Assemble(inv, g.cfg.Templates())
	data, err := launch.Encode(doc)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:      g.LaunchPath(),
		Inventory: inv,
		Document:  doc,
		Stats:     doc.Stats(),
		Data:      data,
	}, nil
}

// Scan lists services, web apps and libraries, in that order, reporting
// each discovery. Scan failures degrade to empty categories.
func (g *Generator) Scan(ctx context.Context) (launch.Inventory, error) {
	servicesDir, webDir, libsDir := g.cfg.CategoryDirs(g.root)
	var inv launch.Inventory

	if err := ctx.Err(); err != nil {
		return inv, err
	}
	g.reporter.Stage("Scanning for services...")
	inv.Services = g.scanner.List(servicesDir)
	g.reporter.Info("Found %d services: %s", len(inv.Services), strings.Join(inv.Services, ", "))
	for _, service := range inv.Services {
		g.reporter.Item("Adding service configuration: %s", service)
	}

	if err := ctx.Err(); err != nil {
		return inv, err
	}
	g.reporter.Stage("Scanning for web apps...")
	inv.WebApps = g.scanner.List(webDir)
	g.reporter.Info("Found %d web apps: %s", len(inv.WebApps), strings.Join(inv.WebApps, ", "))
	for _, web := range inv.WebApps {
		g.reporter.Item("Adding web configurations: %s", web)
		g.reporter.Item("Adding fullstack compound: %s", web)
	}

	if err := ctx.Err(); err != nil {
		return inv, err
	}
	g.reporter.Stage("Scanning for libraries...")
	inv.Libraries = g.scanner.List(libsDir)
	g.reporter.Info("Found %d libraries: %s", len(inv.Libraries), strings.Join(inv.Libraries, ", "))
	for _, lib := range inv.Libraries {
		g.reporter.Item("Adding library configuration: %s", lib)
	}

	g.reporter.Stage("Creating web + service compounds...")
	for _, web := range inv.WebApps {
		for _, service := range inv.Services {
			g.reporter.Item("Adding web-service compound: %s + %s", web, service)
		}
	}

	g.logger.Debug("workspace scanned",
		"services", len(inv.Services), "web_apps", len(inv.WebApps), "libraries", len(inv.Libraries))
	return inv, nil
}

// ensureVSCodeDir creates the .vscode directory when it does not exist.
func (g *Generator) ensureVSCodeDir() error {
	dir := g.VSCodeDir()
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrCreateDir, err)
	}

	g.reporter.Info("Creating .vscode folder at: %s", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	return nil
}
