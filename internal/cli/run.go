package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/seawingai/nx/internal/config"
	"github.com/seawingai/nx/internal/generator"
	"github.com/seawingai/nx/internal/logging"
	"github.com/seawingai/nx/internal/ui"
	"github.com/seawingai/nx/internal/watch"
	"github.com/seawingai/nx/internal/workspace"
)

func run(cmd *cobra.Command, args []string, opts *options) error {
	logger, closer, err := logging.New(logging.Options{
		Level:  opts.logLevel,
		File:   opts.logFile,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	loader := config.NewLoader(logger)
	cfg, err := loader.Load(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Debug("configuration loaded", "root", root, "sources", loader.Sources())

	// Keep stdout clean for the document in dry-run mode.
	reportTo := cmd.OutOrStdout()
	if opts.dryRun {
		reportTo = cmd.ErrOrStderr()
	}
	reporter := ui.NewReporter(reportTo, opts.noColor)

	genOpts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithReporter(reporter),
	}
	if opts.dryRun {
		genOpts = append(genOpts, generator.WithDryRun(cmd.OutOrStdout()))
	}
	gen := generator.New(root, cfg, genOpts...)

	ctx := cmd.Context()
	switch {
	case opts.check:
		return runCheck(ctx, gen, reporter)
	case opts.watch:
		return runWatch(ctx, gen, reporter, logger)
	default:
		_, err := gen.Generate(ctx)
		return err
	}
}

// resolveRoot auto-detects the workspace when no path is given. An
// explicit path must exist and contain nx.json.
func resolveRoot(args []string) (string, error) {
	if len(args) == 0 {
		return workspace.Resolve("")
	}

	root, err := workspace.Resolve(args[0])
	if err != nil {
		return "", err
	}
	if err := workspace.Validate(root); err != nil {
		return "", err
	}
	return root, nil
}

// runCheck compares the generated document with launch.json on disk and
// validates compound references. Nothing is written.
func runCheck(ctx context.Context, gen *generator.Generator, reporter *ui.Reporter) error {
	res, err := gen.Build(ctx)
	if err != nil {
		return err
	}

	if err := res.Document.Validate(); err != nil {
		reporter.Error("launch configuration is inconsistent: %v", err)
		return fmt.Errorf("check: %w", err)
	}

	current, err := os.ReadFile(res.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			reporter.Error("%s does not exist; run nx-launch to create it", res.Path)
			return fmt.Errorf("check: %w: %s missing", ErrOutOfDate, res.Path)
		}
		return fmt.Errorf("check: read %s: %w", res.Path, err)
	}
	if !bytes.Equal(current, res.Data) {
		reporter.Error("%s is out of date; run nx-launch to regenerate it", res.Path)
		return fmt.Errorf("check: %w", ErrOutOfDate)
	}

	reporter.Success("%s is up to date (%d configurations, %d compounds)",
		res.Path, res.Stats.Configurations(), res.Stats.Compounds())
	return nil
}

// runWatch generates once, then regenerates on layout changes until ctx
// is cancelled.
func runWatch(ctx context.Context, gen *generator.Generator, reporter *ui.Reporter, logger *slog.Logger) error {
	if _, err := gen.Generate(ctx); err != nil {
		return err
	}

	w := watch.New(gen.Root(), gen.WatchDirs(), func(ctx context.Context) error {
		_, err := gen.Generate(ctx)
		return err
	}, watch.WithLogger(logger))
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	reporter.Info("")
	reporter.Info("Watching %s for project changes (Ctrl+C to stop)", gen.Root())
	<-ctx.Done()
	reporter.Info("Stopped watching after %d regenerations", w.Runs())
	return nil
}
