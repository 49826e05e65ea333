// Package cli provides the cobra command for nx-launch and wires the
// workspace, config, generator and watch packages together.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seawingai/nx/pkg/version"
)

// options holds the parsed flags of one invocation.
type options struct {
	dryRun   bool
	check    bool
	watch    bool
	noColor  bool
	logLevel string
	logFile  string
}

// NewRootCommand builds the nx-launch command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "nx-launch [workspace]",
		Short: "Generate VS Code launch.json for an Nx workspace",
		Long: `nx-launch scans an Nx workspace and writes .vscode/launch.json with a
debug configuration for every project it finds:

  apps/services/<name>   node launch running "nx serve <name>"
  apps/web/<name>        dev server and browser launches, plus a fullstack compound
  libs/<name>            node launch running the library's tests

Every web app is also paired with every service in a compound that starts
both. An existing launch.json is overwritten.

Usage patterns:
  nx-launch                   Detect the workspace from the current directory
  nx-launch /path/to/repo     Use the given workspace (must contain nx.json)

Examples:
  nx-launch --dry-run         Print the document instead of writing it
  nx-launch --check           Exit non-zero when launch.json is out of date
  nx-launch --watch           Regenerate whenever projects are added or removed`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version.GetVersion(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.SetVersionTemplate("nx-launch " + version.GetFullVersion() + "\n")

	flags := cmd.Flags()
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print launch.json to stdout without writing anything")
	flags.BoolVar(&opts.check, "check", false, "Verify launch.json is up to date and internally consistent")
	flags.BoolVar(&opts.watch, "watch", false, "Keep running and regenerate when projects change")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "Write JSON logs to this rotating file instead of stderr")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check", "watch")

	return cmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context, which ends --watch cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
