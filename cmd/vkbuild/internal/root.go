package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/internal/orchestrator"
	"github.com/goplus/vkbuild/internal/runner"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// cli holds what the commands share: parsed global flags, the logger and
// the process runner handed to every tool adapter.
type cli struct {
	opts   globalOptions
	stdout io.Writer
	stderr io.Writer
	runner runner.Runner
	logger *slog.Logger
}

type globalOptions struct {
	recipeFile string
	sourceDir  string
	outputDir  string
	generator  string
	settings   []string
	options    []string
	verbose    bool
	jsonLog    bool
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vkbuild",
		Short: "vkbuild builds the graphics engine from its recipe",
		Long: `vkbuild resolves the engine's pinned third-party libraries with conan,
configures the build tree with meson or cmake, compiles shaders, builds
and tests the engine and installs it into the build output directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.logger = logging.New(c.stderr, logging.Options{Verbose: c.opts.verbose, JSON: c.opts.jsonLog})
			cmd.SetContext(logging.WithLogger(cmd.Context(), c.logger))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.opts.recipeFile, "recipe", "", "Recipe file (default: built-in recipe)")
	flags.StringVar(&c.opts.sourceDir, "source", ".", "Project source directory")
	flags.StringVar(&c.opts.outputDir, "output", "", "Build output directory (default: <source>/build)")
	flags.StringVar(&c.opts.generator, "generator", "", "Build system: meson or cmake (default: from recipe)")
	flags.StringArrayVarP(&c.opts.settings, "setting", "s", nil, "Setting as key=value (os, compiler, build_type, arch, compiler.*)")
	flags.StringArrayVarP(&c.opts.options, "option", "o", nil, "Option as key=value; true/false are booleans")
	flags.BoolVarP(&c.opts.verbose, "verbose", "v", false, "Show tool output and debug logs")
	flags.BoolVar(&c.opts.jsonLog, "json-log", false, "Log as JSON")

	rootCmd.AddCommand(
		newRunCmd(c),
		newInstallCmd(c),
		newDepsCmd(c),
		newStatusCmd(c),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, args, stdout, stderr, runner.Default)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, r runner.Runner) int {
	c := &cli{stdout: stdout, stderr: stderr, runner: r}
	rootCmd := newRootCmd(c)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	c.report(ctx, err)
	return 1
}

// report prints a failed invocation: the failing tool's output verbatim,
// then the error chain with its metadata.
func (c *cli) report(ctx context.Context, err error) {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Output) > 0 {
		_, _ = c.stderr.Write(exitErr.Output)
		if exitErr.Output[len(exitErr.Output)-1] != '\n' {
			_, _ = fmt.Fprintln(c.stderr)
		}
	}

	logger := c.logger
	if logger == nil {
		// flag parsing failed before the logger was set up
		logger = logging.New(c.stderr, logging.Options{})
	}
	var phaseErr *orchestrator.PhaseError
	if errors.As(err, &phaseErr) {
		logger = logger.With("phase", string(phaseErr.Phase))
	}
	zerr.Log(ctx, logger, err)
}
