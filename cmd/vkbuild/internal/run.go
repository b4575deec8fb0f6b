package internal

import (
	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newRunCmd(c *cli) *cobra.Command {
	var flags orchestrator.Flags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the requested build phases",
		Long: `Run executes configure, build, test and install, in that order, for the
phases selected by flags. Without any phase flag all four run.

Requesting --test always rebuilds the engine and its test target first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := c.newSession()
			if err != nil {
				return err
			}
			o, err := c.orchestrator(s)
			if err != nil {
				return err
			}

			requested := flags
			if !requested.Any() {
				requested = orchestrator.AllPhases()
			}
			report, err := o.Run(ctx, requested)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info("done", "phases", requested.String(), "output", s.outputDir,
				"artifacts", len(report.Artifacts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.Configure, "configure", false, "Resolve dependencies and configure the build tree")
	cmd.Flags().BoolVar(&flags.Build, "build", false, "Compile shaders and build the engine")
	cmd.Flags().BoolVar(&flags.Test, "test", false, "Build the engine and its tests, then run the tests")
	cmd.Flags().BoolVar(&flags.Install, "install", false, "Install into the build output directory")
	return cmd
}
