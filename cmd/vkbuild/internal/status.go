package internal

import (
	"fmt"
	"time"

	"github.com/goplus/vkbuild/internal/deps"
	"github.com/goplus/vkbuild/internal/state"
	"github.com/spf13/cobra"
)

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last configure and whether the recipe changed since",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.newSession()
			if err != nil {
				return err
			}
			st, err := s.store.Load()
			if state.IsNotExist(err) {
				_, err = fmt.Fprintf(c.stdout, "%s: not configured\n", s.outputDir)
				return err
			}
			if err != nil {
				return err
			}

			o, err := c.orchestrator(s)
			if err != nil {
				return err
			}
			set, err := s.recipe.Dependencies()
			if err != nil {
				return err
			}
			defs, err := o.Definitions()
			if err != nil {
				return err
			}
			mods := deps.Modules(set.ResolveAll(cmd.Context()))

			verdict := "up to date"
			if st.Stale(mods, defs) {
				verdict = "stale, run `vkbuild run --configure`"
			}
			_, err = fmt.Fprintf(c.stdout,
				"output:       %s\nconfigured:   %s\nsettings:     %s\ndependencies: %d\ndigest:       %s\nstatus:       %s\n",
				s.outputDir,
				st.ConfiguredAt.Local().Format(time.DateTime),
				st.Settings.Combination(),
				len(st.Dependencies),
				st.Digest,
				verdict,
			)
			return err
		},
	}
}
