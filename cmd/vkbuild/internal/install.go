package internal

import (
	"github.com/spf13/cobra"
)

func newInstallCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install a configured and built tree into its output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.newSession()
			if err != nil {
				return err
			}
			o, err := c.orchestrator(s)
			if err != nil {
				return err
			}
			return o.Install(cmd.Context())
		},
	}
}
