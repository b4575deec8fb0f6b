package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDepsCmd(c *cli) *cobra.Command {
	var declared bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the resolved dependency set",
		Long: `Deps prints one name/version per line, in declaration order, with
overrides applied. With --declared it prints every declaration instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.loadRecipe()
			if err != nil {
				return err
			}
			set, err := r.Dependencies()
			if err != nil {
				return err
			}
			specs := set.Declared()
			if !declared {
				specs = set.ResolveAll(cmd.Context())
			}
			for _, spec := range specs {
				if _, err := fmt.Fprintln(c.stdout, spec); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&declared, "declared", false, "Print declarations as written, before overrides apply")
	return cmd
}
