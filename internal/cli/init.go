package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <working> <base> [feature...]",
		Short: "Create a new knit: a working branch composed from a base and feature branches",
		Long: `Create a new knit: a working branch composed from a base and feature branches.

The working branch is created from the base branch and each feature branch
is merged into it in order. The composition is stored in git config so it
survives across invocations and can be rebuilt at any time.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.InitAction(cmd.Context(), actions.InitOptions{
				Engine:          ctx.Engine,
				Splog:           ctx.Splog,
				WorkingBranch:   args[0],
				BaseBranch:      args[1],
				FeatureBranches: args[2:],
				Force:           force,
			})
		},
	}

	// Add flags
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing knit configuration for the working branch")

	return cmd
}
