package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newRebuildCmd creates the rebuild command
func newRebuildCmd() *cobra.Command {
	var (
		workingBranch string
		noCheckout    bool
	)

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Reconstruct the working branch from its base and feature branches",
		Long: `Reconstruct the working branch from its base and feature branches.

The working branch is rebuilt on a temporary branch: the base is checked
out, each feature branch is merged in order, and commits authored directly
on the working branch are cherry-picked on top. Only when every step
succeeds is the working branch moved to the result. A backup of the old
tip is kept under knit/backup/ until the rebuild completes.

Uncommitted changes are stashed before the rebuild and restored after.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.RebuildAction(cmd.Context(), actions.RebuildOptions{
				Engine:        ctx.Engine,
				Splog:         ctx.Splog,
				WorkingBranch: workingBranch,
				NoCheckout:    noCheckout,
			})
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&workingBranch, "working", "w", "", "Working branch of the knit to rebuild (defaults to the current or only knit)")
	cmd.Flags().BoolVar(&noCheckout, "no-checkout", false, "Stay on the current branch instead of checking out the rebuilt working branch")

	return cmd
}
