package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newRemoveCmd creates the remove command
func newRemoveCmd() *cobra.Command {
	var workingBranch string

	cmd := &cobra.Command{
		Use:   "remove <branch>",
		Short: "Remove a feature branch from a knit and rebuild without it",
		Long: `Remove a feature branch from a knit and rebuild without it.

Because a merge cannot be subtracted, removal always triggers a full
rebuild of the working branch from the remaining composition. Local
commits survive the rebuild.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.RemoveAction(cmd.Context(), actions.RemoveOptions{
				Engine:        ctx.Engine,
				Splog:         ctx.Splog,
				WorkingBranch: workingBranch,
				Branch:        args[0],
			})
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&workingBranch, "working", "w", "", "Working branch of the knit to modify (defaults to the current or only knit)")

	return cmd
}
