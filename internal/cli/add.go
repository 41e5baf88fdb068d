package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	var workingBranch string

	cmd := &cobra.Command{
		Use:   "add <branch>",
		Short: "Add a feature branch to a knit and merge it into the working branch",
		Long: `Add a feature branch to a knit and merge it into the working branch.

The branch is appended to the knit's feature list and merged with a merge
commit. If the merge conflicts, it is aborted and the configuration change
is kept; resolve the conflict by rebuilding after fixing the branches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.AddAction(cmd.Context(), actions.AddOptions{
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
