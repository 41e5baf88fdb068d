package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newRestackCmd creates the restack command
func newRestackCmd() *cobra.Command {
	var workingBranch string

	cmd := &cobra.Command{
		Use:   "restack",
		Short: "Rebase the knit's feature branches using git-spice",
		Long: `Rebase the knit's feature branches using git-spice.

Runs 'gs stack restack' when git-spice is installed. If git-spice is not
available the feature branches are left untouched and must be rebased
manually before the next rebuild.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.RestackAction(cmd.Context(), actions.RestackOptions{
				Engine:        ctx.Engine,
				Splog:         ctx.Splog,
				RepoRoot:      ctx.RepoRoot,
				WorkingBranch: workingBranch,
			})
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&workingBranch, "working", "w", "", "Working branch of the knit to restack (defaults to the current or only knit)")

	return cmd
}
