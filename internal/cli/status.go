package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var workingBranch string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the composition of a knit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.StatusAction(cmd.Context(), actions.StatusOptions{
				Engine:        ctx.Engine,
				Splog:         ctx.Splog,
				WorkingBranch: workingBranch,
			})
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&workingBranch, "working", "w", "", "Working branch of the knit to show (defaults to the current or only knit)")

	return cmd
}
