package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	var workingBranch string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a knit's configuration (the branch itself is kept)",
		Long: `Delete a knit's configuration.

Only the stored composition is removed; the working branch and its
history are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.DeleteAction(cmd.Context(), actions.DeleteOptions{
				Engine:        ctx.Engine,
				Splog:         ctx.Splog,
				WorkingBranch: workingBranch,
			})
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&workingBranch, "working", "w", "", "Working branch of the knit to delete (defaults to the current or only knit)")

	return cmd
}
