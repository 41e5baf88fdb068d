package cli

import (
	"github.com/spf13/cobra"

	"knit.dev/knit/internal/actions"
	"knit.dev/knit/internal/runtime"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		workingBranch string
		message       string
	)

	cmd := &cobra.Command{
		Use:   "commit [file...]",
		Short: "Commit changes directly on the working branch",
		Long: `Commit changes directly on the working branch.

Commits made this way are recognized as local commits and replayed on top
of the composition whenever the knit is rebuilt. Without file arguments
all changes are staged, including untracked files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.CommitAction(cmd.Context(), actions.CommitOptions{
				Engine:        ctx.Engine,
				Repo:          ctx.Repo,
				Splog:         ctx.Splog,
				WorkingBranch: workingBranch,
				Message:       message,
				Files:         args,
			})
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&workingBranch, "working", "w", "", "Working branch of the knit to commit on (defaults to the current or only knit)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
