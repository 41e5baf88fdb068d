package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-knit",
		Short: "Knit several feature branches into one deployable working branch",
		Long: `git-knit maintains a working branch that is the composition of a base
branch plus an ordered list of feature branches, with room for commits
authored directly on the working branch.

When the base or a feature branch moves, 'git knit rebuild' reconstructs
the working branch from scratch and replays your local commits on top.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRebuildCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newRestackCmd())
	rootCmd.AddCommand(newDeleteCmd())

	return rootCmd
}
