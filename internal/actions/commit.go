package actions

import (
	"context"
	"fmt"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/git"
	"knit.dev/knit/internal/output"
)

// CommitOptions contains options for the commit action
type CommitOptions struct {
	Engine        *engine.Engine
	Repo          *git.Repo
	Splog         *output.Splog
	WorkingBranch string // empty means resolve from context
	Message       string
	// Files to stage; empty stages everything
	Files []string
}

// CommitAction commits changes on the working branch. The commit stays
// local to the knit until it is routed back to a source branch.
func CommitAction(ctx context.Context, opts CommitOptions) error {
	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}
	if _, err := opts.Engine.Store.Get(ctx, working); err != nil {
		return err
	}

	current, err := opts.Engine.Git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current != working {
		return fmt.Errorf("must be on working branch %s, currently on %s", working, current)
	}

	if len(opts.Files) == 0 {
		if err := opts.Repo.StageAll(ctx); err != nil {
			return err
		}
	} else if err := opts.Repo.StageFiles(ctx, opts.Files); err != nil {
		return err
	}

	if err := opts.Repo.Commit(ctx, opts.Message); err != nil {
		return err
	}

	opts.Splog.Info("Committed to %s", output.WorkingBranch(working))
	opts.Splog.Tip("This commit survives rebuilds; run 'git knit restack' to rebase feature branches")
	return nil
}
