package actions

import (
	"context"
	"errors"

	"knit.dev/knit/internal/engine"
	kniterrors "knit.dev/knit/internal/errors"
	"knit.dev/knit/internal/output"
)

// AddOptions contains options for the add action
type AddOptions struct {
	Engine        *engine.Engine
	Splog         *output.Splog
	WorkingBranch string // empty means resolve from context
	Branch        string
}

// AddAction adds a feature branch to a knit and merges it into the working
// branch.
func AddAction(ctx context.Context, opts AddOptions) error {
	git := opts.Engine.Git

	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}

	if ok, err := git.BranchExists(ctx, opts.Branch); err != nil {
		return err
	} else if !ok {
		return kniterrors.NewBranchNotFoundError(opts.Branch)
	}

	if _, err := opts.Engine.Store.AddFeature(ctx, working, opts.Branch); err != nil {
		return err
	}

	if err := git.Checkout(ctx, working); err != nil {
		return err
	}
	if err := git.MergeNoFastForward(ctx, opts.Branch); err != nil {
		if errors.Is(err, kniterrors.ErrMergeConflict) {
			_ = git.MergeAbort(ctx)
		}
		return err
	}

	opts.Splog.Info("Added %s to knit %s",
		output.FeatureBranch(opts.Branch), output.WorkingBranch(working))
	return nil
}
