package actions

import (
	"context"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/output"
)

// RemoveOptions contains options for the remove action
type RemoveOptions struct {
	Engine        *engine.Engine
	Splog         *output.Splog
	WorkingBranch string // empty means resolve from context
	Branch        string
}

// RemoveAction removes a feature branch from a knit and rebuilds the
// working branch so the branch's content is gone.
func RemoveAction(ctx context.Context, opts RemoveOptions) error {
	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}

	cfg, err := opts.Engine.Store.RemoveFeature(ctx, working, opts.Branch)
	if err != nil {
		return err
	}

	opts.Splog.Info("Removed %s from knit %s",
		output.FeatureBranch(opts.Branch), output.WorkingBranch(working))

	result, err := opts.Engine.Rebuilder.Rebuild(ctx, cfg, engine.RebuildOptions{Checkout: true})
	if err != nil {
		return err
	}
	reportRebuild(opts.Splog, result)
	return nil
}
