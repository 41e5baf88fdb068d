package actions

import (
	"context"
	"strings"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/output"
)

// RebuildOptions contains options for the rebuild action
type RebuildOptions struct {
	Engine        *engine.Engine
	Splog         *output.Splog
	WorkingBranch string // empty means resolve from context
	// NoCheckout leaves the caller on their current branch instead of
	// switching to the rebuilt working branch
	NoCheckout bool
}

// RebuildAction reconstructs a working branch from its configured base and
// feature branches, preserving local commits and uncommitted changes.
func RebuildAction(ctx context.Context, opts RebuildOptions) error {
	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}

	cfg, err := opts.Engine.Store.Get(ctx, working)
	if err != nil {
		return err
	}

	result, err := opts.Engine.Rebuilder.Rebuild(ctx, cfg, engine.RebuildOptions{
		Checkout: !opts.NoCheckout,
	})
	if err != nil {
		return err
	}
	reportRebuild(opts.Splog, result)
	return nil
}

// reportRebuild prints the outcome of a successful rebuild
func reportRebuild(splog *output.Splog, result *engine.RebuildResult) {
	features := "(none)"
	if len(result.FeatureBranches) > 0 {
		styled := make([]string, len(result.FeatureBranches))
		for i, f := range result.FeatureBranches {
			styled[i] = output.FeatureBranch(f)
		}
		features = strings.Join(styled, ", ")
	}

	splog.Info("Rebuilt %s from %s",
		output.WorkingBranch(result.WorkingBranch), output.BaseBranch(result.BaseBranch))
	splog.Info("Feature branches: %s", features)
	if n := len(result.LocalCommits); n == 1 {
		splog.Info("Replayed 1 local commit")
	} else if n > 1 {
		splog.Info("Replayed %d local commits", n)
	}
	if result.StashPopError != nil {
		splog.Warn("Uncommitted changes are still stashed: %v", result.StashPopError)
		splog.Tip("Run 'git stash pop' to restore them")
	}
}
