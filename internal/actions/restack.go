package actions

import (
	"context"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/output"
	"knit.dev/knit/internal/spice"
)

// RestackOptions contains options for the restack action
type RestackOptions struct {
	Engine        *engine.Engine
	Splog         *output.Splog
	RepoRoot      string
	WorkingBranch string // empty means resolve from context
}

// RestackAction rebases the feature branches of a knit using git-spice when
// it is installed. Without git-spice the branches have to be rebased by hand.
func RestackAction(ctx context.Context, opts RestackOptions) error {
	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}
	cfg, err := opts.Engine.Store.Get(ctx, working)
	if err != nil {
		return err
	}
	if len(cfg.FeatureBranches) == 0 {
		opts.Splog.Info("Knit %s has no feature branches to restack", output.WorkingBranch(working))
		return nil
	}

	detector := spice.NewDetector(opts.RepoRoot)
	ran, err := detector.RestackIfAvailable(ctx)
	if err != nil {
		return err
	}
	if !ran {
		opts.Splog.Warn("git-spice is not available; feature branches were not restacked")
		opts.Splog.Tip("Install git-spice or rebase the feature branches manually, then run 'git knit rebuild'")
		return nil
	}

	opts.Splog.Info("Restacked feature branches with git-spice")
	opts.Splog.Tip("Run 'git knit rebuild' to pick up the restacked branches")
	return nil
}
