package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knit.dev/knit/internal/engine"
	kniterrors "knit.dev/knit/internal/errors"
	"knit.dev/knit/internal/output"
)

// InitOptions contains options for the init action
type InitOptions struct {
	Engine          *engine.Engine
	Splog           *output.Splog
	WorkingBranch   string
	BaseBranch      string
	FeatureBranches []string
	// Force overwrites an existing knit configuration
	Force bool
}

// InitAction configures a new knit: it persists the configuration, creates
// the working branch from the base and merges every feature branch into it.
func InitAction(ctx context.Context, opts InitOptions) error {
	git := opts.Engine.Git

	cfg, err := engine.NewKnitConfig(opts.WorkingBranch, opts.BaseBranch, opts.FeatureBranches)
	if err != nil {
		return err
	}

	if ok, err := git.BranchExists(ctx, opts.BaseBranch); err != nil {
		return err
	} else if !ok {
		return kniterrors.NewBranchNotFoundError(opts.BaseBranch)
	}
	for _, feature := range opts.FeatureBranches {
		if ok, err := git.BranchExists(ctx, feature); err != nil {
			return err
		} else if !ok {
			return kniterrors.NewBranchNotFoundError(feature)
		}
	}

	if current, err := git.CurrentBranch(ctx); err == nil && current == opts.WorkingBranch {
		return fmt.Errorf("cannot initialize knit while on branch %s: checkout another branch first", opts.WorkingBranch)
	}

	// Fail closed before any mutation when a knit already exists.
	if err := opts.Engine.Store.Init(ctx, cfg, opts.Force); err != nil {
		return err
	}

	workingExists, err := git.BranchExists(ctx, opts.WorkingBranch)
	if err != nil {
		return err
	}
	if workingExists {
		// Force re-init over an existing branch: the new composition takes
		// effect on the next rebuild rather than by re-merging now.
		opts.Splog.Info("Reconfigured knit for %s", output.WorkingBranch(opts.WorkingBranch))
		opts.Splog.Tip("Run 'git knit rebuild' to apply the new configuration")
		return nil
	}

	if err := git.CreateBranch(ctx, opts.WorkingBranch, opts.BaseBranch); err != nil {
		return err
	}
	if err := git.Checkout(ctx, opts.WorkingBranch); err != nil {
		return err
	}

	for _, feature := range opts.FeatureBranches {
		if err := git.MergeNoFastForward(ctx, feature); err != nil {
			if errors.Is(err, kniterrors.ErrMergeConflict) {
				_ = git.MergeAbort(ctx)
			}
			return err
		}
	}

	features := "(no feature branches)"
	if len(opts.FeatureBranches) > 0 {
		styled := make([]string, len(opts.FeatureBranches))
		for i, f := range opts.FeatureBranches {
			styled[i] = output.FeatureBranch(f)
		}
		features = strings.Join(styled, ", ")
	}
	opts.Splog.Info("Knit initialized: %s = %s + %s",
		output.WorkingBranch(opts.WorkingBranch), output.BaseBranch(opts.BaseBranch), features)

	return nil
}
