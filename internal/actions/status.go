package actions

import (
	"context"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/output"
)

// StatusOptions contains options for the status action
type StatusOptions struct {
	Engine        *engine.Engine
	Splog         *output.Splog
	WorkingBranch string // empty means resolve from context
}

// StatusAction displays the configuration of a knit
func StatusAction(ctx context.Context, opts StatusOptions) error {
	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}

	cfg, err := opts.Engine.Store.Get(ctx, working)
	if err != nil {
		return err
	}

	// The configuration can outlive the branch, so a missing tip is shown
	// rather than treated as an error.
	tip := output.Dim("(branch missing)")
	if sha, err := opts.Engine.Git.RevParse(ctx, cfg.WorkingBranch); err == nil {
		tip = output.CommitSHA(sha)
	}

	opts.Splog.Info("Working branch: %s %s", output.WorkingBranch(cfg.WorkingBranch), tip)
	opts.Splog.Info("Base branch:    %s", output.BaseBranch(cfg.BaseBranch))
	if len(cfg.FeatureBranches) == 0 {
		opts.Splog.Info("Feature branches: %s", output.Dim("(none)"))
		return nil
	}
	opts.Splog.Info("Feature branches:")
	for _, f := range cfg.FeatureBranches {
		opts.Splog.Info("  - %s", output.FeatureBranch(f))
	}
	return nil
}

// ListOptions contains options for the list action
type ListOptions struct {
	Engine *engine.Engine
	Splog  *output.Splog
}

// ListAction displays all configured working branches
func ListAction(ctx context.Context, opts ListOptions) error {
	branches, err := opts.Engine.Store.ListWorkingBranches(ctx)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		opts.Splog.Info("No knits configured")
		opts.Splog.Tip("Run 'git knit init <working> <base> [features...]' to create one")
		return nil
	}

	current, _ := opts.Engine.Git.CurrentBranch(ctx)
	for _, b := range branches {
		marker := "  "
		if b == current {
			marker = "* "
		}
		opts.Splog.Info("%s%s", marker, output.WorkingBranch(b))
	}
	return nil
}
