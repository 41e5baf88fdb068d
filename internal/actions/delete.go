package actions

import (
	"context"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/output"
)

// DeleteOptions contains options for the delete action
type DeleteOptions struct {
	Engine        *engine.Engine
	Splog         *output.Splog
	WorkingBranch string // empty means resolve from context
}

// DeleteAction removes a knit's configuration. The working branch itself is
// left alone; it just stops being managed.
func DeleteAction(ctx context.Context, opts DeleteOptions) error {
	working, err := resolveWorkingBranch(ctx, opts.Engine, opts.WorkingBranch)
	if err != nil {
		return err
	}
	if err := opts.Engine.Store.Delete(ctx, working); err != nil {
		return err
	}

	opts.Splog.Info("Deleted knit configuration for %s", output.WorkingBranch(working))
	opts.Splog.Info("The branch itself was not deleted")
	return nil
}
