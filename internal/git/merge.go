package git

import (
	"context"
	"errors"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// MergeNoFastForward merges branch into the current HEAD with a merge
// commit, never fast-forwarding. On conflict the repository is left in the
// conflicted state (MERGE_HEAD present) and a *MergeConflictError is
// returned; the caller decides whether to abort or keep it for inspection.
func (r *Repo) MergeNoFastForward(ctx context.Context, branch string) error {
	_, err := r.runner.Run(ctx, "merge", "--no-ff", "--no-edit", branch)
	if err == nil {
		return nil
	}

	var cmdErr *kniterrors.GitCommandError
	if errors.As(err, &cmdErr) {
		detail := strings.TrimSpace(cmdErr.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(cmdErr.Stdout)
		}
		return kniterrors.NewMergeConflictError(branch, detail)
	}
	return err
}

// MergeAbort aborts an in-progress merge
func (r *Repo) MergeAbort(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "merge", "--abort")
	if err != nil {
		return err
	}
	return nil
}
