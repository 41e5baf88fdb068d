package git

import (
	"context"
	"errors"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// CherryPick applies a single commit onto the current HEAD. On conflict the
// repository is left in the conflicted state (CHERRY_PICK_HEAD present) and
// a *CherryPickConflictError is returned.
func (r *Repo) CherryPick(ctx context.Context, commitSHA string) error {
	_, err := r.runner.Run(ctx, "cherry-pick", commitSHA)
	if err == nil {
		return nil
	}

	var cmdErr *kniterrors.GitCommandError
	if errors.As(err, &cmdErr) {
		detail := strings.TrimSpace(cmdErr.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(cmdErr.Stdout)
		}
		return kniterrors.NewCherryPickConflictError(commitSHA, detail)
	}
	return err
}

// CherryPickAbort aborts an in-progress cherry-pick, restoring HEAD to the
// state before the failed pick
func (r *Repo) CherryPickAbort(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "cherry-pick", "--abort")
	if err != nil {
		return err
	}
	return nil
}
