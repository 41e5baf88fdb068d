package git

import (
	"context"
	"fmt"
	"strings"
)

// StashPush stashes staged, unstaged and untracked changes. Returns false
// when there was nothing to stash.
func (r *Repo) StashPush(ctx context.Context, message string) (bool, error) {
	args := []string{"stash", "push", "--include-untracked"}
	if message != "" {
		args = append(args, "-m", message)
	}
	output, err := r.runner.Run(ctx, args...)
	if err != nil {
		return false, fmt.Errorf("stash push failed: %w", err)
	}
	if strings.Contains(strings.ToLower(output), "no local changes") {
		return false, nil
	}
	return true, nil
}

// StashPop pops the most recent stash. It first tries to restore the index
// as well, falling back to a plain pop when --index cannot be applied.
func (r *Repo) StashPop(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "stash", "pop", "--index")
	if err == nil {
		return nil
	}
	_, err = r.runner.Run(ctx, "stash", "pop")
	if err != nil {
		return fmt.Errorf("stash pop failed: %w", err)
	}
	return nil
}
