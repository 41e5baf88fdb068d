package git

import (
	"context"
	"fmt"
)

// IsCleanWorkingTree reports whether the working tree has no staged,
// unstaged or untracked changes
func (r *Repo) IsCleanWorkingTree(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return output == "", nil
}

// StageAll stages all changes in the working tree
func (r *Repo) StageAll(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "add", ".")
	if err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// StageFiles stages the given files
func (r *Repo) StageFiles(ctx context.Context, files []string) error {
	args := append([]string{"add"}, files...)
	_, err := r.runner.Run(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// Commit creates a commit with the given message
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.runner.Run(ctx, "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
