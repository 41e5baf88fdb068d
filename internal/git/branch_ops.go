package git

import (
	"context"
	"fmt"
)

// CreateBranch creates a new branch at startPoint without checking it out
func (r *Repo) CreateBranch(ctx context.Context, name, startPoint string) error {
	_, err := r.runner.Run(ctx, "branch", name, startPoint)
	if err != nil {
		return fmt.Errorf("failed to create branch %s at %s: %w", name, startPoint, err)
	}
	return nil
}

// Checkout checks out an existing branch
func (r *Repo) Checkout(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "checkout", name)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", name, err)
	}
	return nil
}

// DeleteBranch deletes a branch
func (r *Repo) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.runner.Run(ctx, "branch", flag, name)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// ForceMoveBranch moves a branch ref to point at target in a single ref
// reassignment. The branch must not be checked out. This is the atomic
// publish primitive of the rebuild engine.
func (r *Repo) ForceMoveBranch(ctx context.Context, name, target string) error {
	_, err := r.runner.Run(ctx, "branch", "-f", name, target)
	if err != nil {
		return fmt.Errorf("failed to move branch %s to %s: %w", name, target, err)
	}
	return nil
}
