package engine

import (
	"context"
	"fmt"
)

// Classifier computes which commits on a working branch were authored
// directly on it, as opposed to inherited from the base or a feature branch.
type Classifier struct {
	git GitRunner
}

// NewClassifier creates a Classifier over the given git runner
func NewClassifier(git GitRunner) *Classifier {
	return &Classifier{git: git}
}

// LocalCommits returns the non-merge commits reachable from working but not
// from base and not from any feature branch, oldest first. The ordering is
// the replay order for cherry-picking, so original authorship order is
// preserved. Each commit appears at most once even when it is reachable
// from several feature branches.
func (c *Classifier) LocalCommits(ctx context.Context, working, base string, features []string) ([]string, error) {
	shas, err := c.git.CommitRange(ctx, base, working)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits %s..%s: %w", base, working, err)
	}

	local := make([]string, 0, len(shas))
	seen := make(map[string]bool, len(shas))
	for _, sha := range shas {
		if seen[sha] {
			continue
		}
		seen[sha] = true

		merge, err := c.git.IsMergeCommit(ctx, sha)
		if err != nil {
			return nil, err
		}
		if merge {
			continue
		}

		inherited := false
		for _, feature := range features {
			ok, err := c.git.IsAncestor(ctx, sha, feature)
			if err != nil {
				return nil, err
			}
			if ok {
				inherited = true
				break
			}
		}
		if inherited {
			continue
		}

		local = append(local, sha)
	}
	return local, nil
}
