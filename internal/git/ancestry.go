package git

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// resolveRefHash resolves a branch name, ref name or SHA to a commit hash
func (r *Repo) resolveRefHash(rev string) (plumbing.Hash, error) {
	if ref, err := r.gogit.Reference(plumbing.NewBranchReferenceName(rev), true); err == nil {
		return ref.Hash(), nil
	}
	hash, err := r.gogit.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return *hash, nil
}

// reachableSet returns the set of all commits reachable from the given hash
func (r *Repo) reachableSet(from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	commit, err := r.gogit.CommitObject(from)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", from, err)
	}

	seen := map[plumbing.Hash]bool{}
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	return seen, nil
}

// CommitRange returns the SHAs of commits reachable from tip but not from
// base, oldest first. Each commit appears exactly once.
func (r *Repo) CommitRange(ctx context.Context, base, tip string) ([]string, error) {
	tipHash, err := r.resolveRefHash(tip)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tip: %w", err)
	}
	baseHash, err := r.resolveRefHash(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base: %w", err)
	}

	excluded, err := r.reachableSet(baseHash)
	if err != nil {
		return nil, err
	}

	tipCommit, err := r.gogit.CommitObject(tipHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get tip commit: %w", err)
	}

	var commits []*object.Commit
	iter := object.NewCommitPreorderIter(tipCommit, excluded, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}

	// Preorder yields children before parents. Reverse to parent-first,
	// then stable-sort by commit time so the result is chronological while
	// commits with identical timestamps keep their topological order.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Committer.When.Before(commits[j].Committer.When)
	})

	shas := make([]string, 0, len(commits))
	for _, c := range commits {
		shas = append(shas, c.Hash.String())
	}
	return shas, nil
}

// IsAncestor reports whether ancestor is reachable from descendant
func (r *Repo) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	ancestorHash, err := r.resolveRefHash(ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to resolve ancestor: %w", err)
	}
	descendantHash, err := r.resolveRefHash(descendant)
	if err != nil {
		return false, fmt.Errorf("failed to resolve descendant: %w", err)
	}

	if ancestorHash == descendantHash {
		return true, nil
	}

	ancestorCommit, err := r.gogit.CommitObject(ancestorHash)
	if err != nil {
		return false, fmt.Errorf("failed to get ancestor commit: %w", err)
	}
	descendantCommit, err := r.gogit.CommitObject(descendantHash)
	if err != nil {
		return false, fmt.Errorf("failed to get descendant commit: %w", err)
	}

	return ancestorCommit.IsAncestor(descendantCommit)
}

// IsMergeCommit reports whether the commit has two or more parents
func (r *Repo) IsMergeCommit(ctx context.Context, sha string) (bool, error) {
	hash, err := r.resolveRefHash(sha)
	if err != nil {
		return false, err
	}
	commit, err := r.gogit.CommitObject(hash)
	if err != nil {
		return false, fmt.Errorf("failed to get commit %s: %w", sha, err)
	}
	return commit.NumParents() >= 2, nil
}
