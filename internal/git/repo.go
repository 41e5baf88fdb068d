package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	kniterrors "knit.dev/knit/internal/errors"
)

// Repo is the repository handle threaded through the engine. It combines a
// CommandRunner for mutating operations with a go-git repository for
// read-side queries. All state is explicit; there is no process-global repo.
type Repo struct {
	runner *CommandRunner
	gogit  *gogit.Repository
	root   string
}

// Open opens the git repository containing path
func Open(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	runner := NewCommandRunner(absPath)
	root, err := runner.Run(context.Background(), "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	return &Repo{
		runner: &CommandRunner{workingDir: root},
		gogit:  repo,
		root:   root,
	}, nil
}

// Root returns the root directory of the repository
func (r *Repo) Root() string {
	return r.root
}

// CurrentBranch returns the current branch name
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.gogit.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch exists
func (r *Repo) BranchExists(ctx context.Context, name string) (bool, error) {
	_, err := r.gogit.Reference(plumbing.NewBranchReferenceName(name), true)
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up branch %s: %w", name, err)
	}
	return true, nil
}

// RevParse resolves a revision to a full commit SHA
func (r *Repo) RevParse(ctx context.Context, rev string) (string, error) {
	sha, err := r.runner.Run(ctx, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", classifyRevParseError(rev, err)
	}
	return sha, nil
}

// classifyRevParseError maps a failed rev-parse onto the error taxonomy:
// a short object ID matching several objects is ErrAmbiguousCommit,
// everything else is ErrCommitNotFound.
func classifyRevParseError(rev string, err error) error {
	var cmdErr *kniterrors.GitCommandError
	if errors.As(err, &cmdErr) && strings.Contains(strings.ToLower(cmdErr.Stderr), "is ambiguous") {
		return fmt.Errorf("%w: %s", kniterrors.ErrAmbiguousCommit, rev)
	}
	return fmt.Errorf("%w: %s", kniterrors.ErrCommitNotFound, rev)
}

// BranchNames returns all local branch names
func (r *Repo) BranchNames(ctx context.Context) ([]string, error) {
	branches, err := r.gogit.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return names, nil
}
