package engine

import "context"

// GitRunner is the narrow VCS gateway the engine consumes. *git.Repo is the
// real implementation; tests substitute an in-memory fake.
//
// Mutating calls that can conflict (MergeNoFastForward, CherryPick) leave
// the repository in the conflicted state and return a typed conflict error;
// the caller decides whether to abort or preserve it for inspection.
type GitRunner interface {
	// Repository state
	CurrentBranch(ctx context.Context) (string, error)
	BranchExists(ctx context.Context, name string) (bool, error)
	RevParse(ctx context.Context, rev string) (string, error)
	IsCleanWorkingTree(ctx context.Context) (bool, error)

	// Branch management
	CreateBranch(ctx context.Context, name, startPoint string) error
	Checkout(ctx context.Context, name string) error
	DeleteBranch(ctx context.Context, name string, force bool) error
	ForceMoveBranch(ctx context.Context, name, target string) error

	// Merge and cherry-pick
	MergeNoFastForward(ctx context.Context, branch string) error
	MergeAbort(ctx context.Context) error
	CherryPick(ctx context.Context, commitSHA string) error
	CherryPickAbort(ctx context.Context) error

	// Stash
	StashPush(ctx context.Context, message string) (bool, error)
	StashPop(ctx context.Context) error

	// Ancestry queries
	CommitRange(ctx context.Context, base, tip string) ([]string, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	IsMergeCommit(ctx context.Context, sha string) (bool, error)

	// Config key-value store
	ConfigGet(ctx context.Context, key string) (string, bool, error)
	ConfigSet(ctx context.Context, key, value string) error
	ConfigUnset(ctx context.Context, key string) error
	ConfigKeysByPrefix(ctx context.Context, prefix string) ([]string, error)
}
