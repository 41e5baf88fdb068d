package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	kniterrors "knit.dev/knit/internal/errors"
	"knit.dev/knit/internal/git"
	"knit.dev/knit/testhelpers"
)

func openRepo(t *testing.T, scene *testhelpers.Scene) *git.Repo {
	t.Helper()
	repo, err := git.Open(scene.Dir)
	require.NoError(t, err)
	return repo
}

func TestOpen(t *testing.T) {
	t.Run("opens an existing repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)
		require.NotEmpty(t, repo.Root())
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		dir := t.TempDir()
		_, err := git.Open(dir)
		require.Error(t, err)
	})
}

func TestCurrentBranch(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)
	ctx := context.Background()

	branch, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	branch, err = repo.CurrentBranch(ctx)
	require.NoError(t, err)
	require.Equal(t, "feature", branch)
}

func TestBranchExists(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)
	ctx := context.Background()

	exists, err := repo.BranchExists(ctx, "main")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.BranchExists(ctx, "nope")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRevParse(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)
	ctx := context.Background()

	t.Run("resolves a branch to a full sha", func(t *testing.T) {
		sha, err := repo.RevParse(ctx, "main")
		require.NoError(t, err)
		require.Len(t, sha, 40)
	})

	t.Run("fails for unknown revision", func(t *testing.T) {
		_, err := repo.RevParse(ctx, "does-not-exist")
		require.ErrorIs(t, err, kniterrors.ErrCommitNotFound)
	})
}

func TestBranchOps(t *testing.T) {
	ctx := context.Background()

	t.Run("create, checkout and delete", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, repo.CreateBranch(ctx, "scratch", "main"))
		require.True(t, scene.Repo.BranchExists("scratch"))

		require.NoError(t, repo.Checkout(ctx, "scratch"))
		current, err := scene.Repo.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "scratch", current)

		require.NoError(t, repo.Checkout(ctx, "main"))
		require.NoError(t, repo.DeleteBranch(ctx, "scratch", true))
		require.False(t, scene.Repo.BranchExists("scratch"))
	})

	t.Run("force move reassigns the ref without touching the worktree", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("target"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("t.txt", "t", "target change"))
		require.NoError(t, scene.Repo.Checkout("main"))

		require.NoError(t, repo.ForceMoveBranch(ctx, "target", "main"))

		mainSHA, err := scene.Repo.RevParse("main")
		require.NoError(t, err)
		targetSHA, err := scene.Repo.RevParse("target")
		require.NoError(t, err)
		require.Equal(t, mainSHA, targetSHA)
	})
}

func TestMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("merge creates a merge commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.KnitSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, repo.CreateBranch(ctx, "work", "main"))
		require.NoError(t, repo.Checkout(ctx, "work"))
		require.NoError(t, repo.MergeNoFastForward(ctx, "feature-a"))

		merge, err := repo.IsMergeCommit(ctx, "work")
		require.NoError(t, err)
		require.True(t, merge)
		require.True(t, scene.Repo.FileExists("a.txt"))
	})

	t.Run("conflicting merge returns a typed error", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("left"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("base.txt", "left", "left change"))
		require.NoError(t, scene.Repo.Checkout("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("base.txt", "right", "right change"))

		err := repo.MergeNoFastForward(ctx, "left")
		require.ErrorIs(t, err, kniterrors.ErrMergeConflict)

		var conflict *kniterrors.MergeConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "left", conflict.BranchName)

		// abort restores a clean tree
		require.NoError(t, repo.MergeAbort(ctx))
		clean, err := repo.IsCleanWorkingTree(ctx)
		require.NoError(t, err)
		require.True(t, clean)
	})
}

func TestCherryPick(t *testing.T) {
	ctx := context.Background()

	t.Run("replays a commit onto the current branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("source"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("s.txt", "s", "source change"))
		sha, err := scene.Repo.RevParse("source")
		require.NoError(t, err)

		require.NoError(t, scene.Repo.Checkout("main"))
		require.NoError(t, repo.CherryPick(ctx, sha))
		require.True(t, scene.Repo.FileExists("s.txt"))
	})

	t.Run("conflicting pick returns a typed error", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("source"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("base.txt", "source", "source change"))
		sha, err := scene.Repo.RevParse("source")
		require.NoError(t, err)

		require.NoError(t, scene.Repo.Checkout("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("base.txt", "other", "diverging change"))

		err = repo.CherryPick(ctx, sha)
		require.ErrorIs(t, err, kniterrors.ErrCherryPickConflict)

		var conflict *kniterrors.CherryPickConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, sha, conflict.CommitSHA)

		require.NoError(t, repo.CherryPickAbort(ctx))
	})
}

func TestStash(t *testing.T) {
	ctx := context.Background()

	t.Run("push and pop round-trip uncommitted changes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateChange("wip.txt", "wip"))
		stashed, err := repo.StashPush(ctx, "test stash")
		require.NoError(t, err)
		require.True(t, stashed)
		require.False(t, scene.Repo.FileExists("wip.txt"))

		require.NoError(t, repo.StashPop(ctx))
		require.True(t, scene.Repo.FileExists("wip.txt"))
	})

	t.Run("push on a clean tree is a no-op", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		stashed, err := repo.StashPush(ctx, "nothing")
		require.NoError(t, err)
		require.False(t, stashed)
	})
}

func TestWorktree(t *testing.T) {
	ctx := context.Background()

	t.Run("clean tree detection", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		clean, err := repo.IsCleanWorkingTree(ctx)
		require.NoError(t, err)
		require.True(t, clean)

		require.NoError(t, scene.Repo.CreateChange("wip.txt", "wip"))
		clean, err = repo.IsCleanWorkingTree(ctx)
		require.NoError(t, err)
		require.False(t, clean)
	})

	t.Run("stage all and commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateChange("new.txt", "new"))
		require.NoError(t, repo.StageAll(ctx))
		require.NoError(t, repo.Commit(ctx, "add new file"))

		messages, err := scene.Repo.CommitMessages("main")
		require.NoError(t, err)
		require.Equal(t, "add new file", messages[0])
	})
}
