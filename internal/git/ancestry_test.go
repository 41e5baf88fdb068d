package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"knit.dev/knit/testhelpers"
)

func TestCommitRange(t *testing.T) {
	ctx := context.Background()

	t.Run("returns commits beyond base, oldest first", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("work"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("1.txt", "1", "first"))
		first, err := scene.Repo.RevParse("work")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("2.txt", "2", "second"))
		second, err := scene.Repo.RevParse("work")
		require.NoError(t, err)

		shas, err := repo.CommitRange(ctx, "main", "work")
		require.NoError(t, err)
		require.Equal(t, []string{first, second}, shas)
	})

	t.Run("empty when tip equals base", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		shas, err := repo.CommitRange(ctx, "main", "main")
		require.NoError(t, err)
		require.Empty(t, shas)
	})

	t.Run("excludes commits reachable from base", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("work"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("w.txt", "w", "work change"))

		// base moves ahead independently
		require.NoError(t, scene.Repo.Checkout("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("m.txt", "m", "main change"))
		mainSHA, err := scene.Repo.RevParse("main")
		require.NoError(t, err)

		shas, err := repo.CommitRange(ctx, "main", "work")
		require.NoError(t, err)
		require.Len(t, shas, 1)
		require.NotContains(t, shas, mainSHA)
	})
}

func TestIsAncestor(t *testing.T) {
	ctx := context.Background()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("work"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("w.txt", "w", "work change"))

	ok, err := repo.IsAncestor(ctx, "main", "work")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.IsAncestor(ctx, "work", "main")
	require.NoError(t, err)
	require.False(t, ok)

	// a commit is its own ancestor
	ok, err = repo.IsAncestor(ctx, "work", "work")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsMergeCommit(t *testing.T) {
	ctx := context.Background()
	scene := testhelpers.NewScene(t, testhelpers.KnitSceneSetup)
	repo := openRepo(t, scene)

	require.NoError(t, repo.CreateBranch(ctx, "work", "main"))
	require.NoError(t, repo.Checkout(ctx, "work"))
	require.NoError(t, repo.MergeNoFastForward(ctx, "feature-a"))

	merge, err := repo.IsMergeCommit(ctx, "work")
	require.NoError(t, err)
	require.True(t, merge)

	merge, err = repo.IsMergeCommit(ctx, "main")
	require.NoError(t, err)
	require.False(t, merge)
}
