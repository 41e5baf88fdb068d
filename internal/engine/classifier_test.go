package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"knit.dev/knit/internal/engine"
)

func TestClassifierLocalCommits(t *testing.T) {
	ctx := context.Background()

	t.Run("returns commits authored on working, oldest first", func(t *testing.T) {
		f := newFakeRunner()
		f.branchFrom("work", "main")
		f.current = "work"
		first := f.addCommit("work")
		second := f.addCommit("work")

		locals, err := engine.NewClassifier(f).LocalCommits(ctx, "work", "main", nil)
		require.NoError(t, err)
		require.Equal(t, []string{first, second}, locals)
	})

	t.Run("excludes feature commits and merge commits", func(t *testing.T) {
		f := newFakeRunner()
		f.branchFrom("feat-a", "main")
		featSHA := f.addCommit("feat-a")

		f.branchFrom("work", "main")
		f.current = "work"
		require.NoError(t, f.MergeNoFastForward(ctx, "feat-a"))
		local := f.addCommit("work")

		locals, err := engine.NewClassifier(f).LocalCommits(ctx, "work", "main", []string{"feat-a"})
		require.NoError(t, err)
		require.Equal(t, []string{local}, locals)
		require.NotContains(t, locals, featSHA)
	})

	t.Run("empty when working matches base", func(t *testing.T) {
		f := newFakeRunner()
		f.branchFrom("work", "main")

		locals, err := engine.NewClassifier(f).LocalCommits(ctx, "work", "main", nil)
		require.NoError(t, err)
		require.Empty(t, locals)
	})

	t.Run("feature commit not yet merged is still excluded", func(t *testing.T) {
		// A feature merged earlier then amended: commits reachable from the
		// feature branch never count as local even when the working branch
		// has them via an old merge.
		f := newFakeRunner()
		f.branchFrom("feat-a", "main")
		f.addCommit("feat-a")

		f.branchFrom("work", "main")
		f.current = "work"
		require.NoError(t, f.MergeNoFastForward(ctx, "feat-a"))
		f.addCommit("feat-a")

		locals, err := engine.NewClassifier(f).LocalCommits(ctx, "work", "main", []string{"feat-a"})
		require.NoError(t, err)
		require.Empty(t, locals)
	})
}
