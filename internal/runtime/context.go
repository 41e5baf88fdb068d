// Package runtime provides the per-invocation context threaded through
// commands: the engine, the repository handle and the logger.
package runtime

import (
	"fmt"
	"os"

	"knit.dev/knit/internal/engine"
	"knit.dev/knit/internal/git"
	"knit.dev/knit/internal/output"
)

// Context provides access to the engine, the repository and output for commands
type Context struct {
	Engine   *engine.Engine
	Repo     *git.Repo
	Splog    *output.Splog
	RepoRoot string
}

// GetContext discovers the enclosing git repository and builds the command
// context. Every command calls this once; nothing in the context is global.
func GetContext() (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := git.Open(wd)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	return &Context{
		Engine:   engine.New(repo),
		Repo:     repo,
		Splog:    output.NewSplog(),
		RepoRoot: repo.Root(),
	}, nil
}
