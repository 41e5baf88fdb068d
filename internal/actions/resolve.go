package actions

import (
	"context"
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"knit.dev/knit/internal/engine"
	kniterrors "knit.dev/knit/internal/errors"
)

// resolveWorkingBranch resolves the target working branch for a command.
// The store's resolution rules apply first; when they come back ambiguous
// and the session is interactive, the user picks from the configured
// working branches instead of getting an error.
func resolveWorkingBranch(ctx context.Context, eng *engine.Engine, explicit string) (string, error) {
	working, err := eng.Store.ResolveWorkingBranch(ctx, explicit)
	if err == nil {
		return working, nil
	}
	if !errors.Is(err, kniterrors.ErrAmbiguousWorkingBranch) || !isInteractive() {
		return "", err
	}

	branches, listErr := eng.Store.ListWorkingBranches(ctx)
	if listErr != nil || len(branches) == 0 {
		return "", err
	}

	var selected string
	prompt := &survey.Select{
		Message: "Which working branch?",
		Options: branches,
	}
	if askErr := survey.AskOne(prompt, &selected); askErr != nil {
		return "", err
	}
	return selected, nil
}

// isInteractive reports whether prompts can be shown
func isInteractive() bool {
	if os.Getenv("KNIT_NO_INTERACTIVE") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd())
}
