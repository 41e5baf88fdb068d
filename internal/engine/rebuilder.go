package engine

import (
	"context"
	"errors"
	"fmt"

	kniterrors "knit.dev/knit/internal/errors"
)

// RebuildState tracks progress through the rebuild state machine.
type RebuildState int

const (
	StateIdle RebuildState = iota
	StateSnapshotTaken
	StateBaseBuilt
	StateFeaturesReplayed
	StateLocalReplayed
	StatePublished
	StateCleanedUp
	StateConflictHalted
)

func (s RebuildState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSnapshotTaken:
		return "snapshot-taken"
	case StateBaseBuilt:
		return "base-built"
	case StateFeaturesReplayed:
		return "features-replayed"
	case StateLocalReplayed:
		return "local-replayed"
	case StatePublished:
		return "published"
	case StateCleanedUp:
		return "cleaned-up"
	case StateConflictHalted:
		return "conflict-halted"
	default:
		return "unknown"
	}
}

// RebuildOptions controls rebuild behavior
type RebuildOptions struct {
	// Checkout switches to the working branch after publishing even when
	// the caller was not on it
	Checkout bool
}

// RebuildResult describes a completed rebuild
type RebuildResult struct {
	WorkingBranch   string
	BaseBranch      string
	FeatureBranches []string
	// LocalCommits are the replayed commits, oldest first
	LocalCommits []string
	// BackupBranch is the backup ref that was created (and deleted again
	// on success); empty when the working branch did not exist before
	BackupBranch string
	// StashSaved reports whether uncommitted changes were stashed
	StashSaved bool
	// StashRestored reports whether a saved stash was popped back. When
	// StashSaved is true and StashRestored is false, StashPopError holds
	// the reason and the stash is still intact.
	StashRestored bool
	StashPopError error
	State         RebuildState
}

// TempBranchName returns the scratch branch used while rebuilding working
func TempBranchName(working string) string {
	return working + ".rebuilt"
}

// BackupBranchName returns the backup ref name for a working branch tip
func BackupBranchName(working, tipSHA string) string {
	short := tipSHA
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("knit/backup/%s-%s", working, short)
}

// Rebuilder reconstructs working branches from scratch.
type Rebuilder struct {
	git        GitRunner
	classifier *Classifier
}

// NewRebuilder creates a Rebuilder over the given git runner
func NewRebuilder(git GitRunner) *Rebuilder {
	return &Rebuilder{git: git, classifier: NewClassifier(git)}
}

// Rebuild reconstructs the working branch described by cfg:
//
//  1. Snapshot: stash uncommitted changes, record the local commits on the
//     existing working branch, and back up its tip.
//  2. Build: create a scratch branch from the base, merge every feature
//     branch in order (--no-ff), then cherry-pick the local commits.
//  3. Publish: move the working branch ref to the scratch tip in a single
//     atomic ref reassignment, restore the caller's checkout.
//  4. Clean up: delete scratch and backup branches, pop the stash.
//
// On a merge or cherry-pick conflict, the in-flight operation is aborted
// and the scratch branch, backup branch and stash are deliberately left in
// place; the returned error names the offending branch or commit and the
// preserved refs. The working branch ref is only touched in the publish
// step, so a conflicted rebuild never changes it.
func (r *Rebuilder) Rebuild(ctx context.Context, cfg KnitConfig, opts RebuildOptions) (*RebuildResult, error) {
	// Lookup failures must leave the repository untouched, so all
	// existence checks run before the first mutation.
	if ok, err := r.git.BranchExists(ctx, cfg.BaseBranch); err != nil {
		return nil, err
	} else if !ok {
		return nil, kniterrors.NewBranchNotFoundError(cfg.BaseBranch)
	}
	for _, feature := range cfg.FeatureBranches {
		if ok, err := r.git.BranchExists(ctx, feature); err != nil {
			return nil, err
		} else if !ok {
			return nil, kniterrors.NewBranchNotFoundError(feature)
		}
	}

	current, err := r.git.CurrentBranch(ctx)
	if err != nil {
		// Detached HEAD: nothing to restore afterwards.
		current = ""
	}
	wasOnWorking := current == cfg.WorkingBranch

	result := &RebuildResult{
		WorkingBranch:   cfg.WorkingBranch,
		BaseBranch:      cfg.BaseBranch,
		FeatureBranches: cfg.FeatureBranches,
		State:           StateIdle,
	}

	// Idle -> SnapshotTaken
	clean, err := r.git.IsCleanWorkingTree(ctx)
	if err != nil {
		return nil, err
	}
	if !clean {
		stashed, err := r.git.StashPush(ctx, "knit rebuild "+cfg.WorkingBranch)
		if err != nil {
			return nil, err
		}
		result.StashSaved = stashed
	}

	temp := TempBranchName(cfg.WorkingBranch)
	workingExists, err := r.git.BranchExists(ctx, cfg.WorkingBranch)
	if err != nil {
		return nil, err
	}
	if workingExists {
		locals, err := r.classifier.LocalCommits(ctx, cfg.WorkingBranch, cfg.BaseBranch, cfg.FeatureBranches)
		if err != nil {
			return nil, err
		}
		result.LocalCommits = locals

		if wasOnWorking {
			if err := r.git.Checkout(ctx, cfg.BaseBranch); err != nil {
				return nil, err
			}
		}

		tip, err := r.git.RevParse(ctx, "refs/heads/"+cfg.WorkingBranch)
		if err != nil {
			return nil, err
		}
		backup := BackupBranchName(cfg.WorkingBranch, tip)
		if exists, err := r.git.BranchExists(ctx, backup); err != nil {
			return nil, err
		} else if exists {
			// Leftover from an earlier run against the same tip.
			if err := r.git.ForceMoveBranch(ctx, backup, tip); err != nil {
				return nil, err
			}
		} else if err := r.git.CreateBranch(ctx, backup, tip); err != nil {
			return nil, err
		}
		result.BackupBranch = backup
	}
	result.State = StateSnapshotTaken

	// SnapshotTaken -> BaseBuilt
	if exists, err := r.git.BranchExists(ctx, temp); err != nil {
		return nil, err
	} else if exists {
		// Stale scratch branch from a conflicted run.
		if err := r.git.DeleteBranch(ctx, temp, true); err != nil {
			return nil, err
		}
	}
	if err := r.git.CreateBranch(ctx, temp, cfg.BaseBranch); err != nil {
		return nil, err
	}
	if err := r.git.Checkout(ctx, temp); err != nil {
		return nil, err
	}
	result.State = StateBaseBuilt

	// BaseBuilt -> FeaturesReplayed
	for _, feature := range cfg.FeatureBranches {
		if err := r.git.MergeNoFastForward(ctx, feature); err != nil {
			var conflict *kniterrors.MergeConflictError
			if errors.As(err, &conflict) {
				_ = r.git.MergeAbort(ctx)
				conflict.TempBranch = temp
				conflict.BackupBranch = result.BackupBranch
				conflict.StashSaved = result.StashSaved
				result.State = StateConflictHalted
				return nil, conflict
			}
			return nil, err
		}
	}
	result.State = StateFeaturesReplayed

	// FeaturesReplayed -> LocalReplayed
	for _, sha := range result.LocalCommits {
		if err := r.git.CherryPick(ctx, sha); err != nil {
			var conflict *kniterrors.CherryPickConflictError
			if errors.As(err, &conflict) {
				_ = r.git.CherryPickAbort(ctx)
				conflict.TempBranch = temp
				conflict.BackupBranch = result.BackupBranch
				conflict.StashSaved = result.StashSaved
				result.State = StateConflictHalted
				return nil, conflict
			}
			return nil, err
		}
	}
	result.State = StateLocalReplayed

	// LocalReplayed -> Published: a single ref reassignment
	if err := r.git.ForceMoveBranch(ctx, cfg.WorkingBranch, temp); err != nil {
		return nil, err
	}
	if wasOnWorking || opts.Checkout {
		if err := r.git.Checkout(ctx, cfg.WorkingBranch); err != nil {
			return nil, err
		}
	} else if cur, err := r.git.CurrentBranch(ctx); err == nil && cur == temp {
		if err := r.git.Checkout(ctx, cfg.BaseBranch); err != nil {
			return nil, err
		}
	}
	result.State = StatePublished

	// Published -> CleanedUp: best-effort, the result is already live
	_ = r.git.DeleteBranch(ctx, temp, true)
	if result.BackupBranch != "" {
		_ = r.git.DeleteBranch(ctx, result.BackupBranch, true)
	}
	if result.StashSaved {
		if err := r.git.StashPop(ctx); err != nil {
			result.StashPopError = err
		} else {
			result.StashRestored = true
		}
	}
	result.State = StateCleanedUp

	return result, nil
}
