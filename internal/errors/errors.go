// Package errors provides sentinel errors and custom error types for the git-knit application.
// Use errors.Is() and errors.As() to check for specific error kinds.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotConfigured indicates that no knit is configured for a working branch
	ErrNotConfigured = errors.New("knit not configured")

	// ErrAlreadyConfigured indicates that a knit already exists for a working branch
	ErrAlreadyConfigured = errors.New("knit already configured")

	// ErrAlreadyInKnit indicates that a branch is already part of a knit
	ErrAlreadyInKnit = errors.New("branch already in knit")

	// ErrBranchNotInKnit indicates that a branch is not part of a knit
	ErrBranchNotInKnit = errors.New("branch not in knit")

	// ErrMalformedConfig indicates that a persisted knit config could not be parsed
	ErrMalformedConfig = errors.New("malformed knit config")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrAmbiguousWorkingBranch indicates that the working branch could not be determined
	ErrAmbiguousWorkingBranch = errors.New("cannot determine working branch")

	// ErrUncommittedChanges indicates that an operation requires a clean working tree
	ErrUncommittedChanges = errors.New("uncommitted changes")

	// ErrMergeConflict indicates that a merge operation encountered a conflict
	ErrMergeConflict = errors.New("merge conflict")

	// ErrCherryPickConflict indicates that a cherry-pick encountered a conflict
	ErrCherryPickConflict = errors.New("cherry-pick conflict")

	// ErrCommitNotFound indicates that a commit reference could not be resolved
	ErrCommitNotFound = errors.New("commit not found")

	// ErrAmbiguousCommit indicates that a commit reference matched multiple commits
	ErrAmbiguousCommit = errors.New("ambiguous commit")
)

// Exit codes consumed by the CLI entry point.
const (
	ExitOK                 = 0
	ExitFailure            = 1
	ExitUncommittedChanges = 2
	ExitConflict           = 3
)

// ExitCode maps an error to the process exit code defined by the CLI contract.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrMergeConflict), errors.Is(err, ErrCherryPickConflict):
		return ExitConflict
	case errors.Is(err, ErrUncommittedChanges):
		return ExitUncommittedChanges
	default:
		return ExitFailure
	}
}

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// MergeConflictError represents a conflict while merging a feature branch.
// The rebuild engine fills in the refs it left behind so recovery is
// possible without re-querying the repository.
type MergeConflictError struct {
	BranchName   string
	TempBranch   string
	BackupBranch string
	StashSaved   bool
	Message      string
}

func (e *MergeConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("merge conflict with branch %s: %s", e.BranchName, e.Message)
	}
	return fmt.Sprintf("merge conflict with branch %s", e.BranchName)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(branchName, message string) *MergeConflictError {
	return &MergeConflictError{BranchName: branchName, Message: message}
}

// CherryPickConflictError represents a conflict while replaying a local commit.
type CherryPickConflictError struct {
	CommitSHA    string
	TempBranch   string
	BackupBranch string
	StashSaved   bool
	Message      string
}

func (e *CherryPickConflictError) Error() string {
	sha := e.CommitSHA
	if len(sha) > 8 {
		sha = sha[:8]
	}
	if e.Message != "" {
		return fmt.Sprintf("cherry-pick conflict for commit %s: %s", sha, e.Message)
	}
	return fmt.Sprintf("cherry-pick conflict for commit %s", sha)
}

// Is returns true if the target error is ErrCherryPickConflict
func (e *CherryPickConflictError) Is(target error) bool {
	return target == ErrCherryPickConflict
}

// NewCherryPickConflictError creates a new CherryPickConflictError
func NewCherryPickConflictError(commitSHA, message string) *CherryPickConflictError {
	return &CherryPickConflictError{CommitSHA: commitSHA, Message: message}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
