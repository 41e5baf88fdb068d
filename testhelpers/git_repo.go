package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a real Git repository for testing purposes. All
// mutations go through the git binary so tests exercise the same plumbing
// the tool runs against.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory
// using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure Git user (required for commits)
	if err := repo.runGit("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGit("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// runGit executes a git command in the repository directory.
// Uses GIT_CONFIG_GLOBAL=/dev/null to avoid reading global config.
func (r *GitRepo) runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGit(args...)
}

// runGitOutput executes a git command and returns its trimmed output.
func (r *GitRepo) runGitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange writes content to a file without committing it.
func (r *GitRepo) CreateChange(fileName, content string) error {
	return os.WriteFile(filepath.Join(r.Dir, fileName), []byte(content), 0644)
}

// CreateChangeAndCommit writes content to a file, stages it and commits it.
func (r *GitRepo) CreateChangeAndCommit(fileName, content, message string) error {
	if err := r.CreateChange(fileName, content); err != nil {
		return err
	}
	if err := r.runGit("add", fileName); err != nil {
		return err
	}
	return r.runGit("commit", "-m", message)
}

// CreateAndCheckoutBranch creates a branch at HEAD and checks it out.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGit("checkout", "-b", name)
}

// Checkout switches to the given branch.
func (r *GitRepo) Checkout(name string) error {
	return r.runGit("checkout", name)
}

// CurrentBranch returns the name of the checked out branch.
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.runGitOutput("branch", "--show-current")
}

// BranchExists reports whether a local branch exists.
func (r *GitRepo) BranchExists(name string) bool {
	err := r.runGit("show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// RevParse resolves a revision to its full SHA.
func (r *GitRepo) RevParse(rev string) (string, error) {
	return r.runGitOutput("rev-parse", rev)
}

// FileContent reads a file from the worktree.
func (r *GitRepo) FileContent(fileName string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, fileName))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileExists reports whether a file exists in the worktree.
func (r *GitRepo) FileExists(fileName string) bool {
	_, err := os.Stat(filepath.Join(r.Dir, fileName))
	return err == nil
}

// CommitMessages returns the subject lines reachable from rev, newest first.
func (r *GitRepo) CommitMessages(rev string) ([]string, error) {
	out, err := r.runGitOutput("log", "--format=%s", rev)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
