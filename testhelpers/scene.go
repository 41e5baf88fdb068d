package testhelpers

import (
	"os"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git
// repository. It automatically handles cleanup using t.Cleanup().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "knit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:    tmpDir,
		Repo:   repo,
		oldDir: oldDir,
	}

	if err := os.Chdir(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to change directory: %v", err)
	}

	// Keep tests hermetic: no prompts, no log files.
	os.Setenv("KNIT_NO_INTERACTIVE", "1")
	os.Setenv("KNIT_LOG_FILE", "")

	if setup != nil {
		if err := setup(scene); err != nil {
			os.Chdir(oldDir)
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	return scene
}

// BasicSceneSetup creates a scene with a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("base.txt", "base", "initial commit")
}

// KnitSceneSetup creates a scene with a main branch and two feature
// branches, each with one non-conflicting commit.
func KnitSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("feature-a"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("a.txt", "a", "feature a"); err != nil {
		return err
	}
	if err := scene.Repo.Checkout("main"); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("feature-b"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("b.txt", "b", "feature b"); err != nil {
		return err
	}
	return scene.Repo.Checkout("main")
}
