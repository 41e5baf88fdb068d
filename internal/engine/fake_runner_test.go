package engine_test

import (
	"context"
	"fmt"
	"sort"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// fakeCommit is a node in the fake repository's commit graph.
type fakeCommit struct {
	sha     string
	parents []string
	merge   bool
	// seq is the creation order, used to report ranges oldest first
	seq int
}

// fakeRunner implements engine.GitRunner with an in-memory commit graph so
// the rebuild state machine can be exercised without a real repository.
type fakeRunner struct {
	branches map[string]string // name -> tip sha
	commits  map[string]*fakeCommit
	current  string
	nextSeq  int

	dirty      bool
	stashDepth int
	// stashPopFails simulates a stash that no longer applies cleanly
	stashPopFails bool

	config map[string]string

	// conflictBranches are branches whose merge conflicts; conflictPicks
	// are commits whose cherry-pick conflicts
	conflictBranches map[string]bool
	conflictPicks    map[string]bool

	// ops records every mutating call for order assertions
	ops []string
}

func newFakeRunner() *fakeRunner {
	f := &fakeRunner{
		branches:         make(map[string]string),
		commits:          make(map[string]*fakeCommit),
		config:           make(map[string]string),
		conflictBranches: make(map[string]bool),
		conflictPicks:    make(map[string]bool),
	}
	root := f.newCommit(nil, false)
	f.branches["main"] = root
	f.current = "main"
	return f
}

func (f *fakeRunner) newCommit(parents []string, merge bool) string {
	f.nextSeq++
	sha := fmt.Sprintf("sha%04d", f.nextSeq)
	f.commits[sha] = &fakeCommit{sha: sha, parents: parents, merge: merge, seq: f.nextSeq}
	return sha
}

// addCommit appends a commit to a branch and returns its sha.
func (f *fakeRunner) addCommit(branch string) string {
	tip := f.branches[branch]
	sha := f.newCommit([]string{tip}, false)
	f.branches[branch] = sha
	return sha
}

// branchFrom creates a branch at another branch's tip.
func (f *fakeRunner) branchFrom(name, from string) {
	f.branches[name] = f.branches[from]
}

func (f *fakeRunner) reachable(sha string) map[string]bool {
	seen := make(map[string]bool)
	stack := []string{sha}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == "" || seen[cur] {
			continue
		}
		seen[cur] = true
		if c, ok := f.commits[cur]; ok {
			stack = append(stack, c.parents...)
		}
	}
	return seen
}

func (f *fakeRunner) resolve(rev string) (string, error) {
	rev = strings.TrimPrefix(rev, "refs/heads/")
	if tip, ok := f.branches[rev]; ok {
		return tip, nil
	}
	if _, ok := f.commits[rev]; ok {
		return rev, nil
	}
	return "", fmt.Errorf("%w: %s", kniterrors.ErrCommitNotFound, rev)
}

func (f *fakeRunner) record(op string) {
	f.ops = append(f.ops, op)
}

func (f *fakeRunner) CurrentBranch(context.Context) (string, error) {
	if f.current == "" {
		return "", fmt.Errorf("detached HEAD")
	}
	return f.current, nil
}

func (f *fakeRunner) BranchExists(_ context.Context, name string) (bool, error) {
	_, ok := f.branches[name]
	return ok, nil
}

func (f *fakeRunner) RevParse(_ context.Context, rev string) (string, error) {
	return f.resolve(rev)
}

func (f *fakeRunner) IsCleanWorkingTree(context.Context) (bool, error) {
	return !f.dirty, nil
}

func (f *fakeRunner) CreateBranch(_ context.Context, name, startPoint string) error {
	if _, ok := f.branches[name]; ok {
		return fmt.Errorf("branch %s already exists", name)
	}
	tip, err := f.resolve(startPoint)
	if err != nil {
		return err
	}
	f.record("create " + name)
	f.branches[name] = tip
	return nil
}

func (f *fakeRunner) Checkout(_ context.Context, name string) error {
	if _, ok := f.branches[name]; !ok {
		return kniterrors.NewBranchNotFoundError(name)
	}
	f.record("checkout " + name)
	f.current = name
	return nil
}

func (f *fakeRunner) DeleteBranch(_ context.Context, name string, _ bool) error {
	if _, ok := f.branches[name]; !ok {
		return kniterrors.NewBranchNotFoundError(name)
	}
	f.record("delete " + name)
	delete(f.branches, name)
	return nil
}

func (f *fakeRunner) ForceMoveBranch(_ context.Context, name, target string) error {
	tip, err := f.resolve(target)
	if err != nil {
		return err
	}
	f.record("move " + name)
	f.branches[name] = tip
	return nil
}

func (f *fakeRunner) MergeNoFastForward(_ context.Context, branch string) error {
	if f.conflictBranches[branch] {
		return kniterrors.NewMergeConflictError(branch, "CONFLICT (content)")
	}
	f.record("merge " + branch)
	tip := f.branches[f.current]
	other, err := f.resolve(branch)
	if err != nil {
		return err
	}
	f.branches[f.current] = f.newCommit([]string{tip, other}, true)
	return nil
}

func (f *fakeRunner) MergeAbort(context.Context) error {
	f.record("merge-abort")
	return nil
}

func (f *fakeRunner) CherryPick(_ context.Context, commitSHA string) error {
	if f.conflictPicks[commitSHA] {
		return kniterrors.NewCherryPickConflictError(commitSHA, "CONFLICT (content)")
	}
	f.record("pick " + commitSHA)
	tip := f.branches[f.current]
	f.branches[f.current] = f.newCommit([]string{tip}, false)
	return nil
}

func (f *fakeRunner) CherryPickAbort(context.Context) error {
	f.record("pick-abort")
	return nil
}

func (f *fakeRunner) StashPush(_ context.Context, _ string) (bool, error) {
	if !f.dirty {
		return false, nil
	}
	f.record("stash-push")
	f.dirty = false
	f.stashDepth++
	return true, nil
}

func (f *fakeRunner) StashPop(context.Context) error {
	if f.stashDepth == 0 {
		return fmt.Errorf("no stash entries")
	}
	if f.stashPopFails {
		return fmt.Errorf("stash pop conflicts")
	}
	f.record("stash-pop")
	f.stashDepth--
	f.dirty = true
	return nil
}

func (f *fakeRunner) CommitRange(_ context.Context, base, tip string) ([]string, error) {
	baseTip, err := f.resolve(base)
	if err != nil {
		return nil, err
	}
	tipSHA, err := f.resolve(tip)
	if err != nil {
		return nil, err
	}
	excluded := f.reachable(baseTip)

	var shas []string
	for sha := range f.reachable(tipSHA) {
		if !excluded[sha] {
			shas = append(shas, sha)
		}
	}
	sort.Slice(shas, func(i, j int) bool {
		return f.commits[shas[i]].seq < f.commits[shas[j]].seq
	})
	return shas, nil
}

func (f *fakeRunner) IsAncestor(_ context.Context, ancestor, descendant string) (bool, error) {
	ancSHA, err := f.resolve(ancestor)
	if err != nil {
		return false, err
	}
	descSHA, err := f.resolve(descendant)
	if err != nil {
		return false, err
	}
	return f.reachable(descSHA)[ancSHA], nil
}

func (f *fakeRunner) IsMergeCommit(_ context.Context, sha string) (bool, error) {
	c, ok := f.commits[sha]
	if !ok {
		return false, fmt.Errorf("%w: %s", kniterrors.ErrCommitNotFound, sha)
	}
	return c.merge, nil
}

func (f *fakeRunner) ConfigGet(_ context.Context, key string) (string, bool, error) {
	v, ok := f.config[key]
	return v, ok, nil
}

func (f *fakeRunner) ConfigSet(_ context.Context, key, value string) error {
	f.config[key] = value
	return nil
}

func (f *fakeRunner) ConfigUnset(_ context.Context, key string) error {
	delete(f.config, key)
	return nil
}

func (f *fakeRunner) ConfigKeysByPrefix(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.config {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
