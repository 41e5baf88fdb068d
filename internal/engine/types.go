package engine

import (
	"fmt"
	"slices"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// KnitConfig describes one configured working branch: the base it is built
// from and the ordered feature branches merged into it. Values are
// immutable; mutations return a new value.
type KnitConfig struct {
	WorkingBranch   string
	BaseBranch      string
	FeatureBranches []string
}

// NewKnitConfig builds and validates a KnitConfig
func NewKnitConfig(working, base string, features []string) (KnitConfig, error) {
	cfg := KnitConfig{
		WorkingBranch:   working,
		BaseBranch:      base,
		FeatureBranches: slices.Clone(features),
	}
	if err := cfg.Validate(); err != nil {
		return KnitConfig{}, err
	}
	return cfg, nil
}

// Validate checks the KnitConfig invariants: non-empty colon-free branch
// names, no duplicate features, and features never include the working or
// base branch.
func (c KnitConfig) Validate() error {
	names := append([]string{c.WorkingBranch, c.BaseBranch}, c.FeatureBranches...)
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: empty branch name", kniterrors.ErrMalformedConfig)
		}
		if strings.Contains(name, ":") {
			return fmt.Errorf("%w: branch name %q contains ':'", kniterrors.ErrMalformedConfig, name)
		}
	}

	seen := make(map[string]bool, len(c.FeatureBranches))
	for _, f := range c.FeatureBranches {
		if f == c.WorkingBranch {
			return fmt.Errorf("%w: feature list contains working branch %s", kniterrors.ErrMalformedConfig, f)
		}
		if f == c.BaseBranch {
			return fmt.Errorf("%w: feature list contains base branch %s", kniterrors.ErrMalformedConfig, f)
		}
		if seen[f] {
			return fmt.Errorf("%w: duplicate feature branch %s", kniterrors.ErrMalformedConfig, f)
		}
		seen[f] = true
	}
	return nil
}

// HasFeature reports whether branch is in the feature list
func (c KnitConfig) HasFeature(branch string) bool {
	return slices.Contains(c.FeatureBranches, branch)
}

// WithFeature returns a new config with branch appended to the feature
// list. Fails with ErrAlreadyInKnit when the branch is already part of the
// knit, including the working and base branches themselves.
func (c KnitConfig) WithFeature(branch string) (KnitConfig, error) {
	switch {
	case branch == c.WorkingBranch:
		return KnitConfig{}, fmt.Errorf("%w: %s is the working branch", kniterrors.ErrAlreadyInKnit, branch)
	case branch == c.BaseBranch:
		return KnitConfig{}, fmt.Errorf("%w: %s is the base branch", kniterrors.ErrAlreadyInKnit, branch)
	case c.HasFeature(branch):
		return KnitConfig{}, fmt.Errorf("%w: %s", kniterrors.ErrAlreadyInKnit, branch)
	}

	next := KnitConfig{
		WorkingBranch:   c.WorkingBranch,
		BaseBranch:      c.BaseBranch,
		FeatureBranches: append(slices.Clone(c.FeatureBranches), branch),
	}
	if err := next.Validate(); err != nil {
		return KnitConfig{}, err
	}
	return next, nil
}

// WithoutFeature returns a new config with branch removed from the feature
// list. Fails with ErrBranchNotInKnit when absent.
func (c KnitConfig) WithoutFeature(branch string) (KnitConfig, error) {
	if !c.HasFeature(branch) {
		return KnitConfig{}, fmt.Errorf("%w: %s", kniterrors.ErrBranchNotInKnit, branch)
	}

	features := make([]string, 0, len(c.FeatureBranches)-1)
	for _, f := range c.FeatureBranches {
		if f != branch {
			features = append(features, f)
		}
	}
	return KnitConfig{
		WorkingBranch:   c.WorkingBranch,
		BaseBranch:      c.BaseBranch,
		FeatureBranches: features,
	}, nil
}
