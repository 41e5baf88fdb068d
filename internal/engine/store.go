package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// configPrefix is the reserved git config namespace for knit state. Each
// working branch owns one entry: knit.<working>.knot = <serialized config>.
// The three-part key keeps branch names with slashes legal as a config
// subsection.
const (
	configPrefix = "knit."
	configSuffix = ".knot"
)

// Store persists knit configurations in the repository's git config.
type Store struct {
	git GitRunner
}

// NewStore creates a Store over the given git runner
func NewStore(git GitRunner) *Store {
	return &Store{git: git}
}

func configKey(working string) string {
	return configPrefix + working + configSuffix
}

// Init persists a new knit configuration. Fails with ErrAlreadyConfigured
// when one exists for the working branch, unless force is set.
func (s *Store) Init(ctx context.Context, cfg KnitConfig, force bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !force {
		_, exists, err := s.git.ConfigGet(ctx, configKey(cfg.WorkingBranch))
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s (use --force to overwrite)", kniterrors.ErrAlreadyConfigured, cfg.WorkingBranch)
		}
	}

	return s.git.ConfigSet(ctx, configKey(cfg.WorkingBranch), cfg.Serialize())
}

// Get loads the knit configuration for a working branch
func (s *Store) Get(ctx context.Context, working string) (KnitConfig, error) {
	value, exists, err := s.git.ConfigGet(ctx, configKey(working))
	if err != nil {
		return KnitConfig{}, err
	}
	if !exists {
		return KnitConfig{}, fmt.Errorf("%w: no knit configured for %s", kniterrors.ErrNotConfigured, working)
	}
	return ParseConfig(value)
}

// AddFeature appends a feature branch to the knit and persists the result
func (s *Store) AddFeature(ctx context.Context, working, branch string) (KnitConfig, error) {
	cfg, err := s.Get(ctx, working)
	if err != nil {
		return KnitConfig{}, err
	}
	next, err := cfg.WithFeature(branch)
	if err != nil {
		return KnitConfig{}, err
	}
	if err := s.git.ConfigSet(ctx, configKey(working), next.Serialize()); err != nil {
		return KnitConfig{}, err
	}
	return next, nil
}

// RemoveFeature removes a feature branch from the knit and persists the result
func (s *Store) RemoveFeature(ctx context.Context, working, branch string) (KnitConfig, error) {
	cfg, err := s.Get(ctx, working)
	if err != nil {
		return KnitConfig{}, err
	}
	next, err := cfg.WithoutFeature(branch)
	if err != nil {
		return KnitConfig{}, err
	}
	if err := s.git.ConfigSet(ctx, configKey(working), next.Serialize()); err != nil {
		return KnitConfig{}, err
	}
	return next, nil
}

// Delete removes the knit configuration for a working branch
func (s *Store) Delete(ctx context.Context, working string) error {
	if _, err := s.Get(ctx, working); err != nil {
		return err
	}
	return s.git.ConfigUnset(ctx, configKey(working))
}

// ListWorkingBranches returns all configured working branches, sorted
func (s *Store) ListWorkingBranches(ctx context.Context) ([]string, error) {
	keys, err := s.git.ConfigKeysByPrefix(ctx, configPrefix)
	if err != nil {
		return nil, err
	}

	branches := make([]string, 0, len(keys))
	for _, key := range keys {
		if !strings.HasPrefix(key, configPrefix) || !strings.HasSuffix(key, configSuffix) {
			continue
		}
		branches = append(branches, key[len(configPrefix):len(key)-len(configSuffix)])
	}
	sort.Strings(branches)
	return branches, nil
}

// ResolveWorkingBranch determines which working branch a command targets.
// An explicit name must be configured. Otherwise the current branch is used
// when it is itself a configured working branch; failing that, a single
// configured working branch is unambiguous. Anything else fails with
// ErrAmbiguousWorkingBranch.
func (s *Store) ResolveWorkingBranch(ctx context.Context, explicit string) (string, error) {
	branches, err := s.ListWorkingBranches(ctx)
	if err != nil {
		return "", err
	}

	if explicit != "" {
		for _, b := range branches {
			if b == explicit {
				return explicit, nil
			}
		}
		return "", fmt.Errorf("%w: no knit configured for %s", kniterrors.ErrNotConfigured, explicit)
	}

	current, err := s.git.CurrentBranch(ctx)
	if err == nil {
		for _, b := range branches {
			if b == current {
				return current, nil
			}
		}
	}

	if len(branches) == 1 {
		return branches[0], nil
	}

	return "", fmt.Errorf("%w: use --working-branch or checkout a working branch", kniterrors.ErrAmbiguousWorkingBranch)
}
