package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// ConfigGet returns a git config value. Returns ("", false, nil) when the
// key is not set.
func (r *Repo) ConfigGet(ctx context.Context, key string) (string, bool, error) {
	value, err := r.runner.Run(ctx, "config", "--local", "--get", key)
	if err != nil {
		// git config --get exits 1 when the key is absent
		var cmdErr *kniterrors.GitCommandError
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get config %s: %w", key, err)
	}
	return value, true, nil
}

// ConfigSet sets a git config value
func (r *Repo) ConfigSet(ctx context.Context, key, value string) error {
	_, err := r.runner.Run(ctx, "config", "--local", key, value)
	if err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// ConfigUnset removes a git config value. Unsetting a missing key is not
// an error.
func (r *Repo) ConfigUnset(ctx context.Context, key string) error {
	_, err := r.runner.Run(ctx, "config", "--local", "--unset", key)
	if err != nil {
		var cmdErr *kniterrors.GitCommandError
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return nil
		}
		return fmt.Errorf("failed to unset config %s: %w", key, err)
	}
	return nil
}

// ConfigKeysByPrefix lists all config keys starting with prefix
func (r *Repo) ConfigKeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	pattern := "^" + regexpEscape(prefix)
	lines, err := r.runner.RunLines(ctx, "config", "--local", "--get-regexp", pattern)
	if err != nil {
		// exits 1 when nothing matches
		var cmdErr *kniterrors.GitCommandError
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list config keys: %w", err)
	}

	var keys []string
	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		keys = append(keys, fields[0])
	}
	return keys, nil
}

// regexpEscape escapes the characters git config treats specially in
// --get-regexp patterns
func regexpEscape(s string) string {
	var b strings.Builder
	for _, c := range s {
		if strings.ContainsRune(`.+*?()[]{}^$|\`, c) {
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
