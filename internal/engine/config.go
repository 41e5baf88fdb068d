package engine

import (
	"fmt"
	"strings"

	kniterrors "knit.dev/knit/internal/errors"
)

// The persisted form of a KnitConfig is a single colon-joined string:
//
//	working:base:feature1:feature2:...
//
// An empty feature list serializes with a trailing empty segment
// (working:base:) so the record always has at least three segments in
// canonical form. The parser also accepts the two-segment form.

// Serialize encodes the config to its canonical string form
func (c KnitConfig) Serialize() string {
	parts := append([]string{c.WorkingBranch, c.BaseBranch}, c.FeatureBranches...)
	s := strings.Join(parts, ":")
	if len(c.FeatureBranches) == 0 {
		s += ":"
	}
	return s
}

// ParseConfig decodes a persisted knit config string
func ParseConfig(value string) (KnitConfig, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return KnitConfig{}, fmt.Errorf("%w: %q", kniterrors.ErrMalformedConfig, value)
	}

	features := make([]string, 0, len(parts)-2)
	for _, p := range parts[2:] {
		if p != "" {
			features = append(features, p)
		}
	}

	cfg := KnitConfig{
		WorkingBranch:   parts[0],
		BaseBranch:      parts[1],
		FeatureBranches: features,
	}
	if err := cfg.Validate(); err != nil {
		return KnitConfig{}, err
	}
	return cfg, nil
}
