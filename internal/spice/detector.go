// Package spice detects and invokes git-spice, an optional external tool
// for restacking dependent branches.
//
// git-spice installs itself as `gs`, the same binary name as GhostScript,
// so presence of the binary alone proves nothing; the help output is used
// to tell them apart.
package spice

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DetectTimeout bounds the detection probe. Detection runs on every
// restack, so it must stay short.
const DetectTimeout = 10 * time.Second

// Availability is the outcome of probing for git-spice.
type Availability int

const (
	// Absent means no usable gs binary was found
	Absent Availability = iota
	// Available means the gs binary is git-spice
	Available
	// Indeterminate means a gs binary exists but its output matched
	// neither git-spice nor GhostScript
	Indeterminate
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Absent:
		return "absent"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Detector probes for and invokes git-spice.
type Detector struct {
	workingDir string
}

// NewDetector creates a Detector running in workingDir
func NewDetector(workingDir string) *Detector {
	return &Detector{workingDir: workingDir}
}

// Detect probes the gs binary and classifies it
func (d *Detector) Detect(ctx context.Context) Availability {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, DetectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gs", "--help")
	if d.workingDir != "" {
		cmd.Dir = d.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return Absent
		}
		// The binary ran but exited non-zero; classify by output anyway.
	}

	return classifyHelpOutput(stdout.String() + stderr.String())
}

// classifyHelpOutput decides what kind of gs binary produced the help text
func classifyHelpOutput(output string) Availability {
	out := strings.ToLower(output)
	switch {
	case strings.Contains(out, "git-spice"):
		return Available
	case strings.Contains(out, "ghostscript"):
		return Absent
	default:
		return Indeterminate
	}
}

// RestackIfAvailable runs `gs stack restack` when git-spice is installed.
// Returns (false, nil) when the tool is absent or indeterminate; an error
// is only returned for an actual invocation failure after presence was
// confirmed.
func (d *Detector) RestackIfAvailable(ctx context.Context) (bool, error) {
	if d.Detect(ctx) != Available {
		return false, nil
	}

	cmd := exec.CommandContext(ctx, "gs", "stack", "restack")
	if d.workingDir != "" {
		cmd.Dir = d.workingDir
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return false, err
	}
	return true, nil
}
