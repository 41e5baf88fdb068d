// Package git provides low-level Git operations for git-knit.
//
// It wraps git command execution and go-git queries behind an explicit
// *Repo handle:
//   - Branch management (create, delete, checkout, force-move)
//   - Merge and cherry-pick with typed conflict errors
//   - Stash push/pop and working tree state
//   - Ancestry queries (commit ranges, merge detection)
//   - Git config as a key-value store
//
// This package should be the only place where direct git commands are executed.
package git
