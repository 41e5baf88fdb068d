// Package engine implements the core of git-knit: the knit configuration
// store, the local-commit classifier and the rebuild engine.
//
// The engine talks to git exclusively through the GitRunner interface so
// that every piece can be exercised against an in-memory fake as well as a
// real repository.
package engine
