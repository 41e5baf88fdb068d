// Package actions implements the business logic behind each CLI command.
// Each action takes an options struct carrying the engine and logger so it
// can be driven from tests without cobra.
package actions
