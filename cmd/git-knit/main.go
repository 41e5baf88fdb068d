package main

import (
	"fmt"
	"os"

	"knit.dev/knit/internal/cli"
	kniterrors "knit.dev/knit/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(kniterrors.ExitCode(err))
	}
}
