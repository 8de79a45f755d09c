// Package main is the entry point for the spicy CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/eykd/spicy-go/cmd"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", Version, Commit, BuildDate)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
