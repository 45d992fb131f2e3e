// ABOUTME: CLI entry point for tfm: the file manager by default, plus bookmarks, jobs and themes subcommands
// ABOUTME: Version metadata is injected at build time with -ldflags -X

package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
