// Package main provides the entry point for the dedupe CLI tool.
package main

import (
	"github.com/peted77/hubspot-fun/cmd/dedupe/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
