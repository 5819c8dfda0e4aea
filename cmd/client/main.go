// Package main is the account keeper command-line client.
package main

import (
	"cmp"
	"os"

	"github.com/atinyakov/accountkeeper/cmd/client/commands"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	if err := commands.Execute(cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")); err != nil {
		os.Exit(1)
	}
}
