// Package main is the entry point for the logiquant CLI.
package main

import (
	"os"

	"logiquant/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
