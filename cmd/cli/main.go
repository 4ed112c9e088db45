// Package main is the entry point for the retail-analytics CLI.
package main

import (
	"os"

	"retail-analytics/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
