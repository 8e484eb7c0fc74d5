// Package main is the entry point for recipe-planner CLI.
package main

import (
	"os"

	"recipe-planner/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
