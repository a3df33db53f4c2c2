// Package main is the entry point for the utilfee CLI.
package main

import (
	"os"

	"utilfee/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
