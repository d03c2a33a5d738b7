// Package main is the entry point for the mnn CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/muninn/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
