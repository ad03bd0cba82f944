// Package main provides the kalc CLI entry point.
package main

import (
	"os"

	"github.com/kalclabs/kalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
