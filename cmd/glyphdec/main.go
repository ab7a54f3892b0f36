// Package main provides the glyphdec command-line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/glyphdec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
