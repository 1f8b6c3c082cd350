// Package main is the entry point for the clammy bar.
package main

import (
	"os"

	"github.com/spinualexandru/clammy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
