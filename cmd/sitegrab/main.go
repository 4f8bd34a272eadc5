// Package main is the entry point for the sitegrab CLI.
package main

import (
	"os"

	"github.com/sitegrab/sitegrab/cmd/sitegrab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
