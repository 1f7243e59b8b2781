// Package main is the entry point for the rowdata CLI.
package main

import (
	"os"

	"github.com/jmylchreest/rowdata/cmd/rowdata/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
