/*
Package main provides the CLI entry point for herald.
*/
package main

import (
	"os"

	"github.com/heraldmail/herald/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
