// Package main is the entry point for the salesledger CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/salesledger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
