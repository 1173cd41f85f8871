// Package main provides the entry point for the maestro CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Viniciuscarvalho/maestro/cmd/maestro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
