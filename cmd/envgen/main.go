// Package main is the entry point for the envgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-envgen/internal/cli"
	envgenerrors "github.com/goliatone/go-envgen/pkg/errors"
)

func main() {
	rootCmd := cli.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		if envgenerrors.IsUserError(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
