// Package main is the operator CLI for interestd
package main

import (
	"os"

	"github.com/spf13/cobra"

	"interestd/internal/platform/config"
)

// root config; every subcommand reads its own prefix from it
var conf = config.New()

var rootCmd = &cobra.Command{
	Use:           "interestctl",
	Short:         "Operator tooling for interestd",
	Long:          "interestctl manages encryption keys, dev tokens, the database schema, and can emit test engagement.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
