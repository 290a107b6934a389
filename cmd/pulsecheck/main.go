// Package main provides the pulsecheck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulsecheck",
		Short: "Customer health scoring for SaaS portfolios",
		Long: `Pulsecheck scores customer accounts from raw product activity: logins,
feature adoption, support load, invoice timeliness, and API usage trends.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newSeedCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
