// Package version provides version information for the labels2veracode application.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information. Populated at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Version returns the version string set at build time.
func Version() string {
	return version
}

// Command returns the version subcommand that prints version and build info.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
			fmt.Fprintf(cmd.OutOrStdout(), "Built by: %s\n", builtBy)
		},
	}
}
