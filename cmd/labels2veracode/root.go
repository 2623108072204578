// Package cmd provides command-line interface functionality for the labels2veracode application.
//
// This package implements the root command and manages the command-line interface
// using the cobra library. It handles configuration, logging setup, and command
// execution for the labels2veracode application.
//
// The package integrates with several components:
//   - Configuration management through pkg/config
//   - Core functionality through internal/importer
//   - Manual pages through pkg/man
//   - Version information through pkg/version
//
// Example usage:
//
//	import "github.com/toozej/labels2veracode/cmd/labels2veracode"
//
//	func main() {
//		cmd.Execute()
//	}
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/toozej/labels2veracode/pkg/config"
	"github.com/toozej/labels2veracode/pkg/man"
	"github.com/toozej/labels2veracode/pkg/version"
)

// conf holds the application configuration loaded from environment variables.
// It is populated when the import runs and can be modified by command-line flags.
var (
	conf config.Config
	// debug controls the logging level for the application.
	// When true, debug-level logging is enabled through logrus.
	debug bool
	// region overrides the VERACODE_REGION environment variable when set.
	region string
)

// rootCmd defines the base command for the labels2veracode CLI application.
// It serves as the entry point for all command-line operations and establishes
// the application's structure, flags, and subcommands.
//
// The command accepts one optional positional argument, the path of the label
// file to import. Without it, labels.txt in the current directory is used.
var rootCmd = &cobra.Command{
	Use:              "labels2veracode [label-file]",
	Short:            "Bulk-create key/value labels in a Veracode security tenant",
	Long:             `labels2veracode is a command-line application that reads comma-separated label definitions from a file and creates each one in a Veracode security tenant. Every line has the form "key,value1,value2,..."; keys that already exist in the tenant are skipped, and a failure on one line never aborts the rest of the run.`,
	Args:             cobra.MaximumNArgs(1),
	PersistentPreRun: rootCmdPreRun,
	Run:              runImport,
}

// rootCmdPreRun performs setup operations before executing the root command.
// This function is called before both the root command and any subcommands.
//
// It configures the logging level based on the debug flag. When debug mode
// is enabled, logrus is set to DebugLevel for detailed logging output.
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Command-line arguments
func rootCmdPreRun(cmd *cobra.Command, args []string) {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
}

// Execute starts the command-line interface execution.
// This is the main entry point called from main.go to begin command processing.
//
// If command execution fails, it prints the error message to stdout and
// exits the program with status code 1. This follows standard Unix conventions
// for command-line tool error handling.
//
// Example:
//
//	func main() {
//		cmd.Execute()
//	}
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

// init initializes the command-line interface during package loading.
//
// This function performs the following setup operations:
//   - Defines persistent flags that are available to all commands
//   - Sets up command-specific flags for the root command
//   - Registers subcommands (man pages and version information)
//
// The debug flag (-d, --debug) enables debug-level logging and is persistent,
// meaning it's inherited by all subcommands. The region flag (-r, --region)
// targets a specific Veracode platform region for this run only.
func init() {
	// create rootCmd-level flags
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug-level logging")
	rootCmd.Flags().StringVarP(&region, "region", "r", "", "Veracode region to target: us, eu or fedramp (overrides VERACODE_REGION)")

	// add sub-commands
	rootCmd.AddCommand(
		man.NewManCmd(),
		version.Command(),
	)
}
