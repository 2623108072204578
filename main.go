// Package main provides the entry point for the labels2veracode application.
//
// This application bulk-creates key/value label definitions in a Veracode
// security tenant, using cobra for the CLI, logrus for logging, and
// environment-based configuration management.
package main

import cmd "github.com/toozej/labels2veracode/cmd/labels2veracode"

// main is the entry point of the labels2veracode application.
// It delegates execution to the cmd package which handles all
// command-line interface functionality.
func main() {
	cmd.Execute()
}
