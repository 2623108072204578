// Package cmd provides the label import implementation for labels2veracode.
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/toozej/labels2veracode/internal/api"
	"github.com/toozej/labels2veracode/internal/importer"
	"github.com/toozej/labels2veracode/internal/labelfile"
	"github.com/toozej/labels2veracode/pkg/config"
)

// runImport executes the root command. It loads configuration, opens the
// label file and hands every sanitized line to the importer. Per-line API
// failures are reported and counted but never abort the run, so the process
// exits zero once the file has been worked through.
func runImport(cmd *cobra.Command, args []string) {
	// Load configuration. Missing credentials end the process here, before
	// any request is made.
	conf = config.GetEnvVars()

	// The --region flag wins over the configured region
	if region != "" {
		conf.Veracode.Region = region
		if _, err := conf.Veracode.ResolveBaseURL(); err != nil {
			log.WithError(err).Fatal("Invalid region flag")
			return
		}
	}

	path := resolveLabelPath(args)
	log.WithFields(log.Fields{
		"label_file": path,
		"region":     conf.Veracode.Region,
	}).Info("Starting label import")

	// Open the label file
	lines, err := labelfile.Open(path)
	if err != nil {
		log.WithError(err).Fatal("Failed to open label file")
		return
	}
	defer func() {
		if closeErr := lines.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close label file")
		}
	}()

	// Initialize the API client and importer using configuration
	client := api.NewVeracodeAPIClient(conf.Veracode)
	labelImporter := importer.NewImporter(client, log.StandardLogger())

	// Run the import
	stats, err := labelImporter.Run(lines)
	if err != nil {
		log.WithError(err).Error("Label import stopped before reaching the end of the file")
	}

	log.WithFields(log.Fields{
		"processed": stats.Processed,
		"created":   stats.Created,
		"existing":  stats.Existing,
		"failed":    stats.Failed,
		"skipped":   stats.Skipped,
	}).Info("Label import finished")
}

// resolveLabelPath returns the label file path from the positional arguments,
// falling back to the default file in the current directory.
func resolveLabelPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return labelfile.DefaultFileName
}
