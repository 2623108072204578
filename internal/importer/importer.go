// Package importer provides the label import workflow for the labels2veracode application.
//
// The Importer walks the sanitized lines of a label file, checks each label
// key against the tenant and creates the labels that do not exist yet. A
// failure on one line never stops the run; it is reported and the next line
// is processed.
package importer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/toozej/labels2veracode/internal/duplicate"
	"github.com/toozej/labels2veracode/internal/labelfile"
	"github.com/toozej/labels2veracode/internal/types"
)

// LineStatus classifies the outcome of processing one input line
type LineStatus string

const (
	// LineStatusCreated means the label was created in the tenant
	LineStatusCreated LineStatus = "created"
	// LineStatusExisting means the label key was already taken
	LineStatusExisting LineStatus = "existing"
	// LineStatusFailed means the availability check or creation did not succeed
	LineStatusFailed LineStatus = "failed"
	// LineStatusSkipped means the line carried nothing to create
	LineStatusSkipped LineStatus = "skipped"
)

// Stats summarizes one import run
type Stats struct {
	Processed int
	Created   int
	Existing  int
	Failed    int
	Skipped   int
}

// Importer drives the create-if-absent workflow for label definitions
type Importer struct {
	api    types.LabelService
	dupes  *duplicate.Tracker
	logger *logrus.Logger
	out    io.Writer
}

// NewImporter creates a new label importer
func NewImporter(api types.LabelService, logger *logrus.Logger) *Importer {
	return &Importer{
		api:    api,
		dupes:  duplicate.NewTracker(logger),
		logger: logger,
		out:    os.Stdout,
	}
}

// ParseLine splits a sanitized line into a label key and its values. The
// first comma-separated token is the key, every following token is a value.
// Values keep their input order, duplicates included.
func ParseLine(line string) types.LabelSpec {
	tokens := strings.Split(line, ",")
	return types.LabelSpec{
		Key:    tokens[0],
		Values: tokens[1:],
	}
}

// BuildRequest assembles the creation payload for one label spec. The value
// list is always non-nil so it encodes as a JSON array even when empty.
func BuildRequest(spec types.LabelSpec) types.CreateLabelRequest {
	values := make([]types.LabelValue, 0, len(spec.Values))
	for _, v := range spec.Values {
		values = append(values, types.LabelValue{Value: v})
	}

	return types.CreateLabelRequest{
		Key:             spec.Key,
		Type:            types.LabelType,
		Description:     "",
		AvailableValues: values,
		Settings: types.LabelSettings{
			ValueRequired:    false,
			ValuesManagement: false,
		},
	}
}

// ProcessLine runs the create-if-absent workflow for one sanitized line and
// reports the outcome on the console.
func (i *Importer) ProcessLine(line string) LineStatus {
	spec := ParseLine(line)

	fmt.Fprintf(i.out, "\n🏷️  Processing label: %s\n", spec.String())
	i.logger.WithFields(logrus.Fields{
		"component": "importer",
		"operation": "process_line",
		"key":       spec.Key,
		"values":    len(spec.Values),
	}).Info("Processing label definition")

	if !spec.IsValid() {
		i.logger.WithFields(logrus.Fields{
			"component": "importer",
			"line":      line,
		}).Warn("Line has no label key, skipping")
		fmt.Fprintf(i.out, "   ⏭️  No label key on this line, skipping\n")
		return LineStatusSkipped
	}

	existence, err := i.api.CheckKeyAvailable(spec.Key)
	if err != nil {
		i.logger.WithFields(logrus.Fields{
			"component": "importer",
			"key":       spec.Key,
			"error":     err.Error(),
		}).Error("Availability check failed")
		fmt.Fprintf(i.out, "   ❌ Availability check failed for %s: %s\n", spec.Key, err.Error())
		return LineStatusFailed
	}

	switch existence.Availability {
	case types.AvailabilityTaken:
		i.logger.WithFields(logrus.Fields{
			"component": "importer",
			"key":       spec.Key,
		}).Info("Label key already exists, skipping creation")
		fmt.Fprintf(i.out, "   ⏭️  Key already exists: %s\n", spec.Key)
		return LineStatusExisting
	case types.AvailabilityUnknown:
		i.logger.WithFields(logrus.Fields{
			"component": "importer",
			"key":       spec.Key,
			"response":  existence.Raw,
		}).Warn("Unexpected availability response from API")
		fmt.Fprintf(i.out, "   ❓ Unexpected availability response for %s: %s\n", spec.Key, existence.Raw)
		return LineStatusFailed
	}

	// Key is available, create the label
	outcome, err := i.api.CreateLabel(BuildRequest(spec))
	if err != nil {
		i.logger.WithFields(logrus.Fields{
			"component": "importer",
			"key":       spec.Key,
			"error":     err.Error(),
		}).Error("Label creation request failed")
		fmt.Fprintf(i.out, "   ❌ Failed to create label %s: %s\n", spec.Key, err.Error())
		return LineStatusFailed
	}
	if !outcome.Success {
		i.logger.WithFields(logrus.Fields{
			"component":   "importer",
			"key":         spec.Key,
			"status_code": outcome.StatusCode,
		}).Error("API rejected label creation")
		fmt.Fprintf(i.out, "   ❌ Failed to create label %s (status %d): %s\n", spec.Key, outcome.StatusCode, outcome.Body)
		return LineStatusFailed
	}

	i.logger.WithFields(logrus.Fields{
		"component": "importer",
		"key":       spec.Key,
		"values":    len(spec.Values),
	}).Info("Successfully created label")
	if len(spec.Values) > 0 {
		fmt.Fprintf(i.out, "   ✅ Created label %s with values: %s\n", spec.Key, strings.Join(spec.Values, ", "))
	} else {
		fmt.Fprintf(i.out, "   ✅ Created label %s with no predefined values\n", spec.Key)
	}
	return LineStatusCreated
}

// Run processes every line from the reader in input order and prints a final
// summary. The returned error only reflects a failure to read the input; API
// failures on individual lines are counted in the stats instead.
func (i *Importer) Run(lines *labelfile.Reader) (Stats, error) {
	var stats Stats

	for lines.Next() {
		// Flag keys the input file lists more than once. The availability
		// check still decides what happens to the line.
		if spec := ParseLine(lines.Line()); spec.IsValid() {
			i.dupes.Observe(spec.Key, lines.LineNumber())
		}

		status := i.ProcessLine(lines.Line())
		stats.Processed++

		switch status {
		case LineStatusCreated:
			stats.Created++
		case LineStatusExisting:
			stats.Existing++
		case LineStatusFailed:
			stats.Failed++
		case LineStatusSkipped:
			stats.Skipped++
		}
	}
	stats.Skipped += lines.Skipped()

	// Display import summary
	fmt.Fprintf(i.out, "\n📊 Import Summary:\n")
	fmt.Fprintf(i.out, "   • Lines processed: %d\n", stats.Processed)
	fmt.Fprintf(i.out, "   • Labels created: %d\n", stats.Created)
	fmt.Fprintf(i.out, "   • Already existing: %d\n", stats.Existing)
	fmt.Fprintf(i.out, "   • Failed: %d\n", stats.Failed)
	fmt.Fprintf(i.out, "   • Skipped: %d\n", stats.Skipped)
	fmt.Fprintln(i.out)

	if err := lines.Err(); err != nil {
		i.logger.WithError(err).Error("Failed to read label file to the end")
		return stats, fmt.Errorf("failed to read label file: %w", err)
	}

	return stats, nil
}
