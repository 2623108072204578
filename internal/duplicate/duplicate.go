// Package duplicate tracks label keys observed during an import run.
//
// The availability endpoint is the authority on whether a key already exists
// in the tenant; this package only flags keys that appear more than once in
// the same input file, so operators can clean up their label lists.
package duplicate

import (
	log "github.com/sirupsen/logrus"
)

// Tracker records every label key observed in the current run together with
// the line it first appeared on.
type Tracker struct {
	firstSeen map[string]int
	logger    *log.Logger
}

// NewTracker creates a new in-run duplicate key tracker.
func NewTracker(logger *log.Logger) *Tracker {
	return &Tracker{
		firstSeen: make(map[string]int),
		logger:    logger,
	}
}

// Observe records one occurrence of a key. It returns the line the key first
// appeared on and whether this occurrence is a repeat. Keys are compared
// verbatim; no normalization happens here.
func (t *Tracker) Observe(key string, lineNumber int) (int, bool) {
	if first, ok := t.firstSeen[key]; ok {
		t.logger.WithFields(log.Fields{
			"component":   "duplicate_tracker",
			"operation":   "observe_key",
			"key":         key,
			"line_number": lineNumber,
			"first_seen":  first,
		}).Warn("Label key repeated in input file")
		return first, true
	}

	t.firstSeen[key] = lineNumber
	t.logger.WithFields(log.Fields{
		"component":   "duplicate_tracker",
		"operation":   "observe_key",
		"key":         key,
		"line_number": lineNumber,
	}).Debug("Recorded first occurrence of label key")
	return lineNumber, false
}

// Count returns the number of distinct keys observed so far.
func (t *Tracker) Count() int {
	return len(t.firstSeen)
}
