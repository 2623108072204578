// Package labelfile provides label definition file reading for the labels2veracode application.
//
// This package contains the Reader which walks a label file line by line,
// sanitizing each raw line before it is handed to the importer.
package labelfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultFileName is the label file used when no path is given on the command line.
const DefaultFileName = "labels.txt"

// maxLineBytes caps how long a single input line may grow. bufio.Scanner
// defaults to 64KB per token, which a label carrying a few thousand values
// can exceed, and once a token overflows the limit the scanner stops for
// good instead of moving on to the next line.
const maxLineBytes = 1024 * 1024

// Reader yields the sanitized non-empty lines of a label file in input order.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	logger  *log.Entry

	line    string
	lineNum int
	skipped int
}

// NewReader creates a Reader over an arbitrary line source. Lines up to
// maxLineBytes are accepted.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{
		scanner: scanner,
		logger:  log.WithField("component", "label_reader"),
	}
}

// Open creates a Reader over the label file at path. The caller owns the
// returned Reader and must close it when done.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path) // #nosec G304 -- path is the operator-supplied label file
	if err != nil {
		return nil, fmt.Errorf("failed to open label file %s: %w", path, err)
	}

	reader := NewReader(f)
	reader.closer = f
	return reader, nil
}

// Next advances to the next line that is non-empty after sanitization. It
// returns false once the input is exhausted or a read error occurred.
func (r *Reader) Next() bool {
	for r.scanner.Scan() {
		r.lineNum++

		line := Sanitize(r.scanner.Text())
		if line == "" {
			r.skipped++
			r.logger.WithField("line_number", r.lineNum).Warn("Skipping line that is empty after sanitization")
			continue
		}

		r.line = line
		return true
	}
	return false
}

// Line returns the sanitized line the last call to Next advanced to.
func (r *Reader) Line() string {
	return r.line
}

// LineNumber returns the 1-based input line number of the current line.
func (r *Reader) LineNumber() int {
	return r.lineNum
}

// Skipped returns how many input lines sanitized down to nothing so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Err returns the first error encountered while reading the underlying source.
func (r *Reader) Err() error {
	return r.scanner.Err()
}

// Close closes the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Sanitize normalizes one raw input line so that downstream parsing only ever
// sees clean comma-separated tokens. The steps run in a fixed order: trim
// surrounding whitespace, drop characters outside tab/newline/carriage return
// and printable ASCII, remove all remaining spaces, then collapse doubled
// commas.
func Sanitize(raw string) string {
	// Trim leading and trailing whitespace
	s := strings.TrimSpace(raw)

	// Drop anything outside tab, newline, carriage return and printable ASCII
	s = strings.Map(func(c rune) rune {
		if c == '\t' || c == '\n' || c == '\r' {
			return c
		}
		if c < 0x20 || c > 0x7e {
			return -1
		}
		return c
	}, s)

	// Keys and values never contain spaces, so remove them outright
	s = strings.ReplaceAll(s, " ", "")

	// Collapse doubled commas left behind by removed characters. This is a
	// single pass, so each ",," pair becomes "," and ",,," comes out as ",,".
	s = strings.ReplaceAll(s, ",,", ",")

	return s
}
