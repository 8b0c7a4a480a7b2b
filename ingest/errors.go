package ingest

import "fmt"

// Diagnostic is a single malformed-record complaint, carrying enough
// context (record index, offending field) to locate the problem in the
// analyzer output file.
type Diagnostic struct {
	RecordIndex int
	Message     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d: %s", d.RecordIndex, d.Message)
}

// Errors is the main error collector for ingestion, mirroring
// common.Errors: callers accumulate every malformed record they
// encounter instead of aborting on the first one, then ask once whether
// anything went wrong.
type Errors struct {
	diagnostics []Diagnostic
}

// NewErrors returns a new, empty Errors collector.
func NewErrors() *Errors {
	return &Errors{}
}

// Report records a diagnostic for the record at index idx.
func (e *Errors) Report(idx int, format string, args ...interface{}) {
	e.diagnostics = append(e.diagnostics, Diagnostic{
		RecordIndex: idx,
		Message:     fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns every diagnostic reported so far.
func (e *Errors) Diagnostics() []Diagnostic {
	return e.diagnostics[:]
}

// HasErrors reports whether any diagnostic was reported.
func (e *Errors) HasErrors() bool {
	return len(e.diagnostics) > 0
}

// Error implements the error interface so an *Errors with at least one
// diagnostic can be returned directly from Ingest.
func (e *Errors) Error() string {
	s := ""
	for i, d := range e.diagnostics {
		if i > 0 {
			s += "\n"
		}
		s += d.String()
	}
	return s
}
