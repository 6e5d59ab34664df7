// Package errs defines the error taxonomy shared by the pipeline stages and
// the statistics engine.
//
// Two conditions are modelled as typed errors:
//
//   - SchemaError: a required column is missing or has the wrong type. Fatal
//     for the stage that raised it.
//   - EmptyRangeError: a requested year filter left no rows for one specific
//     report. Recoverable; the caller skips that report and continues.
//
// "Insufficient history" (no data a decade before the latest year) is a
// recognized outcome, not an error: the change report comes back empty and a
// log entry records why.
package errs

import (
	"fmt"
	"strings"
)

// SchemaError indicates that a table does not satisfy the column contract of
// the operation that inspected it.
type SchemaError struct {
	// Op names the operation that detected the problem.
	Op string
	// Columns lists the column names involved: for a construction-time check
	// this is the full required set, for a single-column operation just the
	// offending column.
	Columns []string
	// Reason describes what was wrong (absent, wrong type, unparsable header).
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return fmt.Sprintf("%s: schema error: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: schema error: %s (columns: %s)",
		e.Op, e.Reason, strings.Join(e.Columns, ", "))
}

// NewSchemaError creates a SchemaError for the given operation.
func NewSchemaError(op, reason string, columns ...string) *SchemaError {
	return &SchemaError{Op: op, Reason: reason, Columns: columns}
}

// EmptyRangeError indicates that restricting a report to a year range left no
// rows. It carries the requested bounds so callers can report them verbatim.
type EmptyRangeError struct {
	From int
	To   int
}

// Error implements the error interface.
func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no data available for the requested year interval (%d, %d)", e.From, e.To)
}

// NewEmptyRangeError creates an EmptyRangeError carrying the requested bounds.
func NewEmptyRangeError(from, to int) *EmptyRangeError {
	return &EmptyRangeError{From: from, To: to}
}
