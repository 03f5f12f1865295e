// Package stdf implements the two-pass STDF aggregation engine: the
// test metadata accumulator that fixes the column layout, and the row
// assembly state machine that builds one row per tested device.
package stdf

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for protocol violations. Checked with errors.Is().
var (
	// ErrPartAlreadyOpen indicates a part-start for a (head, site)
	// pair that already has an open part.
	ErrPartAlreadyOpen = errors.New("stdf: part already open")

	// ErrPartNotOpen indicates a result or part-end for a (head, site)
	// pair with no open part.
	ErrPartNotOpen = errors.New("stdf: no open part")

	// ErrUnknownTest indicates a result record referencing a test
	// number absent from the column layout, i.e. a test never seen
	// during the metadata pass.
	ErrUnknownTest = errors.New("stdf: result for unknown test number")

	// ErrKeyMismatch indicates per-key accumulator state was fed a
	// record for a different (test, site, head) key.
	ErrKeyMismatch = errors.New("stdf: record key does not match entry")
)

// ProtocolError reports a fatal ordering or consistency violation in
// the record stream. These abort the parse: accepting them would
// corrupt row identity.
type ProtocolError struct {
	// Op names the operation that detected the violation.
	Op string

	// HeadNum and SiteNum identify the lane at fault.
	HeadNum uint8
	SiteNum uint8

	// TestNum is the offending test number, when relevant.
	TestNum uint32

	// Err is the sentinel classifying the violation.
	Err error
}

// Error returns a formatted error message.
func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("%v: %s head %d site %d", e.Err, e.Op, e.HeadNum, e.SiteNum)
	if e.TestNum != 0 || errors.Is(e.Err, ErrUnknownTest) {
		msg += fmt.Sprintf(" test %d", e.TestNum)
	}
	return msg
}

// Unwrap returns the classifying sentinel.
func (e *ProtocolError) Unwrap() error { return e.Err }

// MissingRecordsError reports required top-level records that never
// appeared anywhere in the file. It is raised once, at the end of the
// parse, naming every absent record kind.
type MissingRecordsError struct {
	Missing []string
}

// Error returns a formatted error message.
func (e *MissingRecordsError) Error() string {
	return fmt.Sprintf("stdf: required records missing: %s", strings.Join(e.Missing, ", "))
}
