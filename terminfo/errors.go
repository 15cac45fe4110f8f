package terminfo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadMagic reports a buffer that does not start with a known terminfo magic number
	ErrBadMagic = errors.New("terminfo: bad magic number")

	// ErrTruncated reports a declared length running past the end of the buffer
	ErrTruncated = errors.New("terminfo: truncated entry")

	// ErrMalformedExtended reports an extended section that could not be decoded.
	// It never fails Decode; the table keeps its legacy capabilities.
	ErrMalformedExtended = errors.New("terminfo: malformed extended section")

	// ErrNotFound reports that no candidate path held a description for the terminal
	ErrNotFound = errors.New("terminfo: terminal description not found")

	// ErrInvalidName reports a terminal name that cannot name a database file
	ErrInvalidName = errors.New("terminfo: invalid terminal name")
)

// Section names used in DecodeError
const (
	SectionHeader   = "header"
	SectionNames    = "names"
	SectionBools    = "booleans"
	SectionNumbers  = "numbers"
	SectionStrings  = "strings"
	SectionTable    = "string table"
	SectionExtended = "extended"
)

// DecodeError locates a structural decode failure
type DecodeError struct {
	Section string
	Offset  int
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", e.Err, e.Section, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// LookupError reports a terminal name that could not be resolved to a description
type LookupError struct {
	Name     string
	Searched []string
	Err      error
}

func (e *LookupError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("%v: %q", e.Err, e.Name)
	}
	return fmt.Sprintf("%v: %q (searched %s)", e.Err, e.Name, strings.Join(e.Searched, ", "))
}

func (e *LookupError) Unwrap() error { return e.Err }

// CorruptionWarning records a string offset that points outside the string table.
// The capability reads as absent.
type CorruptionWarning struct {
	Capability StringCapability
	Offset     int
	TableSize  int
}

func (w CorruptionWarning) String() string {
	return fmt.Sprintf("%s: offset %d outside string table of %d bytes", w.Capability, w.Offset, w.TableSize)
}
