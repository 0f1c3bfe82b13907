package core

import "errors"

// Sentinel errors for each failure class of a report run. Callers wrap them
// with context via fmt.Errorf("...: %w", err); check with errors.Is.
var (
	// ErrInvalidEncoding is returned when the input is not valid UTF-8.
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")

	// ErrMalformedRow is returned when a data line is blank, has fewer than
	// four fields, or runs onto the next line through an open quote.
	ErrMalformedRow = errors.New("malformed row")

	// ErrNoRecords is returned when a statistic divides by the record count
	// of an input with no data rows.
	ErrNoRecords = errors.New("no candidate records")

	// ErrNoQACandidates is returned when averaging ages over zero QA records.
	ErrNoQACandidates = errors.New("no QA candidates")

	// ErrInvalidAge is returned when an age field has no leading integer token.
	ErrInvalidAge = errors.New("invalid age")

	// ErrExport is returned when the sorted list cannot be written.
	ErrExport = errors.New("export failed")

	// ErrArchive is returned when the run cannot be copied to the database.
	ErrArchive = errors.New("archive failed")
)
