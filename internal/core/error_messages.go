package core

// error_messages.go maps run failures to diagnostic codes.
//
// Every failure aborts the run with exit status 1; the code only appears in
// the final log entry so an operator can tell the classes apart at a glance:
//
//	FILE001 - Input file not found
//	FILE002 - Input file could not be read
//	FILE003 - Sorted list could not be written
//	FILE004 - Input file is not valid UTF-8
//	ROW001  - A data line is blank, short, or spans lines
//	AGG001  - The file has no data rows
//	AGG002  - No QA candidates to average
//	AGE001  - An age field does not start with a whole number
//	DB001   - Archive to the database failed
//	ERR000  - Anything else
//
// Matching is done with errors.Is against the wrapped chain. The first
// matching entry wins, so more specific targets come first.

import (
	"errors"
	"io/fs"
)

// UserMessage provides diagnostic information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Diagnostic code
}

type errorMatch struct {
	target error
	msg    UserMessage
}

// errorMatches is ordered: export and archive wrap I/O errors of their own,
// so they must be checked before the generic file entries.
var errorMatches = []errorMatch{
	{
		target: ErrExport,
		msg: UserMessage{
			Message: "Sorted list could not be written",
			Action:  "Check that the output directory exists and is writable",
			Code:    "FILE003",
		},
	},
	{
		target: ErrArchive,
		msg: UserMessage{
			Message: "Archive to the database failed",
			Action:  "Check DATABASE_URL and that the database is reachable",
			Code:    "DB001",
		},
	},
	{
		target: fs.ErrNotExist,
		msg: UserMessage{
			Message: "Input file not found",
			Action:  "Place AppAcademy_Candidates.csv in the working directory",
			Code:    "FILE001",
		},
	},
	{
		target: fs.ErrPermission,
		msg: UserMessage{
			Message: "Input file could not be read",
			Action:  "Check the file permissions",
			Code:    "FILE002",
		},
	},
	{
		target: ErrInvalidEncoding,
		msg: UserMessage{
			Message: "Input file is not valid UTF-8",
			Action:  "Save the file as UTF-8 (spreadsheet exports often default to Latin-1)",
			Code:    "FILE004",
		},
	},
	{
		target: ErrMalformedRow,
		msg: UserMessage{
			Message: "A data line is blank, short, or spans lines",
			Action:  "Each line needs name;job;age;region with no open quotes",
			Code:    "ROW001",
		},
	},
	{
		target: ErrNoRecords,
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Add candidate lines below the header",
			Code:    "AGG001",
		},
	},
	{
		target: ErrNoQACandidates,
		msg: UserMessage{
			Message: "No QA candidates to average",
			Action:  "The QA average needs at least one job starting with QA",
			Code:    "AGG002",
		},
	},
	{
		target: ErrInvalidAge,
		msg: UserMessage{
			Message: "An age field does not start with a whole number",
			Action:  `Write ages as "<number> <unit>", e.g. "27 anos"`,
			Code:    "AGE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log entry for the underlying error",
	Code:    "ERR000",
}

// MapError converts an error to a diagnostic message.
// Returns the zero UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, m := range errorMatches {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}

	// Read failures other than missing/permission still belong to the input file
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return UserMessage{
			Message: "Input file could not be read",
			Action:  "Check that the path points to a readable file",
			Code:    "FILE002",
		}
	}

	return defaultMessage
}
