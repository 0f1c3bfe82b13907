package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/candidates/internal/logging"
)

// Delimiter separates fields in both the source and exported files.
const Delimiter = ';'

// Load reads the candidate file at path. The first line is a header and is
// discarded; every other line becomes one Record.
// No records are returned on failure.
func Load(ctx context.Context, path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening candidates: %w", err)
	}
	defer f.Close()

	r, counter := WrapForDecoding(f)

	records, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug("candidates loaded",
		"path", path,
		"rows", len(records),
		"bytes", counter.BytesRead,
	)

	return records, nil
}

// Decode parses semicolon-delimited candidate rows from r, skipping the
// header. Quoted fields are unquoted, so files written by Export decode to
// the same values. Fields past the fourth are ignored.
//
// Every line after the header must hold exactly one record: blank lines and
// quoted fields running onto the next line fail with ErrMalformedRow.
func Decode(r io.Reader) ([]Record, error) {
	lines := NewCountingReader(r)
	cr := csv.NewReader(lines)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1 // column count is checked per line below
	cr.LazyQuotes = true

	var records []Record
	next := 2 // line 1 is the header, whatever it holds
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		// csv skips empty lines, so a blank line 1 leaves the first
		// record on line 2 where it is data, not header
		line, _ := cr.FieldPos(0)
		if line == 1 {
			continue
		}
		if line != next {
			return nil, fmt.Errorf("line %d: %w: blank line", next, ErrMalformedRow)
		}
		next = line + 1

		if spansLines(row) {
			return nil, fmt.Errorf("line %d: %w: quoted field runs past the end of the line",
				line, ErrMalformedRow)
		}
		if len(row) < recordFields {
			return nil, fmt.Errorf("line %d: %w: has %d fields, expected %d",
				line, ErrMalformedRow, len(row), recordFields)
		}

		records = append(records, Record{
			Name:   row[0],
			Job:    row[1],
			Age:    row[2],
			Region: row[3],
		})
	}

	// Trailing blank lines produce no csv record
	if last := next - 1; lines.Lines() > last {
		return nil, fmt.Errorf("line %d: %w: blank line", last+1, ErrMalformedRow)
	}

	return records, nil
}

// spansLines reports whether a quoted field in row held a line break.
func spansLines(row []string) bool {
	for _, field := range row {
		if strings.ContainsAny(field, "\r\n") {
			return true
		}
	}
	return false
}
