package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "missing input",
			err:      fmt.Errorf("opening candidates: %w", &fs.PathError{Op: "open", Path: "x.csv", Err: fs.ErrNotExist}),
			wantCode: "FILE001",
		},
		{
			name:     "permission denied",
			err:      fmt.Errorf("opening candidates: %w", &fs.PathError{Op: "open", Path: "x.csv", Err: fs.ErrPermission}),
			wantCode: "FILE002",
		},
		{
			name:     "other read failure",
			err:      &fs.PathError{Op: "read", Path: "x.csv", Err: errors.New("is a directory")},
			wantCode: "FILE002",
		},
		{
			name:     "export wraps a missing directory",
			err:      fmt.Errorf("%w: %w", ErrExport, &fs.PathError{Op: "open", Path: "out.csv", Err: fs.ErrNotExist}),
			wantCode: "FILE003",
		},
		{
			name:     "invalid encoding",
			err:      fmt.Errorf("reading x.csv: line 2: %w", ErrInvalidEncoding),
			wantCode: "FILE004",
		},
		{
			name:     "malformed row",
			err:      fmt.Errorf("reading x.csv: line 4: %w", ErrMalformedRow),
			wantCode: "ROW001",
		},
		{
			name:     "no records",
			err:      fmt.Errorf("category percentages: %w", ErrNoRecords),
			wantCode: "AGG001",
		},
		{
			name:     "no QA candidates",
			err:      fmt.Errorf("QA average age: %w", ErrNoQACandidates),
			wantCode: "AGG002",
		},
		{
			name:     "invalid age",
			err:      fmt.Errorf("QA average age for %q: %w", "Ana", ErrInvalidAge),
			wantCode: "AGE001",
		},
		{
			name:     "archive",
			err:      fmt.Errorf("%w: %w", ErrArchive, errors.New("connection refused")),
			wantCode: "DB001",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("something unexpected"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && (got.Message == "" || got.Action == "") {
				t.Errorf("MapError() = %+v, want message and action", got)
			}
		})
	}
}

func TestMapError_RealOpenFailure(t *testing.T) {
	_, err := os.Open(filepath.Join(t.TempDir(), "nope.csv"))
	if got := MapError(err).Code; got != "FILE001" {
		t.Errorf("MapError(open missing).Code = %q, want FILE001", got)
	}
}

func TestErrorMatches_CodesAreUnique(t *testing.T) {
	seen := make(map[string]error)
	for _, m := range errorMatches {
		if prev, ok := seen[m.msg.Code]; ok {
			t.Errorf("code %s used for both %v and %v", m.msg.Code, prev, m.target)
		}
		seen[m.msg.Code] = m.target
	}
}
