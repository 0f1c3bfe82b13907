package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExportHeader is the literal first line of every exported file.
const ExportHeader = `"Nome";"Vaga";"Idade";"Estado"`

// Export writes records to path, replacing any existing file. The file is
// flushed and closed on every path; a failed write may leave it truncated.
func Export(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrExport, path, cerr)
		}
	}()

	if err := Encode(f, records); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrExport, path, err)
	}
	return nil
}

// Encode writes the export header and one fully quoted row per record.
// encoding/csv only quotes fields that need it, so quoting is done here.
func Encode(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(ExportHeader)
	bw.WriteByte('\n')

	for _, r := range records {
		for i, field := range r.Fields() {
			if i > 0 {
				bw.WriteByte(Delimiter)
			}
			writeQuoted(bw, field)
		}
		bw.WriteByte('\n')
	}

	// bufio.Writer errors are sticky, so Flush reports any earlier failure
	return bw.Flush()
}

// writeQuoted writes s wrapped in double quotes, doubling embedded quotes.
func writeQuoted(w *bufio.Writer, s string) {
	w.WriteByte('"')
	w.WriteString(strings.ReplaceAll(s, `"`, `""`))
	w.WriteByte('"')
}
