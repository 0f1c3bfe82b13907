package core

// streaming.go provides reader wrappers that check candidate files
// before they reach the CSV decoder:
//
//   - BOMSkippingReader: drops a leading UTF-8 BOM written by spreadsheet exports
//   - UTF8Validator: rejects input that is not valid UTF-8
//   - CountingReader: tracks bytes and lines read
//
// Use WrapForDecoding to apply all transforms in the correct order.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		// A short or failed peek means no complete BOM; the error, if any,
		// resurfaces on the read below.
		if head, err := b.r.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = b.r.Discard(len(utf8BOM))
		}
	}
	return b.r.Read(p)
}

// UTF8Validator wraps an io.Reader and fails with ErrInvalidEncoding at the
// first byte that is not valid UTF-8. Bytes before it are passed through.
type UTF8Validator struct {
	r       *bufio.Reader
	line    int    // 1-based line of the next rune
	pending []byte // tail of a rune that did not fit in the caller's buffer
	err     error  // deferred error, returned once pending is drained
}

// NewUTF8Validator creates a new validating reader.
func NewUTF8Validator(r io.Reader) *UTF8Validator {
	return &UTF8Validator{r: bufio.NewReader(r), line: 1}
}

// Read implements io.Reader.
func (v *UTF8Validator) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(v.pending) > 0 {
			c := copy(p[n:], v.pending)
			v.pending = v.pending[c:]
			n += c
			continue
		}

		if v.err != nil {
			break
		}

		r, size, err := v.r.ReadRune()
		if err != nil {
			v.err = err
			break
		}

		if r == utf8.RuneError && size == 1 {
			v.err = fmt.Errorf("line %d: %w", v.line, ErrInvalidEncoding)
			break
		}
		if r == '\n' {
			v.line++
		}

		var buf [utf8.UTFMax]byte
		w := utf8.EncodeRune(buf[:], r)
		c := copy(p[n:], buf[:w])
		n += c
		if c < w {
			v.pending = append(v.pending[:0], buf[c:w]...)
		}

		// Don't block on the underlying reader once we have something to return
		if v.r.Buffered() == 0 {
			break
		}
	}

	if n > 0 {
		return n, nil
	}
	return 0, v.err
}

// CountingReader wraps an io.Reader to track bytes and newlines read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
	newlines  int
	last      byte
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.BytesRead += int64(n)
		r.newlines += bytes.Count(p[:n], []byte{'\n'})
		r.last = p[n-1]
	}
	return n, err
}

// Lines returns the number of lines read so far. A final line without a
// trailing newline still counts.
func (r *CountingReader) Lines() int {
	if r.BytesRead > 0 && r.last != '\n' {
		return r.newlines + 1
	}
	return r.newlines
}

// WrapForDecoding wraps a reader with byte counting, BOM skipping and
// UTF-8 validation.
//
// The order matters:
// 1. Counting sees the raw file bytes
// 2. BOM must be stripped before any decoding
// 3. UTF-8 validation happens last
func WrapForDecoding(r io.Reader) (io.Reader, *CountingReader) {
	counter := NewCountingReader(r)
	return NewUTF8Validator(NewBOMSkippingReader(counter)), counter
}
