package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// lineCounter counts the physical lines read from the underlying reader and
// optionally keeps a copy of the bytes.
type lineCounter struct {
	r        io.Reader
	n        int64
	newlines int
	last     byte
	capture  *bytes.Buffer
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.n += int64(n)
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
		if c.capture != nil {
			c.capture.Write(p[:n])
		}
	}
	return n, err
}

// lines returns the number of physical lines seen so far, counting an
// unterminated final line.
func (c *lineCounter) lines() int {
	if c.n > 0 && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}

// rowReader reads delimited rows and reports the blank lines that
// encoding/csv skips as zero-column rows.
type rowReader struct {
	cr  *csv.Reader
	src *lineCounter

	// next is the physical line where the next record should start.
	next int
}

func newRowReader(r io.Reader, opts Options) *rowReader {
	src := &lineCounter{r: r}
	cr := csv.NewReader(src)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = opts.LazyQuotes
	return &rowReader{cr: cr, src: src, next: 1}
}

// header reads the first record and returns its raw bytes, line terminator
// included. Blank lines before it are dropped.
func (rr *rowReader) header() ([]byte, error) {
	rr.src.capture = &bytes.Buffer{}
	defer func() { rr.src.capture = nil }()

	fields, err := rr.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, readError(err)
	}
	rr.advance(fields)

	raw := rr.src.capture.Bytes()[:rr.cr.InputOffset()]
	return bytes.TrimLeft(raw, "\r\n"), nil
}

// record reads one data row and checks its column count.
func (rr *rowReader) record() (Record, error) {
	fields, err := rr.cr.Read()
	if errors.Is(err, io.EOF) {
		if rr.src.lines() >= rr.next {
			return Record{}, &FormatError{Line: rr.next, Columns: 0}
		}
		return Record{}, err
	}
	if err != nil {
		return Record{}, readError(err)
	}

	if line, _ := rr.cr.FieldPos(0); line > rr.next {
		return Record{}, &FormatError{Line: rr.next, Columns: 0}
	}
	line := rr.next
	rr.advance(fields)

	if len(fields) != 2 {
		return Record{}, &FormatError{Line: line, Columns: len(fields)}
	}
	return Record{Source: fields[0], Target: fields[1]}, nil
}

// advance moves next past the physical lines spanned by fields.
func (rr *rowReader) advance(fields []string) {
	last := len(fields) - 1
	line, _ := rr.cr.FieldPos(last)
	rr.next = line + strings.Count(fields[last], "\n") + 1
}
