package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/randalmurphal/seqfilter/segment"
	"github.com/randalmurphal/seqfilter/truncate"
)

// progressEvery controls how often row progress is logged at debug level.
const progressEvery = 10000

// Options configures a Pipeline.
type Options struct {
	// Delimiter separates the two columns on input and output.
	Delimiter rune

	// MaxWords is the word budget applied to each side.
	MaxWords int

	// HasHeader copies the first record through unmodified.
	HasHeader bool

	// Workers is the number of concurrent segmentation workers.
	// Values below 2 process rows sequentially.
	Workers int

	// CRLF terminates output rows with \r\n instead of \n.
	CRLF bool

	// LazyQuotes tolerates bare quotes inside unquoted fields.
	LazyQuotes bool
}

// Record is one source/target pair.
type Record struct {
	Source string
	Target string
}

// Result is a filtered record with the selections that produced it.
type Result struct {
	Record Record
	Source truncate.Selection
	Target truncate.Selection
}

// Stats summarizes a completed run.
type Stats struct {
	Header    bool // a header row was copied through
	Rows      int  // data rows written
	Oversized int  // sides kept as a single sentence over budget
}

// Recorder observes each filtered record. Implementations are called from a
// single goroutine, in output order.
type Recorder interface {
	ObserveRecord(res Result)
}

// Pipeline filters delimited source/target records.
type Pipeline struct {
	seg      segment.Segmenter
	opts     Options
	log      logrus.FieldLogger
	recorder Recorder
}

// New creates a pipeline around a segmenter.
func New(seg segment.Segmenter, opts Options) (*Pipeline, error) {
	if seg == nil {
		return nil, fmt.Errorf("%w: segmenter is required", ErrConfig)
	}
	if !validDelimiter(opts.Delimiter) {
		return nil, fmt.Errorf("%w: invalid delimiter %q", ErrConfig, opts.Delimiter)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		seg:  seg,
		opts: opts,
		log:  logrus.StandardLogger(),
	}, nil
}

// WithLogger sets the logger used for progress messages.
func (p *Pipeline) WithLogger(log logrus.FieldLogger) *Pipeline {
	if log != nil {
		p.log = log
	}
	return p
}

// WithRecorder sets a recorder notified of every filtered record.
func (p *Pipeline) WithRecorder(r Recorder) *Pipeline {
	p.recorder = r
	return p
}

// Options returns the effective options.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Filter segments and trims one record: the source keeps its tail, the
// target its head.
func (p *Pipeline) Filter(rec Record) Result {
	src := truncate.Select(p.seg.Segment(rec.Source), p.opts.MaxWords, truncate.RetainTail)
	tgt := truncate.Select(p.seg.Segment(rec.Target), p.opts.MaxWords, truncate.RetainHead)
	return Result{
		Record: Record{Source: src.Text(), Target: tgt.Text()},
		Source: src,
		Target: tgt,
	}
}

// RunFiles opens in, creates out, and runs the pipeline between them.
func (p *Pipeline) RunFiles(ctx context.Context, in, out string) (Stats, error) {
	src, err := os.Open(in)
	if err != nil {
		return Stats{}, ioError("open", in, err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return Stats{}, ioError("create", out, err)
	}

	stats, runErr := p.Run(ctx, src, dst)
	if err := dst.Close(); err != nil && runErr == nil {
		runErr = ioError("close", out, err)
	}
	return stats, runErr
}

// Run reads records from r and writes filtered records to w. It stops at the
// first error; rows written before it are flushed to w.
//
// The header row is copied byte for byte. A blank line among the data rows
// is a zero-column row and fails with a FormatError.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, w io.Writer) (stats Stats, err error) {
	rows := newRowReader(r, p.opts)

	if p.opts.HasHeader {
		raw, rerr := rows.header()
		if errors.Is(rerr, io.EOF) {
			return stats, nil
		}
		if rerr != nil {
			return stats, rerr
		}
		if werr := p.writeHeader(w, raw); werr != nil {
			return stats, werr
		}
		stats.Header = true
	}

	cw := csv.NewWriter(w)
	cw.Comma = p.opts.Delimiter
	cw.UseCRLF = p.opts.CRLF

	defer func() {
		cw.Flush()
		if ferr := cw.Error(); ferr != nil && err == nil {
			err = ioError("write", "", ferr)
		}
	}()

	if p.opts.Workers > 1 {
		err = p.runParallel(ctx, rows, cw, &stats)
	} else {
		err = p.runSequential(ctx, rows, cw, &stats)
	}
	return stats, err
}

// writeHeader writes the raw header line, terminating it if the input did not.
func (p *Pipeline) writeHeader(w io.Writer, raw []byte) error {
	if !bytes.HasSuffix(raw, []byte{'\n'}) {
		if p.opts.CRLF {
			raw = append(raw, '\r', '\n')
		} else {
			raw = append(raw, '\n')
		}
	}
	if _, err := w.Write(raw); err != nil {
		return ioError("write", "", err)
	}
	return nil
}

func (p *Pipeline) runSequential(ctx context.Context, rows *rowReader, cw *csv.Writer, stats *Stats) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := rows.record()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.commit(cw, p.Filter(rec), stats); err != nil {
			return err
		}
	}
}

// commit writes one result and updates bookkeeping.
func (p *Pipeline) commit(cw *csv.Writer, res Result, stats *Stats) error {
	if err := cw.Write([]string{res.Record.Source, res.Record.Target}); err != nil {
		return ioError("write", "", err)
	}
	stats.Rows++
	if res.Source.Oversized {
		stats.Oversized++
	}
	if res.Target.Oversized {
		stats.Oversized++
	}
	if p.recorder != nil {
		p.recorder.ObserveRecord(res)
	}
	if stats.Rows%progressEvery == 0 {
		p.log.WithField("rows", stats.Rows).Debug("filtering progress")
	}
	return nil
}

func readError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return ioError("read", "", err)
}

// validDelimiter mirrors encoding/csv's own delimiter rules.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
