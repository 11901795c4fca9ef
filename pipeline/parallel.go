package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

// job is one data row travelling through the worker pool.
type job struct {
	rec  Record
	done chan Result
}

// runParallel fans rows out to Workers goroutines and commits results in
// input order. Every job queued for commit has already been handed to a
// worker, so the committer never waits on a row that will not complete.
func (p *Pipeline) runParallel(ctx context.Context, rows *rowReader, cw *csv.Writer, stats *Stats) error {
	g, ctx := errgroup.WithContext(ctx)

	work := make(chan *job)
	order := make(chan *job, p.opts.Workers*2)

	g.Go(func() error {
		defer close(order)
		defer close(work)
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
			j := &job{rec: rec, done: make(chan Result, 1)}
			select {
			case work <- j:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case order <- j:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	for range p.opts.Workers {
		g.Go(func() error {
			for j := range work {
				j.done <- p.Filter(j.rec)
			}
			return nil
		})
	}

	g.Go(func() error {
		for j := range order {
			if err := p.commit(cw, <-j.done, stats); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}
