// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/source"
)

// Fetcher reads all rows of one table.
type Fetcher interface {
	FetchRows(ctx context.Context, table string) ([]source.Row, error)
}

type buildOptions struct {
	parallel int
	now      func() time.Time
}

// Option customizes Build.
type Option func(*buildOptions)

// WithParallel fetches up to n tables at once. Values below 2 fetch
// sequentially.
func WithParallel(n int) Option {
	return func(o *buildOptions) { o.parallel = n }
}

// WithClock overrides the time source used for TakenAt.
func WithClock(now func() time.Time) Option {
	return func(o *buildOptions) { o.now = now }
}

// Build reads every table and normalizes its rows. It either returns a
// snapshot of all tables or a SourceUnavailableError and no snapshot.
func Build(ctx context.Context, src Fetcher, tables []string, opts ...Option) (*Snapshot, error) {
	o := buildOptions{parallel: 1, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallel < 1 {
		o.parallel = 1
	}
	takenAt := o.now()
	log.Debugf("build: tables=%d parallel=%d", len(tables), o.parallel)

	// Each goroutine owns exactly one slot.
	slots := make([][]Record, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallel)
	for i, table := range tables {
		g.Go(func() error {
			rows, err := src.FetchRows(gctx, table)
			if err != nil {
				return &SourceUnavailableError{Table: table, Err: err}
			}
			recs := make([]Record, len(rows))
			for j, row := range rows {
				recs[j] = Normalize(row)
			}
			slots[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Debugf("build failed: %v", err)
		return nil, err
	}

	result := make(map[string][]Record, len(tables))
	for i, table := range tables {
		result[table] = slots[i]
	}
	snap := New(takenAt, result)
	log.Debugf("build: %s rows in %d tables", humanize.Comma(int64(snap.RowCount())), len(tables))

	return snap, nil
}
