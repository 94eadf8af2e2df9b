// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dbdiff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/iwazzer/dbba/internal/detect"
	"github.com/iwazzer/dbba/internal/differ"
	"github.com/iwazzer/dbba/internal/filters"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/report"
	"github.com/iwazzer/dbba/internal/snapshot"
	"github.com/iwazzer/dbba/internal/source"
	"github.com/iwazzer/dbba/internal/trigger"
)

// Phase names the snapshot handed to a SnapshotHook.
type Phase string

const (
	Before Phase = "before"
	After  Phase = "after"
)

// SnapshotHook is called with each snapshot right after it is built.
type SnapshotHook func(ctx context.Context, phase Phase, snap *snapshot.Snapshot) error

type options struct {
	tables   []string
	filter   string
	ignore   []string
	parallel int
	database string
	progress io.Writer
	now      func() time.Time
	hook     SnapshotHook
}

// Option customizes Run and Compare.
type Option func(*options)

// WithTables limits the snapshot to the named tables.
func WithTables(tables ...string) Option {
	return func(o *options) { o.tables = append(o.tables, tables...) }
}

// WithFilter applies a --filter specification to the table list.
func WithFilter(spec string) Option {
	return func(o *options) { o.filter = spec }
}

// WithIgnore leaves columns out of the comparison.
func WithIgnore(columns ...string) Option {
	return func(o *options) { o.ignore = append(o.ignore, columns...) }
}

// WithParallel fetches up to n tables at once.
func WithParallel(n int) Option {
	return func(o *options) { o.parallel = n }
}

// WithDatabase names the database in the report header.
func WithDatabase(name string) Option {
	return func(o *options) { o.database = name }
}

// WithProgress sets where progress lines go. Defaults to io.Discard.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSnapshotHook registers hook, e.g. to persist snapshots.
func WithSnapshotHook(hook SnapshotHook) Option {
	return func(o *options) { o.hook = hook }
}

func newOptions(opts []Option) options {
	o := options{parallel: 1, progress: io.Discard, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run audits src around trig and writes the result to sink. A trigger error
// aborts the run before the second snapshot.
func Run(ctx context.Context, src source.Source, trig trigger.Trigger, sink report.Sink, opts ...Option) (detect.DatabaseChanges, error) {
	o := newOptions(opts)

	before, err := o.take(ctx, src, Before)
	if err != nil {
		return detect.DatabaseChanges{}, err
	}

	if err := trig.Wait(ctx); err != nil {
		if errors.Is(err, trigger.ErrAborted) {
			return detect.DatabaseChanges{}, err
		}
		return detect.DatabaseChanges{}, fmt.Errorf("trigger failed: %w", err)
	}

	after, err := o.take(ctx, src, After)
	if err != nil {
		return detect.DatabaseChanges{}, err
	}

	changes, err := compare(before, after, sink, o)
	if err != nil {
		return changes, err
	}
	fmt.Fprintln(o.progress, "done.")
	return changes, nil
}

// Take builds one snapshot of src. The snapshot hook sees it as Before.
func Take(ctx context.Context, src source.Source, opts ...Option) (*snapshot.Snapshot, error) {
	return newOptions(opts).take(ctx, src, Before)
}

// take lists and filters the tables, then builds one snapshot. Tables are
// listed again for each phase so that tables created in between are seen.
func (o options) take(ctx context.Context, src source.Source, phase Phase) (*snapshot.Snapshot, error) {
	fmt.Fprintln(o.progress, "now reading db...")

	tables := o.tables
	if len(tables) == 0 {
		var err error
		tables, err = src.ListTables(ctx)
		if err != nil {
			return nil, &snapshot.SourceUnavailableError{Table: "*", Err: err}
		}
	}
	tables = filters.FilterTables(tables, o.filter)
	log.Debugf("%s: %d tables", phase, len(tables))

	snap, err := snapshot.Build(ctx, src, tables,
		snapshot.WithParallel(o.parallel), snapshot.WithClock(o.now))
	if err != nil {
		return nil, err
	}

	if o.hook != nil {
		if err := o.hook(ctx, phase, snap); err != nil {
			return nil, fmt.Errorf("%s snapshot hook: %w", phase, err)
		}
	}
	return snap, nil
}

// Compare writes the changes between two snapshots to sink.
func Compare(before, after *snapshot.Snapshot, sink report.Sink, opts ...Option) (detect.DatabaseChanges, error) {
	return compare(before, after, sink, newOptions(opts))
}

func compare(before, after *snapshot.Snapshot, sink report.Sink, o options) (detect.DatabaseChanges, error) {
	changes := detect.DetectSnapshots(before, after, detect.WithIgnore(o.ignore...))
	changed := changes.Changed()

	removed, added, modified := changes.Totals()
	hdr := report.Header{
		GeneratedAt: o.now(),
		Database:    o.database,
		Tables:      len(changed),
		Removed:     removed,
		Added:       added,
		Modified:    modified,
	}
	if err := sink.Start(hdr); err != nil {
		return changes, err
	}

	if len(changed) == 0 {
		if err := sink.NoChanges(); err != nil {
			return changes, err
		}
		return changes, sink.Finish()
	}

	for _, tc := range changed {
		if err := sink.SectionTitle(tc.Table); err != nil {
			return changes, err
		}
		for _, sec := range sections(tc) {
			if err := sink.DiffSection(sec); err != nil {
				return changes, err
			}
		}
		if err := sink.SectionEnd(); err != nil {
			return changes, err
		}
	}
	return changes, sink.Finish()
}

// sections renders every changed record of tc in identity order.
func sections(tc detect.TableChanges) []report.Section {
	kinds := map[string]report.Change{}
	for _, id := range tc.Removed {
		kinds[id] = report.Removed
	}
	for _, id := range tc.Added {
		kinds[id] = report.Added
	}
	for _, id := range tc.Modified {
		kinds[id] = report.Modified
	}

	ids := slices.Clone(tc.Changed())
	detect.SortIdentities(ids)

	out := make([]report.Section, 0, len(ids))
	for _, id := range ids {
		before, after := tc.Before(id), tc.After(id)
		r, err := differ.Render(before, after)
		if err != nil {
			log.WithError(err).Errorf("table %s record %s: showing unaligned diff", tc.Table, id)
		}

		sec := report.Section{
			Table:     tc.Table,
			Identity:  id,
			Change:    kinds[id],
			Before:    before,
			After:     after,
			Rendering: r,
		}
		if sec.Change == report.Modified && before != "" && after != "" {
			cols, err := differ.ChangedColumns(before, after)
			if err != nil {
				log.WithError(err).Debug("changed columns unavailable")
			}
			sec.Columns = cols
		}
		out = append(out, sec)
	}
	return out
}
