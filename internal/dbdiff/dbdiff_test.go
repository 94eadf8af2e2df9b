// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package dbdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwazzer/dbba/internal/report"
	"github.com/iwazzer/dbba/internal/snapshot"
	"github.com/iwazzer/dbba/internal/source"
	"github.com/iwazzer/dbba/internal/trigger"
)

type fakeSource struct {
	tables  map[string][]source.Row
	listErr error
	lists   int
}

func (f *fakeSource) ListTables(context.Context) ([]string, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]string, 0, len(f.tables))
	for name := range f.tables {
		out = append(out, name)
	}
	return out, nil
}

func (f *fakeSource) FetchRows(_ context.Context, table string) ([]source.Row, error) {
	rows, ok := f.tables[table]
	if !ok {
		return nil, fmt.Errorf("no such table %s", table)
	}
	return rows, nil
}

type funcTrigger func(ctx context.Context) error

func (f funcTrigger) Wait(ctx context.Context) error { return f(ctx) }

// recorder logs every sink call in order.
type recorder struct {
	calls    []string
	header   report.Header
	sections []report.Section
}

func (r *recorder) Start(h report.Header) error {
	r.header = h
	r.calls = append(r.calls, "start")
	return nil
}

func (r *recorder) SectionTitle(table string) error {
	r.calls = append(r.calls, "title:"+table)
	return nil
}

func (r *recorder) DiffSection(s report.Section) error {
	r.sections = append(r.sections, s)
	r.calls = append(r.calls, fmt.Sprintf("diff:%s:%s:%s", s.Table, s.Identity, s.Change))
	return nil
}

func (r *recorder) SectionEnd() error {
	r.calls = append(r.calls, "end")
	return nil
}

func (r *recorder) NoChanges() error {
	r.calls = append(r.calls, "nochanges")
	return nil
}

func (r *recorder) Finish() error {
	r.calls = append(r.calls, "finish")
	return nil
}

func user(id int64, name string) source.Row {
	return source.Row{
		{Name: "id", DeclaredType: "INT", Raw: id},
		{Name: "name", DeclaredType: "VARCHAR", Raw: name},
	}
}

func fixedClock() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestRun_ReportsChanges(t *testing.T) {
	src := &fakeSource{tables: map[string][]source.Row{
		"users":  {user(1, "alice"), user(2, "bob"), user(10, "carol")},
		"orders": {},
	}}
	trig := funcTrigger(func(context.Context) error {
		src.tables["users"] = []source.Row{user(1, "alice"), user(2, "bobby"), user(3, "dave")}
		return nil
	})
	rec := &recorder{}
	var progress bytes.Buffer

	changes, err := Run(context.Background(), src, trig, rec,
		WithProgress(&progress), WithClock(fixedClock), WithDatabase("app"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start",
		"title:users",
		"diff:users:2:modified",
		"diff:users:3:added",
		"diff:users:10:removed",
		"end",
		"finish",
	}, rec.calls)
	assert.Equal(t, report.Header{
		GeneratedAt: fixedClock(),
		Database:    "app",
		Tables:      1,
		Removed:     1,
		Added:       1,
		Modified:    1,
	}, rec.header)
	assert.True(t, changes.HasChanges())
	assert.Equal(t, 2, src.lists)
	assert.Equal(t, "now reading db...\nnow reading db...\ndone.\n", progress.String())

	modified := rec.sections[0]
	assert.Equal(t, []string{"name"}, modified.Columns)
	assert.Contains(t, modified.Before, `"bob"`)
	assert.Contains(t, modified.After, `"bobby"`)
	assert.True(t, modified.Rendering.Changed())

	added := rec.sections[1]
	assert.Empty(t, added.Before)
	assert.Nil(t, added.Columns)
}

func TestRun_NoChanges(t *testing.T) {
	src := &fakeSource{tables: map[string][]source.Row{"users": {user(1, "alice")}}}
	rec := &recorder{}

	changes, err := Run(context.Background(), src, funcTrigger(func(context.Context) error { return nil }), rec)
	require.NoError(t, err)
	assert.False(t, changes.HasChanges())
	assert.Equal(t, []string{"start", "nochanges", "finish"}, rec.calls)
}

func TestRun_TableCreatedDuringTrigger(t *testing.T) {
	src := &fakeSource{tables: map[string][]source.Row{"users": {user(1, "alice")}}}
	trig := funcTrigger(func(context.Context) error {
		src.tables["audit_logs"] = []source.Row{user(7, "login")}
		return nil
	})
	rec := &recorder{}

	_, err := Run(context.Background(), src, trig, rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "title:audit_logs", "diff:audit_logs:7:added", "end", "finish"}, rec.calls)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     *fakeSource
		trig    trigger.Trigger
		opts    []Option
		wantIs  error
		wantMsg string
	}{
		{
			name:   "list tables fails",
			src:    &fakeSource{listErr: errors.New("connection refused")},
			trig:   funcTrigger(func(context.Context) error { return nil }),
			wantIs: snapshot.ErrSourceUnavailable,
		},
		{
			name:   "fetch fails",
			src:    &fakeSource{tables: map[string][]source.Row{}},
			trig:   funcTrigger(func(context.Context) error { return nil }),
			opts:   []Option{WithTables("missing")},
			wantIs: snapshot.ErrSourceUnavailable,
		},
		{
			name:   "trigger aborted",
			src:    &fakeSource{tables: map[string][]source.Row{}},
			trig:   funcTrigger(func(context.Context) error { return trigger.ErrAborted }),
			wantIs: trigger.ErrAborted,
		},
		{
			name:    "trigger failed",
			src:     &fakeSource{tables: map[string][]source.Row{}},
			trig:    funcTrigger(func(context.Context) error { return errors.New("exit status 1") }),
			wantMsg: "trigger failed: exit status 1",
		},
		{
			name: "snapshot hook fails",
			src:  &fakeSource{tables: map[string][]source.Row{}},
			trig: funcTrigger(func(context.Context) error { return nil }),
			opts: []Option{WithSnapshotHook(func(context.Context, Phase, *snapshot.Snapshot) error {
				return errors.New("disk full")
			})},
			wantMsg: "before snapshot hook: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			_, err := Run(context.Background(), tt.src, tt.trig, rec, tt.opts...)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
			assert.Empty(t, rec.calls, "nothing is reported on failure")
		})
	}
}

func TestRun_FilterAndHook(t *testing.T) {
	src := &fakeSource{tables: map[string][]source.Row{
		"users":             {user(1, "alice")},
		"schema_migrations": {user(1, "20260101")},
	}}
	trig := funcTrigger(func(context.Context) error {
		src.tables["schema_migrations"] = []source.Row{user(1, "20260102")}
		return nil
	})

	var phases []Phase
	hook := func(_ context.Context, phase Phase, snap *snapshot.Snapshot) error {
		phases = append(phases, phase)
		assert.Equal(t, []string{"users"}, snap.Tables())
		return nil
	}
	rec := &recorder{}

	changes, err := Run(context.Background(), src, trig, rec,
		WithFilter("!=schema_migrations"), WithSnapshotHook(hook), WithParallel(4))
	require.NoError(t, err)
	assert.False(t, changes.HasChanges())
	assert.Equal(t, []Phase{Before, After}, phases)
}

func TestCompare_Ignore(t *testing.T) {
	mk := func(name string, updated string) *snapshot.Snapshot {
		rec := snapshot.Normalize(source.Row{
			{Name: "id", DeclaredType: "INT", Raw: int64(1)},
			{Name: "name", DeclaredType: "VARCHAR", Raw: name},
			{Name: "updated_at", DeclaredType: "DATETIME", Raw: updated},
		})
		return snapshot.New(fixedClock(), map[string][]snapshot.Record{"users": {rec}})
	}
	before := mk("alice", "2026-01-01 00:00:00")
	after := mk("alice", "2026-01-02 00:00:00")

	rec := &recorder{}
	_, err := Compare(before, after, rec, WithIgnore("updated_at"))
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "nochanges", "finish"}, rec.calls)

	rec = &recorder{}
	_, err = Compare(before, after, rec)
	require.NoError(t, err)
	require.Len(t, rec.sections, 1)
	assert.Equal(t, []string{"updated_at"}, rec.sections[0].Columns)
}
