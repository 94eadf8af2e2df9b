// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwazzer/dbba/internal/source"
)

type fakeFetcher struct {
	mu     sync.Mutex
	tables map[string][]source.Row
	fail   map[string]error
	calls  []string
}

func (f *fakeFetcher) FetchRows(_ context.Context, table string) ([]source.Row, error) {
	f.mu.Lock()
	f.calls = append(f.calls, table)
	f.mu.Unlock()

	if err, ok := f.fail[table]; ok {
		return nil, err
	}
	return f.tables[table], nil
}

func userRow(id int64, name string) source.Row {
	return source.Row{
		{Name: "id", DeclaredType: "INT", Raw: id},
		{Name: "name", DeclaredType: "VARCHAR", Raw: []byte(name)},
	}
}

func TestBuild(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	src := &fakeFetcher{tables: map[string][]source.Row{
		"users": {userRow(2, "Jane"), userRow(1, "John")},
		"posts": nil,
	}}

	for _, parallel := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("parallel=%d", parallel), func(t *testing.T) {
			snap, err := Build(context.Background(), src, []string{"users", "posts"},
				WithParallel(parallel), WithClock(func() time.Time { return at }))
			require.NoError(t, err)

			assert.Equal(t, at, snap.TakenAt)
			assert.Equal(t, []string{"posts", "users"}, snap.Tables())
			assert.True(t, snap.Has("posts"))
			assert.Empty(t, snap.Records("posts"))

			users := snap.Records("users")
			require.Len(t, users, 2)
			id, _ := IdentityOf(users[0])
			assert.Equal(t, "2", id)
			id, _ = IdentityOf(users[1])
			assert.Equal(t, "1", id)
			assert.Equal(t, 2, snap.RowCount())
		})
	}
}

func TestBuild_SourceUnavailable(t *testing.T) {
	boom := errors.New("connection reset")
	src := &fakeFetcher{
		tables: map[string][]source.Row{"users": {userRow(1, "John")}},
		fail:   map[string]error{"posts": boom},
	}

	snap, err := Build(context.Background(), src, []string{"users", "posts"}, WithParallel(2))
	assert.Nil(t, snap)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, boom)

	var sue *SourceUnavailableError
	require.ErrorAs(t, err, &sue)
	assert.Equal(t, "posts", sue.Table)
}

func TestSnapshot_NilSafe(t *testing.T) {
	var s *Snapshot
	assert.Empty(t, s.Tables())
	assert.Nil(t, s.Records("x"))
	assert.False(t, s.Has("x"))
	assert.Zero(t, s.RowCount())
}
