// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedColumns(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   []string
	}{
		{name: "modified", before: john, after: jane, want: []string{"name"}},
		{name: "identical", before: john, after: john},
		{
			name:   "added and removed",
			before: `{"a": 1, "b": 2}`,
			after:  `{"a": 1, "c": 3}`,
			want:   []string{"b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChangedColumns(tt.before, tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangedColumns_InvalidJSON(t *testing.T) {
	_, err := ChangedColumns("{", "{}")
	assert.Error(t, err)
}

func TestDelta(t *testing.T) {
	out, err := Delta(john, jane, false)
	require.NoError(t, err)
	assert.Contains(t, out, `-  "name": "John"`)
	assert.Contains(t, out, `+  "name": "Jane"`)
}

func TestPickerModel(t *testing.T) {
	now := time.Now()
	items := []SnapshotRef{
		{Name: "a", ModTime: now.Add(-2 * time.Hour)},
		{Name: "b", ModTime: now.Add(-time.Hour)},
		{Name: "c", ModTime: now},
	}

	key := func(s string) tea.Msg {
		switch s {
		case "enter":
			return tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			return tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	var m tea.Model = model{items: items}
	for _, k := range []string{"down", "down", " ", "enter", "up"} {
		m, _ = m.Update(key(k))
	}
	// Enter with a single selection does nothing.
	assert.Nil(t, m.(model).result())

	m, _ = m.Update(key(" "))
	assert.Contains(t, m.View(), "[x] b")
	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)

	got := m.(model).result()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func TestPickerModel_Quit(t *testing.T) {
	var m tea.Model = model{items: []SnapshotRef{{Name: "a"}, {Name: "b"}}}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, m.(model).result())
}
