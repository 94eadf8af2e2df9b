// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// SnapshotRef describes a stored snapshot offered for selection.
type SnapshotRef struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// SelectSnapshots lets the user mark two snapshots. The result keeps the
// order of items, so with items sorted oldest first the first element is
// the before snapshot. It is nil if the user quits.
func SelectSnapshots(items []SnapshotRef, opts ...tea.ProgramOption) ([]SnapshotRef, error) {
	p := tea.NewProgram(model{items: items}, opts...)
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("snapshot picker failed: %w", err)
	}
	return m.(model).result(), nil
}

type model struct {
	items    []SnapshotRef
	cursor   int
	selected []int
	done     bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if i := slices.Index(m.selected, m.cursor); i >= 0 {
				m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
			} else if len(m.selected) < 2 {
				m.selected = append(slices.Clone(m.selected), m.cursor)
			}
		case "enter":
			if len(m.selected) == 2 {
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Select two snapshots:\n\n"
	for i, ref := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.Contains(m.selected, i) {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %s %8s %s\n", cursor, mark, ref.Name,
			humanize.Bytes(uint64(ref.Size)), ref.ModTime.Format("2006-01-02T15:04:05Z07:00"))
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func (m model) result() []SnapshotRef {
	if !m.done {
		return nil
	}
	idx := slices.Sorted(slices.Values(m.selected))
	out := make([]SnapshotRef, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.items[i])
	}
	return out
}
