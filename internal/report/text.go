// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/iwazzer/dbba/internal/config"
	"github.com/iwazzer/dbba/internal/differ"
)

// Text writes a unified, optionally colored, diff for terminals followed by
// a per table summary.
type Text struct {
	w      io.Writer
	styles textStyles

	header Header
	table  string
	counts []tableCount
}

type tableCount struct {
	name                     string
	removed, added, modified int
}

type textStyles struct {
	title, deleted, inserted, equal, label lipgloss.Style
}

// NewText returns a Text sink. Colors are picked from the colors.* config
// keys or from the terminal background.
func NewText(w io.Writer, colored bool) *Text {
	s := textStyles{
		title:    lipgloss.NewStyle().Bold(true),
		deleted:  lipgloss.NewStyle(),
		inserted: lipgloss.NewStyle(),
		equal:    lipgloss.NewStyle(),
		label:    lipgloss.NewStyle().Faint(true),
	}
	if colored {
		title, del, ins := getColors("colors")
		s.title = s.title.Foreground(title)
		s.deleted = s.deleted.Foreground(del)
		s.inserted = s.inserted.Foreground(ins)
	}
	return &Text{w: w, styles: s}
}

func (t *Text) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(t.w, format, args...)
	return err
}

func (t *Text) Start(h Header) error {
	t.header = h
	line := "Database Diff Report, generated at " + h.GeneratedAt.Format("2006-01-02 15:04:05")
	if h.Database != "" {
		line += " for " + h.Database
	}
	return t.printf("%s\n", t.styles.title.Render(line))
}

func (t *Text) SectionTitle(table string) error {
	t.table = table
	t.counts = append(t.counts, tableCount{name: table})
	return t.printf("\n%s\n", t.styles.title.Render("== "+table+" =="))
}

func (t *Text) DiffSection(s Section) error {
	if n := len(t.counts); n > 0 {
		switch s.Change {
		case Removed:
			t.counts[n-1].removed++
		case Added:
			t.counts[n-1].added++
		case Modified:
			t.counts[n-1].modified++
		}
	}

	label := fmt.Sprintf("@@ %s %s", s.Identity, s.Change)
	if len(s.Columns) > 0 {
		label += " (" + strings.Join(s.Columns, ", ") + ")"
	}
	if err := t.printf("%s\n", t.styles.label.Render(label)); err != nil {
		return err
	}

	r := s.Rendering
	for i := range r.Left {
		left, right := r.Left[i], r.Right[i]
		var line string
		switch left.Op {
		case differ.Deleted:
			line = t.styles.deleted.Render("- " + strings.TrimSuffix(left.Text, "\n"))
		case differ.Inserted:
			line = t.styles.inserted.Render("+ " + strings.TrimSuffix(right.Text, "\n"))
		case differ.Equal:
			line = t.styles.equal.Render("  " + strings.TrimSuffix(left.Text, "\n"))
		}
		if err := t.printf("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func (t *Text) SectionEnd() error {
	t.table = ""
	return nil
}

func (t *Text) NoChanges() error {
	return t.printf("\nNo changes detected. The database state remained unchanged during the operation.\n")
}

func (t *Text) Finish() error {
	if len(t.counts) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(t.counts))
	for _, c := range t.counts {
		rows = append(rows, []string{
			c.name,
			humanize.Comma(int64(c.removed)),
			humanize.Comma(int64(c.added)),
			humanize.Comma(int64(c.modified)),
		})
	}

	headerStyle := t.styles.title
	cellStyle := lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
	tbl := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2).Align(lipgloss.Right)
			}
			return style
		}).
		Headers("TABLE", "REMOVED", "ADDED", "MODIFIED").
		BorderHeader(false).
		Rows(rows...)

	return t.printf("\n%s\n", tbl)
}

// getColors returns the title, deleted and inserted colors. Explicit
// colors.title, colors.deleted and colors.inserted config values win;
// otherwise a default is picked for the terminal background.
func getColors(key string) (title, deleted, inserted color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	title = resolveColor(key+".title", "#b08800", "#f6be00")
	deleted = resolveColor(key+".deleted", "#bb0000", "#ff6b6b")
	inserted = resolveColor(key+".inserted", "#008800", "#90ee90")

	return
}
