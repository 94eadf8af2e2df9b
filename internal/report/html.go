// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/iwazzer/dbba/internal/differ"
	"github.com/iwazzer/dbba/internal/version"
)

//go:embed assets/report.css assets/report.html.tmpl
var assets embed.FS

var (
	reportCSS  = mustRead("assets/report.css")
	reportTmpl = template.Must(template.ParseFS(assets, "assets/report.html.tmpl"))
)

func mustRead(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// HTML writes a self contained HTML document with side by side diffs.
type HTML struct {
	w io.Writer
}

// NewHTML returns an HTML sink writing to w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

func (h *HTML) exec(name string, data any) error {
	if err := reportTmpl.ExecuteTemplate(h.w, name, data); err != nil {
		return fmt.Errorf("failed to write html %s: %w", name, err)
	}
	return nil
}

func (h *HTML) Start(hdr Header) error {
	return h.exec("start", map[string]any{
		"CSS":         template.CSS(reportCSS),
		"GeneratedAt": hdr.GeneratedAt.Format("2006-01-02 15:04:05"),
		"Database":    hdr.Database,
		"Summary":     summaryLine(hdr),
	})
}

func (h *HTML) SectionTitle(table string) error {
	return h.exec("title", table)
}

func (h *HTML) DiffSection(s Section) error {
	return h.exec("section", map[string]any{
		"Identity": s.Identity,
		"Change":   s.Change.String(),
		"Columns":  strings.Join(s.Columns, ", "),
		// differ.HTML escapes every line itself.
		"Left":  template.HTML(differ.HTML(s.Rendering.Left)),
		"Right": template.HTML(differ.HTML(s.Rendering.Right)),
	})
}

func (h *HTML) SectionEnd() error {
	return h.exec("end", nil)
}

func (h *HTML) NoChanges() error {
	return h.exec("nochanges", nil)
}

func (h *HTML) Finish() error {
	return h.exec("finish", map[string]any{"Version": version.Version})
}

// summaryLine renders the totals, e.g. "2 tables: 1 removed, 1,204 added".
func summaryLine(h Header) string {
	if h.Tables == 0 {
		return ""
	}
	var parts []string
	for _, p := range []struct {
		n    int
		name string
	}{{h.Removed, "removed"}, {h.Added, "added"}, {h.Modified, "modified"}} {
		if p.n > 0 {
			parts = append(parts, humanize.Comma(int64(p.n))+" "+p.name)
		}
	}
	noun := "tables"
	if h.Tables == 1 {
		noun = "table"
	}
	return fmt.Sprintf("%s %s: %s", humanize.Comma(int64(h.Tables)), noun, strings.Join(parts, ", "))
}
