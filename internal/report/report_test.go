// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/iwazzer/dbba/internal/differ"
)

const (
	john = "{\n  \"id\": 1,\n  \"name\": \"John\"\n}"
	jane = "{\n  \"id\": 1,\n  \"name\": \"Jane\"\n}"
)

var generatedAt = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func modifiedSection(t *testing.T) Section {
	t.Helper()
	r, err := differ.Render(john, jane)
	require.NoError(t, err)
	return Section{
		Table:     "users",
		Identity:  "1",
		Change:    Modified,
		Before:    john,
		After:     jane,
		Rendering: r,
		Columns:   []string{"name"},
	}
}

// drive feeds sink one changed table, or no tables at all.
func drive(t *testing.T, sink Sink, sections ...Section) {
	t.Helper()
	hdr := Header{GeneratedAt: generatedAt, Database: "app_development"}
	if len(sections) > 0 {
		hdr.Tables = 1
		hdr.Modified = len(sections)
	}
	require.NoError(t, sink.Start(hdr))
	if len(sections) == 0 {
		require.NoError(t, sink.NoChanges())
	} else {
		require.NoError(t, sink.SectionTitle(sections[0].Table))
		for _, s := range sections {
			require.NoError(t, sink.DiffSection(s))
		}
		require.NoError(t, sink.SectionEnd())
	}
	require.NoError(t, sink.Finish())
}

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		want   any
	}{
		{"", &HTML{}},
		{"HTML", &HTML{}},
		{"text", &Text{}},
		{"json", &Summary{}},
		{"yml", &Summary{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			sink, err := New(tt.format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, sink)
		})
	}

	_, err := New("pdf", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "html", Extension(""))
	assert.Equal(t, "txt", Extension("text"))
	assert.Equal(t, "json", Extension("json"))
	assert.Equal(t, "yaml", Extension("yml"))
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	drive(t, NewHTML(&buf), modifiedSection(t))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Database Diff Report</title>")
	assert.Contains(t, out, "Generated at 2024-06-01 12:30:00")
	assert.Contains(t, out, "1 table: 1 modified")
	assert.Contains(t, out, `<h2 class="table-title">users</h2>`)
	assert.Contains(t, out, `<li class="del"><del>  &quot;name&quot;: &quot;John&quot;</del></li>`)
	assert.Contains(t, out, `<li class="ins"><ins>  &quot;name&quot;: &quot;Jane&quot;</ins></li>`)
	assert.Contains(t, out, `<h3 class="diff-header">Before</h3>`)
	assert.Contains(t, out, `.diff li.del`)
	assert.NotContains(t, out, "No Changes Detected")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestHTML_EscapesTableName(t *testing.T) {
	var buf bytes.Buffer
	sink := NewHTML(&buf)
	require.NoError(t, sink.SectionTitle("<script>"))
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestHTML_NoChanges(t *testing.T) {
	var buf bytes.Buffer
	drive(t, NewHTML(&buf))
	assert.Contains(t, buf.String(), "No Changes Detected")
	assert.NotContains(t, buf.String(), "table-section\">")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	drive(t, NewText(&buf, false), modifiedSection(t))
	out := buf.String()

	assert.Contains(t, out, "== users ==")
	assert.Contains(t, out, "@@ 1 modified (name)")
	assert.Contains(t, out, `-   "name": "John"`)
	assert.Contains(t, out, `+   "name": "Jane"`)
	assert.Contains(t, out, `    "id": 1,`)
	assert.Contains(t, out, "MODIFIED")
}

func TestText_NoChanges(t *testing.T) {
	var buf bytes.Buffer
	drive(t, NewText(&buf, false))
	assert.Contains(t, buf.String(), "No changes detected.")
	assert.NotContains(t, buf.String(), "MODIFIED")
}

func TestSummary_JSON(t *testing.T) {
	var buf bytes.Buffer
	added := Section{Table: "users", Identity: "2", Change: Added, After: john}
	drive(t, NewSummary(&buf, SummaryJSON), modifiedSection(t), added)

	var doc SummaryDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.True(t, doc.Changed)
	assert.Equal(t, "2024-06-01T12:30:00Z", doc.GeneratedAt)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "users", doc.Tables[0].Name)
	assert.Equal(t, []string{"2"}, doc.Tables[0].Added)
	assert.Equal(t, []string{}, doc.Tables[0].Removed)
	assert.Equal(t, []SummaryChanged{{ID: "1", Columns: []string{"name"}}}, doc.Tables[0].Modified)
}

func TestSummary_YAML(t *testing.T) {
	var buf bytes.Buffer
	drive(t, NewSummary(&buf, SummaryYAML))

	var doc SummaryDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.False(t, doc.Changed)
	assert.Equal(t, "app_development", doc.Database)
	assert.Empty(t, doc.Tables)
}

func TestSummary_SectionOutsideTable(t *testing.T) {
	s := NewSummary(&bytes.Buffer{}, SummaryJSON)
	require.NoError(t, s.Start(Header{}))
	assert.Error(t, s.DiffSection(Section{Identity: "1"}))
}
