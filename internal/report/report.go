// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwazzer/dbba/internal/differ"
)

// Change is how a record differs between the snapshots.
type Change uint8

const (
	Removed Change = iota
	Added
	Modified
)

func (c Change) String() string {
	switch c {
	case Removed:
		return "removed"
	case Added:
		return "added"
	case Modified:
		return "modified"
	}
	return fmt.Sprintf("change(%d)", uint8(c))
}

// Header describes the whole report.
type Header struct {
	GeneratedAt time.Time
	Database    string
	Tables      int
	Removed     int
	Added       int
	Modified    int
}

// Section is the before/after view of one changed record.
type Section struct {
	Table     string
	Identity  string
	Change    Change
	Before    string
	After     string
	Rendering differ.Rendering
	Columns   []string
}

// Sink receives a report.
type Sink interface {
	Start(h Header) error
	SectionTitle(table string) error
	DiffSection(s Section) error
	SectionEnd() error
	NoChanges() error
	Finish() error
}

// Formats lists the accepted --format values.
var Formats = []string{"html", "text", "json", "yaml"}

// New returns the sink for format writing to w.
func New(format string, w io.Writer, opts ...Option) (Sink, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch strings.ToLower(format) {
	case "", "html":
		return NewHTML(w), nil
	case "text":
		return NewText(w, o.color), nil
	case "json":
		return NewSummary(w, SummaryJSON), nil
	case "yaml", "yml":
		return NewSummary(w, SummaryYAML), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// Extension returns the file extension conventionally used for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "text":
		return "txt"
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	}
	return "html"
}

type options struct {
	color bool
}

// Option customizes New.
type Option func(*options)

// WithColor enables ANSI colors in the text sink.
func WithColor(color bool) Option {
	return func(o *options) { o.color = color }
}
