// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v2"
)

// SummaryFormat selects the encoding of a Summary sink.
type SummaryFormat uint8

const (
	SummaryJSON SummaryFormat = iota
	SummaryYAML
)

// SummaryDoc is the machine readable report.
type SummaryDoc struct {
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Database    string         `json:"database,omitempty" yaml:"database,omitempty"`
	Changed     bool           `json:"changed" yaml:"changed"`
	Tables      []SummaryTable `json:"tables" yaml:"tables"`
}

// SummaryTable lists the changed identities of one table.
type SummaryTable struct {
	Name     string           `json:"name" yaml:"name"`
	Removed  []string         `json:"removed" yaml:"removed"`
	Added    []string         `json:"added" yaml:"added"`
	Modified []SummaryChanged `json:"modified" yaml:"modified"`
}

// SummaryChanged is a modified record and the columns that changed.
type SummaryChanged struct {
	ID      string   `json:"id" yaml:"id"`
	Columns []string `json:"columns" yaml:"columns"`
}

// Summary collects the report and encodes it on Finish.
type Summary struct {
	w      io.Writer
	format SummaryFormat
	doc    SummaryDoc
}

// NewSummary returns a Summary sink.
func NewSummary(w io.Writer, format SummaryFormat) *Summary {
	return &Summary{w: w, format: format}
}

// Doc returns what has been collected so far.
func (s *Summary) Doc() SummaryDoc {
	return s.doc
}

func (s *Summary) Start(h Header) error {
	s.doc = SummaryDoc{
		GeneratedAt: h.GeneratedAt.Format(time.RFC3339),
		Database:    h.Database,
		Tables:      []SummaryTable{},
	}
	return nil
}

func (s *Summary) SectionTitle(table string) error {
	s.doc.Changed = true
	s.doc.Tables = append(s.doc.Tables, SummaryTable{
		Name:     table,
		Removed:  []string{},
		Added:    []string{},
		Modified: []SummaryChanged{},
	})
	return nil
}

func (s *Summary) DiffSection(sec Section) error {
	if len(s.doc.Tables) == 0 {
		return fmt.Errorf("diff section for %s outside a table section", sec.Identity)
	}
	t := &s.doc.Tables[len(s.doc.Tables)-1]
	switch sec.Change {
	case Removed:
		t.Removed = append(t.Removed, sec.Identity)
	case Added:
		t.Added = append(t.Added, sec.Identity)
	case Modified:
		cols := sec.Columns
		if cols == nil {
			cols = []string{}
		}
		t.Modified = append(t.Modified, SummaryChanged{ID: sec.Identity, Columns: cols})
	}
	return nil
}

func (s *Summary) SectionEnd() error { return nil }

func (s *Summary) NoChanges() error {
	s.doc.Changed = false
	return nil
}

func (s *Summary) Finish() error {
	var (
		out []byte
		err error
	)
	switch s.format {
	case SummaryYAML:
		out, err = yaml.Marshal(s.doc)
	default:
		out, err = json.MarshalIndent(s.doc, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	_, err = s.w.Write(out)
	return err
}
