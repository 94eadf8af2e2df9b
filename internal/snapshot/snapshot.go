// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"maps"
	"slices"
	"time"
)

// Snapshot is the content of every read table at one instant. It is not
// modified after Build or Decode returns it.
type Snapshot struct {
	TakenAt time.Time
	tables  map[string][]Record
}

// New wraps tables into a Snapshot.
func New(takenAt time.Time, tables map[string][]Record) *Snapshot {
	if tables == nil {
		tables = map[string][]Record{}
	}
	return &Snapshot{TakenAt: takenAt, tables: tables}
}

// Tables returns the table names in ascending order.
func (s *Snapshot) Tables() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.tables))
}

// Records returns the records of table in fetch order.
func (s *Snapshot) Records(table string) []Record {
	if s == nil {
		return nil
	}
	return s.tables[table]
}

// Has reports whether table was read.
func (s *Snapshot) Has(table string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tables[table]
	return ok
}

// RowCount returns the total number of records.
func (s *Snapshot) RowCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, recs := range s.tables {
		n += len(recs)
	}
	return n
}
