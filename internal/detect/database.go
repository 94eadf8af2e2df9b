// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"maps"
	"slices"

	"github.com/iwazzer/dbba/internal/snapshot"
)

// DatabaseChanges holds the classification of every table of a snapshot pair
// in table name order.
type DatabaseChanges struct {
	Tables []TableChanges
}

// Changed returns only the tables that have changes.
func (d DatabaseChanges) Changed() []TableChanges {
	var out []TableChanges
	for _, t := range d.Tables {
		if t.HasChanges() {
			out = append(out, t)
		}
	}
	return out
}

// HasChanges reports whether any table changed.
func (d DatabaseChanges) HasChanges() bool {
	return len(d.Changed()) > 0
}

// Totals returns the number of removed, added and modified records.
func (d DatabaseChanges) Totals() (removed, added, modified int) {
	for _, t := range d.Tables {
		removed += len(t.Removed)
		added += len(t.Added)
		modified += len(t.Modified)
	}
	return removed, added, modified
}

// DetectSnapshots runs Detect for the union of both snapshots' tables, so
// tables that appear or disappear between them are reported too.
func DetectSnapshots(before, after *snapshot.Snapshot, opts ...Option) DatabaseChanges {
	names := map[string]struct{}{}
	for _, t := range before.Tables() {
		names[t] = struct{}{}
	}
	for _, t := range after.Tables() {
		names[t] = struct{}{}
	}

	var result DatabaseChanges
	for _, table := range slices.Sorted(maps.Keys(names)) {
		result.Tables = append(result.Tables, Detect(table, before.Records(table), after.Records(table), opts...))
	}
	return result
}
