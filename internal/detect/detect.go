// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/snapshot"
)

// TableChanges is the classification of one table. Removed, Added and
// Modified are disjoint and sorted with SortIdentities.
type TableChanges struct {
	Table    string
	Removed  []string
	Added    []string
	Modified []string

	before map[string]entry
	after  map[string]entry
}

type entry struct {
	record snapshot.Record
	text   string
	err    error
}

// HasChanges reports whether any record was removed, added or modified.
func (c TableChanges) HasChanges() bool {
	return len(c.Removed) > 0 || len(c.Added) > 0 || len(c.Modified) > 0
}

// Changed returns every changed identity: removed, then added, then modified,
// each group in SortIdentities order.
func (c TableChanges) Changed() []string {
	out := make([]string, 0, len(c.Removed)+len(c.Added)+len(c.Modified))
	out = append(out, c.Removed...)
	out = append(out, c.Added...)
	return append(out, c.Modified...)
}

// Before returns the canonical text of id in the before snapshot, or "" when
// it is absent there.
func (c TableChanges) Before(id string) string { return c.before[id].text }

// After returns the canonical text of id in the after snapshot, or "" when
// it is absent there.
func (c TableChanges) After(id string) string { return c.after[id].text }

// BeforeRecord returns the before record of id.
func (c TableChanges) BeforeRecord(id string) (snapshot.Record, bool) {
	e, ok := c.before[id]
	return e.record, ok
}

// AfterRecord returns the after record of id.
func (c TableChanges) AfterRecord(id string) (snapshot.Record, bool) {
	e, ok := c.after[id]
	return e.record, ok
}

type options struct {
	ignore []string
}

// Option customizes Detect.
type Option func(*options)

// WithIgnore leaves columns out of the comparison. An entry "col" applies to
// every table and "table.col" only to that table.
func WithIgnore(columns ...string) Option {
	return func(o *options) {
		for _, c := range columns {
			if c = strings.TrimSpace(c); c != "" {
				o.ignore = append(o.ignore, c)
			}
		}
	}
}

func (o options) ignoredFor(table string) []string {
	var cols []string
	for _, c := range o.ignore {
		if t, col, ok := strings.Cut(c, "."); ok {
			if t == table {
				cols = append(cols, col)
			}
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// Detect classifies the records of table. Either side may be empty.
func Detect(table string, before, after []snapshot.Record, opts ...Option) TableChanges {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	ignore := o.ignoredFor(table)

	changes := TableChanges{
		Table:  table,
		before: index(table, "before", before, ignore),
		after:  index(table, "after", after, ignore),
	}

	for id := range changes.before {
		if _, ok := changes.after[id]; !ok {
			changes.Removed = append(changes.Removed, id)
		}
	}
	for id, a := range changes.after {
		b, ok := changes.before[id]
		if !ok {
			changes.Added = append(changes.Added, id)
			continue
		}
		// Unserializable records only compare by presence.
		if b.err != nil || a.err != nil || b.text != a.text {
			changes.Modified = append(changes.Modified, id)
		}
	}

	SortIdentities(changes.Removed)
	SortIdentities(changes.Added)
	SortIdentities(changes.Modified)
	log.Debugf("detect %s: removed=%d added=%d modified=%d", table,
		len(changes.Removed), len(changes.Added), len(changes.Modified))

	return changes
}

func index(table, side string, recs []snapshot.Record, ignore []string) map[string]entry {
	m := make(map[string]entry, len(recs))
	seen := map[string]int{}

	for _, rec := range recs {
		id, hasID := snapshot.IdentityOf(rec)
		compared := rec.Without(ignore...)
		text, err := compared.Canonical()
		if err != nil {
			log.WithError(err).Errorf("table %s %s: record %s compared by presence only", table, side, id)
		}

		if !hasID {
			key := "unserializable"
			if err == nil {
				sum := md5.Sum([]byte(text))
				key = hex.EncodeToString(sum[:])
			}
			seen[key]++
			id = fmt.Sprintf("%s:%s#%d", snapshot.UnknownIdentity, key, seen[key])
		} else if _, dup := m[id]; dup {
			log.Warnf("table %s %s: duplicate id %s, keeping the last record", table, side, id)
		}

		m[id] = entry{record: compared, text: text, err: err}
	}
	return m
}

// SortIdentities orders ids numerically when both parse as integers and
// lexically otherwise.
func SortIdentities(ids []string) {
	slices.SortFunc(ids, compareIdentity)
}

func compareIdentity(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
