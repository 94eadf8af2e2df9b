// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/iwazzer/dbba/internal/source"
	"github.com/iwazzer/dbba/internal/value"
)

// Field is one named column value of a Record.
type Field struct {
	Name  string
	Value value.Value
}

// Record is a normalized row. Fields are sorted by name and names are unique.
type Record []Field

var canonicalOptions = &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}

// Normalize coerces every cell of row and orders the result by column name.
// A repeated column name keeps the last cell.
func Normalize(row source.Row) Record {
	fields := make(map[string]value.Value, len(row))
	for _, cell := range row {
		fields[cell.Name] = value.Coerce(cell.Raw, cell.DeclaredType)
	}
	return NewRecord(fields)
}

// NewRecord builds a Record from a column map.
func NewRecord(fields map[string]value.Value) Record {
	rec := make(Record, 0, len(fields))
	for name, v := range fields {
		rec = append(rec, Field{Name: name, Value: v})
	}
	sort.Slice(rec, func(i, j int) bool { return rec[i].Name < rec[j].Name })
	return rec
}

// Get returns the value of column name.
func (r Record) Get(name string) (value.Value, bool) {
	i, ok := slices.BinarySearchFunc(r, name, func(f Field, n string) int {
		return strings.Compare(f.Name, n)
	})
	if !ok {
		return value.Null, false
	}
	return r[i].Value, true
}

// Names returns the column names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Without returns a copy of r lacking the named columns.
func (r Record) Without(names ...string) Record {
	if len(names) == 0 {
		return r
	}
	out := make(Record, 0, len(r))
	for _, f := range r {
		if !slices.Contains(names, f.Name) {
			out = append(out, f)
		}
	}
	return out
}

// MarshalJSON writes the record as a compact JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := value.Text(f.Name).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, &SerializationError{Column: f.Name, Err: err}
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Canonical returns the pretty printed JSON text of r with two space indent
// and no trailing newline. Equal records always produce equal text.
func (r Record) Canonical() (string, error) {
	raw, err := r.MarshalJSON()
	if err != nil {
		return "", err
	}
	if !json.Valid(raw) {
		return "", &SerializationError{Err: errInvalidJSON}
	}
	out := pretty.PrettyOptions(raw, canonicalOptions)
	return string(bytes.TrimRight(out, "\n")), nil
}
