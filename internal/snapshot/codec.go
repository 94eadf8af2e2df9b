// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iwazzer/dbba/internal/value"
)

// FormatVersion is the version written by Encode and accepted by Decode.
const FormatVersion = 1

// Encode writes s as a versioned JSON document. Tables appear in name order
// and records keep their fetch order.
func Encode(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"version":%d,"taken_at":%q,"tables":{`, FormatVersion, s.TakenAt.UTC().Format(time.RFC3339Nano))

	for i, table := range s.Tables() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := value.Text(table).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":[")
		for j, rec := range s.Records(table) {
			if j > 0 {
				buf.WriteByte(',')
			}
			raw, err := rec.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("failed to encode table %s: %w", table, err)
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// Decode parses a document written by Encode. JSON numbers with a fraction or
// exponent decode as Float, all others as Integer.
func Decode(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("snapshot is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	version := doc.Get("version")
	if !version.Exists() || version.Int() != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", version.Raw)
	}

	var takenAt time.Time
	if ts := doc.Get("taken_at"); ts.Exists() {
		t, err := time.Parse(time.RFC3339Nano, ts.String())
		if err != nil {
			return nil, fmt.Errorf("invalid taken_at: %w", err)
		}
		takenAt = t
	}

	tablesNode := doc.Get("tables")
	if !tablesNode.IsObject() {
		return nil, fmt.Errorf("snapshot has no tables object")
	}

	tables := map[string][]Record{}
	var err error
	tablesNode.ForEach(func(name, rows gjson.Result) bool {
		if !rows.IsArray() {
			err = fmt.Errorf("table %s is not an array", name.String())
			return false
		}
		recs := []Record{}
		rows.ForEach(func(_, row gjson.Result) bool {
			var rec Record
			rec, err = decodeRecord(row)
			if err != nil {
				err = fmt.Errorf("table %s: %w", name.String(), err)
				return false
			}
			recs = append(recs, rec)
			return true
		})
		if err != nil {
			return false
		}
		tables[name.String()] = recs
		return true
	})
	if err != nil {
		return nil, err
	}

	return New(takenAt, tables), nil
}

func decodeRecord(row gjson.Result) (Record, error) {
	if !row.IsObject() {
		return nil, fmt.Errorf("record is not an object")
	}
	fields := map[string]value.Value{}
	var err error
	row.ForEach(func(k, v gjson.Result) bool {
		var val value.Value
		val, err = decodeValue(v)
		if err != nil {
			err = fmt.Errorf("column %s: %w", k.String(), err)
			return false
		}
		fields[k.String()] = val
		return true
	})
	if err != nil {
		return nil, err
	}
	return NewRecord(fields), nil
}

func decodeValue(v gjson.Result) (value.Value, error) {
	switch v.Type {
	case gjson.Null:
		return value.Null, nil
	case gjson.True:
		return value.Bool(true), nil
	case gjson.False:
		return value.Bool(false), nil
	case gjson.String:
		return value.Text(v.String()), nil
	case gjson.Number:
		if !strings.ContainsAny(v.Raw, ".eE") {
			if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
				return value.Int(i), nil
			}
		}
		f, ok := value.Float(v.Float())
		if !ok {
			return value.Null, fmt.Errorf("non-finite number %s", v.Raw)
		}
		return f, nil
	case gjson.JSON:
		return value.Null, fmt.Errorf("nested value %s", v.Raw)
	}
	return value.Null, fmt.Errorf("unexpected JSON type %s", v.Type)
}
