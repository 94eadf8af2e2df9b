// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwazzer/dbba/internal/value"
)

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	snap := New(at, map[string][]Record{
		"users": {
			NewRecord(map[string]value.Value{
				"id":    value.Int(1),
				"score": value.FloatOrNull(3),
				"name":  value.Text(`J "J" <x>`),
				"admin": value.Bool(true),
				"bio":   value.Null,
			}),
		},
		"empty": {},
	})

	data, err := Encode(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)
	assert.Contains(t, string(data), `"taken_at":"2024-05-06T07:08:09Z"`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, at.Equal(got.TakenAt))
	assert.Equal(t, snap.Tables(), got.Tables())
	assert.Equal(t, snap.Records("users"), got.Records("users"))
	assert.Empty(t, got.Records("empty"))

	score, _ := got.Records("users")[0].Get("score")
	assert.Equal(t, value.KindFloat, score.Kind())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{name: "not json", doc: `{`, msg: "not valid JSON"},
		{name: "missing version", doc: `{"tables":{}}`, msg: "unsupported snapshot version"},
		{name: "future version", doc: `{"version":2,"tables":{}}`, msg: "unsupported snapshot version"},
		{name: "bad timestamp", doc: `{"version":1,"taken_at":"yesterday","tables":{}}`, msg: "invalid taken_at"},
		{name: "no tables", doc: `{"version":1}`, msg: "no tables object"},
		{name: "table not array", doc: `{"version":1,"tables":{"t":{}}}`, msg: "is not an array"},
		{name: "nested value", doc: `{"version":1,"tables":{"t":[{"id":[1]}]}}`, msg: "nested value"},
		{name: "row not object", doc: `{"version":1,"tables":{"t":[1]}}`, msg: "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
