// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package value

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		declared string
		want     Family
	}{
		{"INT", FamilyInteger},
		{"int(11) unsigned", FamilyInteger},
		{"UNSIGNED BIGINT", FamilyInteger},
		{"int8", FamilyInteger},
		{"DECIMAL(10, 2)", FamilyFloat},
		{"double precision", FamilyFloat},
		{"DATETIME", FamilyDateTime},
		{"timestamp without time zone", FamilyDateTime},
		{"LONGBLOB", FamilyBinary},
		{"bytea", FamilyBinary},
		{"BIT", FamilyBoolean},
		{"boolean", FamilyBoolean},
		{"VARCHAR(255)", FamilyText},
		{"character varying", FamilyText},
		{"GEOMETRY", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			assert.Equal(t, tt.want, FamilyOf(tt.declared))
		})
	}
}

func TestCoerce(t *testing.T) {
	blob := []byte{0x01, 0x02}
	sum := md5.Sum(blob)
	digest := "MD5 Digest value: " + hex.EncodeToString(sum[:])

	ts := time.Date(2024, 3, 9, 7, 5, 1, 500, time.UTC)

	tests := []struct {
		name     string
		raw      any
		declared string
		want     Value
	}{
		{"integer", int64(42), "INT", Int(42)},
		{"integer from bytes", []byte("-7"), "BIGINT", Int(-7)},
		{"unsigned overflow", uint64(math.MaxUint64), "BIGINT UNSIGNED", Null},
		{"integer garbage", []byte("abc"), "INT", Null},
		{"float", 1.5, "DOUBLE", FloatOrNull(1.5)},
		{"decimal from bytes", []byte("10.25"), "DECIMAL(10,2)", FloatOrNull(10.25)},
		{"float NaN", math.NaN(), "FLOAT", Null},
		{"float Inf", math.Inf(1), "REAL", Null},
		{"money", "$1,234.50", "MONEY", FloatOrNull(1234.5)},
		{"datetime", ts, "DATETIME", Text("2024-03-09 07:05:01")},
		{"datetime from bytes", []byte("2024-03-09 07:05:01.123"), "TIMESTAMP", Text("2024-03-09 07:05:01")},
		{"date", []byte("2024-03-09"), "DATE", Text("2024-03-09 00:00:00")},
		{"datetime garbage", "not a date", "DATETIME", Null},
		{"blob", blob, "BLOB", Text(digest)},
		{"blob wrong type", int64(1), "BLOB", Null},
		{"bit one byte", []byte{0x01}, "BIT", Bool(true)},
		{"bit zero byte", []byte{0x00}, "BIT", Bool(false)},
		{"bool", true, "BOOLEAN", Bool(true)},
		{"bool from int", int64(0), "TINYINT(1)", Int(0)},
		{"bool text", "f", "BOOL", Bool(false)},
		{"bool garbage", "maybe", "BOOL", Null},
		{"text", []byte("hello"), "VARCHAR(20)", Text("hello")},
		{"text invalid utf8", []byte{0xff, 0xfe}, "TEXT", Text(digestOf([]byte{0xff, 0xfe}))},
		{"latin1 varchar", []byte("Jos\xe9"), "VARCHAR(40)", Text(digestOf([]byte("Jos\xe9")))},
		{"text invalid utf8 string", "Jos\xe9", "TEXT", Null},
		{"unknown utf8 bytes", []byte("héllo"), "GEOMETRY", Text("héllo")},
		{"unknown string", "plain", "", Text("plain")},
		{"unknown int", int64(5), "", Text("5")},
		{"unknown binary", []byte{0xff}, "", Text(digestOf([]byte{0xff}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.raw, tt.declared))
		})
	}
}

func digestOf(b []byte) string {
	sum := md5.Sum(b)
	return DigestPrefix + hex.EncodeToString(sum[:])
}

func TestCoerce_NullIsTotal(t *testing.T) {
	for _, declared := range []string{"INT", "DOUBLE", "DATETIME", "BLOB", "BIT", "VARCHAR", "GEOMETRY", ""} {
		assert.Equal(t, Null, Coerce(nil, declared), declared)
	}
}

func TestCoerce_BlobDigestIsDeterministic(t *testing.T) {
	want := Coerce([]byte{0x01, 0x02}, "BLOB")
	for range 10 {
		assert.Equal(t, want, Coerce([]byte{0x01, 0x02}, "BLOB"))
	}
	assert.Equal(t, "MD5 Digest value: 0cb988d042a7f28dd5fe2b55b3f5ac7a", want.Str())
}
