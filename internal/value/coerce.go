// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DigestPrefix starts the text that stands in for binary column content.
const DigestPrefix = "MD5 Digest value: "

// DateTimeLayout is the canonical rendering of date/time columns.
const DateTimeLayout = "2006-01-02 15:04:05"

// dateTimeLayouts are the textual forms drivers hand back for date/time
// columns when they do not parse them into time.Time themselves.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Digest returns the canonical text for binary content.
func Digest(b []byte) string {
	sum := md5.Sum(b)
	return DigestPrefix + hex.EncodeToString(sum[:])
}

// Coerce maps a raw driver value and its declared type name onto a canonical
// Value. It never fails: anything that cannot be read as the declared family
// becomes Null.
func Coerce(raw any, declaredType string) Value {
	if raw == nil {
		return Null
	}

	switch FamilyOf(declaredType) {
	case FamilyInteger:
		return orNull(readInteger(raw))
	case FamilyFloat:
		return orNull(readFloat(raw))
	case FamilyDateTime:
		return orNull(readDateTime(raw))
	case FamilyBinary:
		return orNull(readBinary(raw))
	case FamilyBoolean:
		return orNull(readBoolean(raw))
	case FamilyText, FamilyUnknown:
		// Non-UTF-8 bytes, e.g. a latin1 column, are digested.
		if b, ok := raw.([]byte); ok && !utf8.Valid(b) {
			return Text(Digest(b))
		}
		return orNull(readText(raw))
	}
	return Null
}

func orNull(v Value, ok bool) Value {
	if !ok {
		return Null
	}
	return v
}

func readInteger(raw any) (Value, bool) {
	switch x := raw.(type) {
	case int64:
		return Int(x), true
	case int:
		return Int(int64(x)), true
	case int32:
		return Int(int64(x)), true
	case int16:
		return Int(int64(x)), true
	case int8:
		return Int(int64(x)), true
	case uint64:
		if x > math.MaxInt64 {
			return Null, false
		}
		return Int(int64(x)), true
	case uint32:
		return Int(int64(x)), true
	case uint16:
		return Int(int64(x)), true
	case uint8:
		return Int(int64(x)), true
	case bool:
		if x {
			return Int(1), true
		}
		return Int(0), true
	case []byte:
		return parseInteger(string(x))
	case string:
		return parseInteger(x)
	}
	return Null, false
}

func parseInteger(s string) (Value, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Null, false
	}
	return Int(i), true
}

func readFloat(raw any) (Value, bool) {
	switch x := raw.(type) {
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case int64:
		return Float(float64(x))
	case int:
		return Float(float64(x))
	case int32:
		return Float(float64(x))
	case uint64:
		return Float(float64(x))
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	}
	return Null, false
}

func parseFloat(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	// PostgreSQL money arrives formatted, e.g. "$1,234.50".
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null, false
	}
	return Float(f)
}

func readDateTime(raw any) (Value, bool) {
	switch x := raw.(type) {
	case time.Time:
		return Text(x.Format(DateTimeLayout)), true
	case []byte:
		return parseDateTime(string(x))
	case string:
		return parseDateTime(x)
	}
	return Null, false
}

func parseDateTime(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Text(t.Format(DateTimeLayout)), true
		}
	}
	return Null, false
}

func readBinary(raw any) (Value, bool) {
	switch x := raw.(type) {
	case []byte:
		return Text(Digest(x)), true
	}
	return Null, false
}

func readBoolean(raw any) (Value, bool) {
	switch x := raw.(type) {
	case bool:
		return Bool(x), true
	case int64:
		return Bool(x != 0), true
	case int:
		return Bool(x != 0), true
	case []byte:
		// MySQL BIT(1) arrives as a single raw byte.
		if len(x) == 1 && (x[0] == 0 || x[0] == 1) {
			return Bool(x[0] == 1), true
		}
		return parseBoolean(string(x))
	case string:
		return parseBoolean(x)
	}
	return Null, false
}

func parseBoolean(s string) (Value, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return Bool(true), true
	case "0", "f", "false", "n", "no", "off":
		return Bool(false), true
	}
	return Null, false
}

func readText(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		if !utf8.ValidString(x) {
			return Null, false
		}
		return Text(x), true
	case []byte:
		if !utf8.Valid(x) {
			return Null, false
		}
		return Text(string(x)), true
	case int64:
		return Text(strconv.FormatInt(x, 10)), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Null, false
		}
		return Text(strconv.FormatFloat(x, 'f', -1, 64)), true
	case bool:
		return Text(strconv.FormatBool(x)), true
	case time.Time:
		return Text(x.Format(DateTimeLayout)), true
	}
	return Null, false
}
