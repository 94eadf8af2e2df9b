// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind enumerates the closed set of canonical value variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a canonical column value. The zero Value is Null. Values are
// comparable with == and a Float never holds NaN or an infinity.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// Null is the canonical SQL NULL.
var Null = Value{}

// Int returns an Integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Text returns a Text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Float returns a Float value, or false when f is NaN or infinite.
func Float(f float64) (Value, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null, false
	}
	return Value{kind: KindFloat, f: f}, true
}

// FloatOrNull is Float with non-finite input mapped to Null.
func FloatOrNull(f float64) Value {
	v, _ := Float(f)
	return v
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) Integer() int64 { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Boolean() bool  { return v.b }
func (v Value) Str() string    { return v.s }

// String renders the value the way it appears in reports: integers and floats
// in plain decimal, booleans as true/false, text verbatim and Null as "null".
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindText:
		return v.s
	}
	return "null"
}

// MarshalJSON encodes the value as a JSON scalar. Text is written without
// HTML escaping so that canonical output matches the stored string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("non-finite float %v", v.f)
		}
		return marshalFloat(v.f), nil
	case KindBoolean:
		return strconv.AppendBool(nil, v.b), nil
	case KindText:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v.s); err != nil {
			return nil, err
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// marshalFloat keeps a decimal point on integral floats so that a Float never
// decodes back as an Integer.
func marshalFloat(f float64) []byte {
	out := strconv.AppendFloat(nil, f, 'g', -1, 64)
	if bytes.ContainsAny(out, ".eE") {
		return out
	}
	return append(out, '.', '0')
}
