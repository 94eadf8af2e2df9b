// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"strings"
)

// Family groups declared column type names that coerce the same way.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyInteger
	FamilyFloat
	FamilyDateTime
	FamilyBinary
	FamilyBoolean
	FamilyText
)

func (f Family) String() string {
	switch f {
	case FamilyInteger:
		return "integer"
	case FamilyFloat:
		return "float"
	case FamilyDateTime:
		return "datetime"
	case FamilyBinary:
		return "binary"
	case FamilyBoolean:
		return "boolean"
	case FamilyText:
		return "text"
	}
	return "unknown"
}

// families covers the type names reported by the MySQL, PostgreSQL and SQLite
// drivers through database/sql's ColumnType.DatabaseTypeName.
var families = map[string]Family{
	"TINYINT":   FamilyInteger,
	"SMALLINT":  FamilyInteger,
	"MEDIUMINT": FamilyInteger,
	"INT":       FamilyInteger,
	"INTEGER":   FamilyInteger,
	"BIGINT":    FamilyInteger,
	"INT2":      FamilyInteger,
	"INT4":      FamilyInteger,
	"INT8":      FamilyInteger,
	"SERIAL":    FamilyInteger,
	"BIGSERIAL": FamilyInteger,
	"YEAR":      FamilyInteger,

	"FLOAT":            FamilyFloat,
	"DOUBLE":           FamilyFloat,
	"DOUBLE PRECISION": FamilyFloat,
	"REAL":             FamilyFloat,
	"DECIMAL":          FamilyFloat,
	"NUMERIC":          FamilyFloat,
	"FLOAT4":           FamilyFloat,
	"FLOAT8":           FamilyFloat,
	"MONEY":            FamilyFloat,

	"DATETIME":    FamilyDateTime,
	"TIMESTAMP":   FamilyDateTime,
	"TIMESTAMPTZ": FamilyDateTime,
	"DATE":        FamilyDateTime,

	"BLOB":       FamilyBinary,
	"TINYBLOB":   FamilyBinary,
	"MEDIUMBLOB": FamilyBinary,
	"LONGBLOB":   FamilyBinary,
	"BINARY":     FamilyBinary,
	"VARBINARY":  FamilyBinary,
	"BYTEA":      FamilyBinary,

	"BIT":     FamilyBoolean,
	"BOOL":    FamilyBoolean,
	"BOOLEAN": FamilyBoolean,

	"CHAR":       FamilyText,
	"VARCHAR":    FamilyText,
	"BPCHAR":     FamilyText,
	"NCHAR":      FamilyText,
	"NVARCHAR":   FamilyText,
	"TEXT":       FamilyText,
	"TINYTEXT":   FamilyText,
	"MEDIUMTEXT": FamilyText,
	"LONGTEXT":   FamilyText,
	"ENUM":       FamilyText,
	"SET":        FamilyText,
	"JSON":       FamilyText,
	"JSONB":      FamilyText,
	"UUID":       FamilyText,
	"NAME":       FamilyText,
	"CITEXT":     FamilyText,
}

// FamilyOf classifies a declared type name. Matching ignores case, a
// parenthesized width or precision, and an UNSIGNED/SIGNED/ZEROFILL
// qualifier, so "int(11) unsigned" and "UNSIGNED BIGINT" both map to
// FamilyInteger. Unrecognized names yield FamilyUnknown.
func FamilyOf(declared string) Family {
	name := strings.ToUpper(strings.TrimSpace(declared))
	if name == "" {
		return FamilyUnknown
	}

	// "VARCHAR(255)" -> "VARCHAR", "NUMERIC(10, 2)" -> "NUMERIC"
	if i := strings.IndexByte(name, '('); i >= 0 {
		if j := strings.IndexByte(name[i:], ')'); j >= 0 {
			name = name[:i] + name[i+j+1:]
		} else {
			name = name[:i]
		}
	}

	var words []string
	for _, w := range strings.Fields(name) {
		switch w {
		case "UNSIGNED", "SIGNED", "ZEROFILL":
			continue
		}
		words = append(words, w)
	}
	name = strings.Join(words, " ")

	if f, ok := families[name]; ok {
		return f
	}

	// "TIMESTAMP WITHOUT TIME ZONE", "CHARACTER VARYING" and friends.
	switch {
	case strings.HasPrefix(name, "TIMESTAMP"), strings.HasPrefix(name, "DATETIME"):
		return FamilyDateTime
	case strings.HasPrefix(name, "CHARACTER"):
		return FamilyText
	}
	return FamilyUnknown
}
