// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"regexp"
	"strings"

	"github.com/iwazzer/dbba/internal/log"
)

// filterRegex splits a filter expression into key, operator (with optional
// negation) and target. Operators are one of = ^ ~ < > @ or /. Examples:
// "name=users", "name!^schema_", "name/_(log|audit)s$".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// keys are the table attributes a filter can test. An empty key means name.
var keys = map[string]bool{"": true, "name": true, "table": true}

// BuildFilters parses a delimited filter specification. The delimiter is ","
// unless DBBA_FILTER_DELIM overrides it. Invalid entries are logged and
// skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("DBBA_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if !keys[key] {
			log.Errorf("invalid filter: unknown key %q in %s", key, filterSpec)
			continue
		}
		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		if operand == "/" {
			if _, err := regexp.Compile(parts[3]); err != nil {
				log.Errorf("invalid filter: bad regex in %s: %v", filterSpec, err)
				continue
			}
		}

		filters = append(filters, Filter{
			Key:     "name",
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterTables returns the tables that pass every filter in spec, keeping
// their order.
func FilterTables(tables []string, spec string) []string {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return tables
	}

	//nolint:prealloc
	var out []string
	for _, table := range tables {
		if applyFilters(table, filters) {
			out = append(out, table)
		}
	}
	log.Debugf("filters kept %d of %d tables", len(out), len(tables))
	return out
}

// applyFilters reports whether name matches all filters.
func applyFilters(name string, filters []Filter) bool {
	for _, filter := range filters {
		if !checkStringOperand(name, filter) {
			return false
		}
	}
	return true
}

// checkStringOperand evaluates one filter against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
