// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects the tables to snapshot from a --filter expression.
//
// A specification is a comma delimited (DBBA_FILTER_DELIM overrides the
// delimiter) list of key-operator-target expressions. All expressions must
// match for a table to be kept. The key is "name" (or "table", or omitted).
//
// Operators, each negatable with a leading "!":
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - @ : substring match
//   - < : lexically less than
//   - > : lexically greater than
//   - / : regular expression match
//
// Examples:
//
//   - "name^user" : tables whose name starts with "user"
//   - "!=schema_migrations" : every table except schema_migrations
//   - "name/_(logs|audits)$,name!^tmp_" : regex match, excluding tmp_ tables
package filters
