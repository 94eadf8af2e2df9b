// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot holds the in-memory picture of a database at one instant.
// Rows are normalized into Records, ordered by column name, whose canonical
// JSON text is what the change detector and diff renderer compare. Snapshots
// can be encoded to and decoded from a versioned JSON document so that a
// before/after pair can be compared later.
package snapshot
