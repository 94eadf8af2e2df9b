// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ aligns the before and after text of a record line by line
// and renders the alignment as two parallel columns. It also reports which
// columns of a record changed and offers a picker for choosing two stored
// snapshots to compare.
package differ
