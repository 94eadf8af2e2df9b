// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package value defines the canonical column value model and the coercion of
// driver-specific column values onto it. Coercion is total: a value that
// cannot be read as its declared type becomes Null rather than an error.
package value
