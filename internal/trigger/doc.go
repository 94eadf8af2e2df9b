// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package trigger decides when the operation under audit is finished and the
// second snapshot may be taken.
package trigger
