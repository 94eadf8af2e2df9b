// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dbdiff drives a before/after audit: snapshot the database, wait for
// the trigger, snapshot again, then detect and report the changes.
package dbdiff
