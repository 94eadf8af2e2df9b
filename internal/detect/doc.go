// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package detect classifies the records of a table as removed, added or
// modified between two snapshots.
//
// Records are matched by identity (see snapshot.IdentityOf). Records without
// a usable id are matched by content instead: each gets the key
// "unknown:<md5 of its canonical text>" with a "#n" occurrence suffix, so a
// change to such a record shows up as one removal and one addition.
package detect
