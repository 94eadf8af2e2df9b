// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report writes the result of a comparison. A Sink receives a fixed
// sequence of calls: Start, then for each changed table SectionTitle, one
// DiffSection per changed record and SectionEnd; NoChanges when nothing
// changed; and finally Finish. HTML, Text and Summary (JSON or YAML) sinks are
// provided.
package report
