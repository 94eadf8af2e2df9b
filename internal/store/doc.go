// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store saves and loads encoded snapshots. A location is either a
// local file path or an s3://bucket/key URI; S3 downloads are cached on disk
// by ETag.
package store
