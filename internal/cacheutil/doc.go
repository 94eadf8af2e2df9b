// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil keeps downloaded snapshot objects on disk, keyed by a
// hashed clear-text key beneath caller chosen namespace directories.
package cacheutil
