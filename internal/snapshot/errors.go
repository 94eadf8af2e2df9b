// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable marks a snapshot that could not be read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSerialization marks a record that could not be serialized.
	ErrSerialization = errors.New("serialization failure")

	errInvalidJSON = errors.New("record is not valid JSON")
)

// SourceUnavailableError reports the table whose fetch failed.
type SourceUnavailableError struct {
	Table string
	Err   error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s: table %s: %v", ErrSourceUnavailable, e.Table, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }

// SerializationError reports the column that could not be serialized.
type SerializationError struct {
	Column string
	Err    error
}

func (e *SerializationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %v", ErrSerialization, e.Err)
	}
	return fmt.Sprintf("%s: column %s: %v", ErrSerialization, e.Column, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }
