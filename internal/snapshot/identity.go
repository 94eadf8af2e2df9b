// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"github.com/iwazzer/dbba/internal/value"
)

// IdentityColumn is the column that identifies a record within its table.
const IdentityColumn = "id"

// UnknownIdentity is returned for records without a usable id.
const UnknownIdentity = "unknown"

// IdentityOf returns the identity key of r: the decimal form of a numeric id
// or a text id verbatim. ok is false, and the key UnknownIdentity, when r has
// no usable id. A text id that reads "unknown" is still a real id.
func IdentityOf(r Record) (key string, ok bool) {
	v, found := r.Get(IdentityColumn)
	if !found {
		return UnknownIdentity, false
	}

	switch v.Kind() {
	case value.KindInteger, value.KindFloat, value.KindText:
		return v.String(), true
	case value.KindNull, value.KindBoolean:
	}
	return UnknownIdentity, false
}
