// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the primary keys and request ids used across Folio.
//
// Ids are UUIDv7: time-ordered, so new rows append to the end of the
// PostgreSQL B-tree index instead of landing at random pages.
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// It panics only if the system entropy source fails, which leaves the
// process unable to issue ids or tokens at all.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
