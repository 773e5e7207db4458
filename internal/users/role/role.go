// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package role resolves the effective role of an account and manages role assignments.

# Resolution

An account may carry zero, one or several rows in users.user_role. Uniqueness
is not enforced by storage, so resolution is precedence-based:

  - No rows: [sec.RoleNone]
  - Any admin row: [sec.RoleAdmin]
  - Otherwise any editor row: [sec.RoleEditor]

# Fail Closed

A resolution that cannot reach storage yields [sec.RoleNone]. An error never
produces an elevated role.
*/
package role

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Domain Entities

// Assignment is one row of the role-assignment table.
type Assignment struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Role      sec.UserRole `json:"role"`
	CreatedAt time.Time    `json:"created_at"`

	// Joined from users.account for the admin listing
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Global field names for validation
const (
	FieldUserID = "user_id"
	FieldEmail  = "email"
	FieldRole   = "role"
)

// Effective collapses a user's assignment rows into a single role.
//
// Unknown values are ignored, so a corrupted row can never elevate access.
func Effective(roles []sec.UserRole) sec.UserRole {
	effective := sec.RoleNone
	for _, candidate := range roles {
		if !candidate.Valid() {
			continue
		}
		if candidate.AtLeast(effective) {
			effective = candidate
		}
	}
	return effective
}
