// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the elevated privilege granted to an account through a role assignment.
type UserRole string

const (
	// Full control, including role assignments and site settings
	RoleAdmin UserRole = "admin"

	// Can create, edit and delete portfolio content and read messages
	RoleEditor UserRole = "editor"

	// No assignment. Signed-in users without a role get no admin access.
	RoleNone UserRole = ""
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether the role can be stored in a role assignment.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// CanEditContent reports whether the role may mutate portfolio content.
func (r UserRole) CanEditContent() bool {
	return r.AtLeast(RoleEditor)
}

// String returns "none" for [RoleNone] so logs never carry an empty role.
func (r UserRole) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Unknown values rank with RoleNone
	switch r {
	case RoleAdmin:
		return 20
	case RoleEditor:
		return 10
	default:
		return 0
	}
}

// # Identity

// Principal is the authenticated requester as seen by the service layer.
type Principal struct {
	UserID string
	Email  string
	Role   UserRole
}
