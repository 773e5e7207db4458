// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets a signed-in user manage their own profile and password.

# Architecture

  - Accounts are the auth package's [auth.User]; this package owns no table.
  - A password change revokes every other session of the user. The session
    that made the change stays signed in.
*/
package account

import (
	"context"

	"github.com/taibuivan/folio/internal/users/auth"
)

// # Field Identifiers

const (
	FieldFullName        = "full_name"
	FieldAvatarURL       = "avatar_url"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldRevokedSessions = "revoked_sessions"
)

// # Repository Contracts

// ProfileRepository is the subset of [auth.UserRepository] used by the account service.
type ProfileRepository interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	UpdateProfile(context context.Context, user *auth.User) error
	UpdatePassword(context context.Context, userID, newHash string) error
}

// SessionRevoker ends a user's sessions except the one identified by keepHash.
type SessionRevoker interface {
	RevokeOthers(context context.Context, userID, keepHash string) (int, error)
}

// # Inputs

// UpdateProfileInput holds the mutable profile fields. Nil fields are left unchanged.
type UpdateProfileInput struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// ChangePasswordInput holds a password change request.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
