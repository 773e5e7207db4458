// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the Session Store: who is signed in, and how that changes.

It owns the credential lifecycle for the CMS (sign-up, sign-in, sign-out, silent
refresh) and publishes every change to subscribers, synchronously and in order.

# Architecture

  - Users live in PostgreSQL (users.account).
  - Sessions and verification tokens live in Redis with a TTL.
  - Access tokens are short-lived JWTs; refresh tokens are opaque and rotated on use.

Roles are deliberately absent here. What a signed-in user may do is decided by
the role package and composed by authctx.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents an account that can sign in to the CMS.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Explicitly omitted from JSON for security.
	FullName       string    `json:"full_name"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session is one signed-in browser context.
//
// The raw tokens are only populated on the value returned from the operation
// that minted them; the persisted copy never contains them.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	User            *User     `json:"user,omitempty"`
	AccessToken     string    `json:"-"`
	RefreshToken    string    `json:"-"`
	IssuedAt        time.Time `json:"issued_at"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	UserAgent       string    `json:"-"`
	IPAddress       string    `json:"-"`
}

// Tokens are the credentials a request carries, plus client metadata used
// when a silent refresh has to mint a new session.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	UserAgent    string
	IPAddress    string
}

// Empty reports whether the request carried no credentials at all.
func (t Tokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// # Field Identifiers

const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullName     = "full_name"
	FieldToken        = "token"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldExpiresAt    = "expires_at"
	FieldUser         = "user"
	FieldSession      = "session"
	FieldMessage      = "message"
)
