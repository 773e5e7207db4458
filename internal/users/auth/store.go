// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound is returned when a refresh token hash has no live session.
	ErrSessionNotFound = errors.New("auth: session not found")

	// ErrTokenNotFound is returned when a verification token is unknown or expired.
	ErrTokenNotFound = errors.New("auth: token not found")
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email, compared case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		MarkConfirmed sets email_confirmed = true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkConfirmed(context context.Context, userID string) error

	/*
		UpdateProfile persists the mutable profile fields (full name, avatar).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	UpdateProfile(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Session Data Access

// SessionRepository stores sessions keyed by the hash of their refresh token
// and indexed by session id, which access tokens carry.
type SessionRepository interface {

	/*
		Create persists a session until its ExpiresAt.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, tokenHash string, session *Session) error

	/*
		FindByTokenHash returns the live session for a refresh token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Stored session without raw tokens
		  - error: ErrSessionNotFound or connectivity failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		FindByID returns the live session with the given id and the hash of its
		refresh token.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *Session: Stored session without raw tokens
		  - string: Refresh token hash
		  - error: ErrSessionNotFound or connectivity failures
	*/
	FindByID(context context.Context, sessionID string) (*Session, string, error)

	/*
		Revoke deletes a session. Revoking an absent session is not an error.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: string

		Returns:
		  - error: Connectivity failures
	*/
	Revoke(context context.Context, tokenHash, userID string) error

	/*
		RevokeOthers deletes every session of the user except the one with keepHash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - keepHash: string (empty revokes all)

		Returns:
		  - int: Number of sessions revoked
		  - error: Connectivity failures
	*/
	RevokeOthers(context context.Context, userID, keepHash string) (int, error)
}

// # Volatile Data Access

// VerificationTokenRepository defines the contract for storing volatile email verification tokens.
type VerificationTokenRepository interface {

	/*
		Set stores a verification token hash associated with a userID.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given verification token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - string: UserID
		  - error: ErrTokenNotFound or connectivity failures
	*/
	Get(context context.Context, tokenHash string) (string, error)

	/*
		Delete removes a verification token after successful use.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, tokenHash string) error
}
