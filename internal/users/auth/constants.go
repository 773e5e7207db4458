// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// VerificationTokenTTL is the duration an email verification token remains valid.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the random verification token.
	VerificationTokenLength = 32

	// MinPasswordLength is the shortest password accepted at sign-up.
	MinPasswordLength = 6

	// MinFullNameLength is the shortest display name accepted at sign-up.
	MinFullNameLength = 2
)

// # Client-facing messages

const (
	msgInvalidCredentials = "Invalid login credentials"
	msgEmailNotConfirmed  = "Email not confirmed"
	msgAlreadyRegistered  = "User already registered"
	msgWeakPassword       = "Password should be at least 6 characters"
	msgLongPassword       = "Password should be at most 72 bytes"
	msgInvalidRefresh     = "Invalid or expired refresh token"
	msgInvalidVerify      = "Verification link is invalid or has expired"
	msgUnavailable        = "Authentication service unavailable"
)
