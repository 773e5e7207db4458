// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/internal/users/auth"
)

// # Service Layer

// Service implements self-service account operations.
type Service struct {
	profiles ProfileRepository
	sessions SessionRevoker
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(profiles ProfileRepository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the account of the signed-in user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The account
  - error: NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.profiles.FindByID(context, userID)
	if err != nil {
		return nil, dberr.NotFound(err, "Account")
	}
	return user, nil
}

/*
UpdateProfile applies a partial update to the user's name and avatar.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated account
  - error: ValidationError, NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	validator := &validate.Validator{}
	if input.FullName != nil {
		trimmed := strings.TrimSpace(*input.FullName)
		input.FullName = &trimmed
		validator.MinLen(FieldFullName, trimmed, auth.MinFullNameLength).MaxLen(FieldFullName, trimmed, 100)
	}
	validator.OptionalURL(FieldAvatarURL, input.AvatarURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.profiles.FindByID(context, userID)
	if err != nil {
		return nil, dberr.NotFound(err, "Account")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.AvatarURL != nil {
		if *input.AvatarURL == "" {
			user.AvatarURL = nil
		} else {
			user.AvatarURL = input.AvatarURL
		}
	}

	if err := service.profiles.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

// # Password Management

/*
ChangePassword replaces the user's password and signs out their other sessions.

Parameters:
  - context: context.Context
  - userID: string
  - input: ChangePasswordInput
  - currentRefreshToken: string (the session to keep, may be empty)

Returns:
  - int: Number of other sessions revoked
  - error: AuthError 401 on a wrong current password, ValidationError, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID string, input ChangePasswordInput, currentRefreshToken string) (int, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		MinLen(FieldNewPassword, input.NewPassword, auth.MinPasswordLength).
		Custom(FieldNewPassword, len(input.NewPassword) > sec.MaxPasswordBytes, "Must be at most 72 bytes")
	if err := validator.Err(); err != nil {
		return 0, err
	}

	user, err := service.profiles.FindByID(context, userID)
	if err != nil {
		return 0, dberr.NotFound(err, "Account")
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return 0, apperr.AuthError("Current password is incorrect", http.StatusUnauthorized)
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return 0, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.profiles.UpdatePassword(context, userID, hash); err != nil {
		return 0, fmt.Errorf("account_service_password_update_failed: %w", err)
	}

	keepHash := ""
	if currentRefreshToken != "" {
		keepHash = sec.HashToken(currentRefreshToken)
	}

	// The new password is already stored; a revocation failure is reported but not undone
	revoked, err := service.sessions.RevokeOthers(context, userID, keepHash)
	if err != nil {
		service.logger.ErrorContext(context, "other_sessions_revoke_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return 0, apperr.StorageError(err)
	}

	service.logger.InfoContext(context, "user_password_changed",
		slog.String("user_id", userID),
		slog.Int("revoked_sessions", revoked),
	)
	return revoked, nil
}
