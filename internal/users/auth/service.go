// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/mail"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for signing and verifying access tokens.
type TokenProvider interface {

	/*
		GenerateAccessToken creates a signed JWT for a session.

		Parameters:
		  - userID: The ID of the account.
		  - email: The email of the account.
		  - sessionID: The session the token belongs to.
		  - timeToLive: The duration before the token expires.

		Returns:
		  - string: A signed JWT
		  - error: Signing failures
	*/
	GenerateAccessToken(userID, email, sessionID string, timeToLive time.Duration) (string, error)

	/*
		VerifyToken validates a JWT and returns its claims.

		Returns:
		  - *sec.AuthClaims: Verified claims
		  - error: sec.ErrTokenExpired or a validation failure
	*/
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Config holds the sign-up behaviour switches.
type Config struct {
	RequireEmailConfirmation bool
	PublicBaseURL            string
	SiteTitle                string
}

// Service is the Session Store.
//
// # Concurrency
//
// Service is safe for concurrent use. Listener callbacks run synchronously on
// the goroutine that performed the operation, after storage has committed.
type Service struct {
	userRepository              UserRepository
	sessionRepository           SessionRepository
	verificationTokenRepository VerificationTokenRepository
	tokenProvider               TokenProvider
	mailer                      mail.Sender
	config                      Config
	logger                      *slog.Logger
	listeners                   registry
	now                         func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	verifyRepo VerificationTokenRepository,
	tokenProv TokenProvider,
	mailer mail.Sender,
	config Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:              userRepo,
		sessionRepository:           sessionRepo,
		verificationTokenRepository: verifyRepo,
		tokenProvider:               tokenProv,
		mailer:                      mailer,
		config:                      config,
		logger:                      logger,
		now:                         time.Now,
	}
}

// # Subscription

/*
Subscribe registers a listener for session changes.

Listeners are invoked synchronously, in registration order. The returned
function unsubscribes and is safe to call more than once.
*/
func (service *Service) Subscribe(listener Listener) func() {
	return service.listeners.subscribe(listener)
}

// SubscriberCount reports the number of registered listeners.
func (service *Service) SubscriberCount() int {
	return service.listeners.count()
}

// # Sign-in

// SignInInput defines credentials for an authentication attempt.
type SignInInput struct {
	Email               string
	Password            string
	CurrentRefreshToken string // Session of this browser context, replaced on success.
	UserAgent           string
	IPAddress           string
}

/*
SignIn verifies credentials and opens a new session.

Parameters:
  - context: context.Context (origin via WithOrigin)
  - input: SignInInput

Returns:
  - *Session: New session with raw tokens
  - error: AuthError 401 for bad credentials, 503 when storage is unreachable
*/
func (service *Service) SignIn(context context.Context, input SignInInput) (*Session, error) {
	email := normalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Unknown email and wrong password share one message to prevent enumeration
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if isNotFound(err) {
			sec.SimulatePasswordCheck(input.Password)
			return nil, apperr.AuthError(msgInvalidCredentials, http.StatusUnauthorized)
		}
		return nil, unavailable(err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.InfoContext(context, "sign_in_rejected", slog.String("user_id", user.ID))
		return nil, apperr.AuthError(msgInvalidCredentials, http.StatusUnauthorized)
	}

	if service.config.RequireEmailConfirmation && !user.EmailConfirmed {
		return nil, apperr.AuthError(msgEmailNotConfirmed, http.StatusUnauthorized)
	}

	// One session per browser context
	previousID := service.endQuietly(context, input.CurrentRefreshToken)

	session, err := service.issueSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_signed_in",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID),
	)

	service.listeners.emit(Event{
		Kind:              EventSignedIn,
		Origin:            OriginFrom(context),
		Session:           session,
		PreviousSessionID: previousID,
		UserID:            user.ID,
	})

	return session, nil
}

// # Sign-up

// SignUpInput holds the data required to create an account.
type SignUpInput struct {
	Email     string
	Password  string
	FullName  string
	UserAgent string
	IPAddress string
}

// SignUpResult is the outcome of [Service.SignUp]. Session is nil while the
// email address awaits confirmation.
type SignUpResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

/*
SignUp validates, hashes, and persists a new account.

Parameters:
  - context: context.Context (origin via WithOrigin)
  - input: SignUpInput

Returns:
  - *SignUpResult: The user, and a session unless confirmation is required
  - error: ValidationError, AuthError 400 (weak password), 409 (duplicate) or 503
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*SignUpResult, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldFullName, fullName).
		MinLen(FieldFullName, fullName, MinFullNameLength).
		MaxLen(FieldFullName, fullName, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return nil, apperr.AuthError(msgWeakPassword, http.StatusBadRequest)
	}
	if len(input.Password) > sec.MaxPasswordBytes {
		return nil, apperr.AuthError(msgLongPassword, http.StatusBadRequest)
	}

	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.AuthError(msgAlreadyRegistered, http.StatusConflict)
	} else if !isNotFound(err) {
		return nil, unavailable(err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   hashedPassword,
		FullName:       fullName,
		EmailConfirmed: !service.config.RequireEmailConfirmation,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		// Lost a race with a concurrent sign-up for the same address
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
			return nil, apperr.AuthError(msgAlreadyRegistered, http.StatusConflict)
		}
		return nil, unavailable(err)
	}

	service.logger.InfoContext(context, "user_signed_up",
		slog.String("user_id", user.ID),
		slog.Bool("confirmation_required", service.config.RequireEmailConfirmation),
	)

	if service.config.RequireEmailConfirmation {
		service.sendVerification(context, user)
		return &SignUpResult{User: user}, nil
	}

	session, err := service.issueSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.listeners.emit(Event{
		Kind:    EventSignedIn,
		Origin:  OriginFrom(context),
		Session: session,
		UserID:  user.ID,
	})

	return &SignUpResult{User: user, Session: session}, nil
}

/*
VerifyEmail confirms a user's email address using a token from the sign-up email.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: AuthError 400 for unknown tokens, 503 when storage is unreachable
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {
	if token == "" {
		return apperr.AuthError(msgInvalidVerify, http.StatusBadRequest)
	}

	tokenHash := sec.HashToken(token)
	userID, err := service.verificationTokenRepository.Get(context, tokenHash)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return apperr.AuthError(msgInvalidVerify, http.StatusBadRequest)
		}
		return unavailable(err)
	}

	if err := service.userRepository.MarkConfirmed(context, userID); err != nil {
		if isNotFound(err) {
			return apperr.AuthError(msgInvalidVerify, http.StatusBadRequest)
		}
		return unavailable(err)
	}

	_ = service.verificationTokenRepository.Delete(context, tokenHash)

	service.logger.InfoContext(context, "user_email_confirmed", slog.String("user_id", userID))
	return nil
}

// # Sign-out

/*
SignOut revokes the session the tokens represent.

The refresh token identifies the session when present; otherwise the session
id carried by a valid access token does. It is idempotent: empty, unknown or
already revoked tokens return nil and emit nothing.

Parameters:
  - context: context.Context (origin via WithOrigin)
  - tokens: Tokens

Returns:
  - error: AuthError 503 when storage is unreachable
*/
func (service *Service) SignOut(context context.Context, tokens Tokens) error {
	session, tokenHash, err := service.lookupSession(context, tokens)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return unavailable(err)
	}

	if err := service.sessionRepository.Revoke(context, tokenHash, session.UserID); err != nil {
		return unavailable(err)
	}

	service.logger.InfoContext(context, "user_signed_out",
		slog.String("user_id", session.UserID),
		slog.String("session_id", session.ID),
	)

	service.listeners.emit(Event{
		Kind:              EventSignedOut,
		Origin:            OriginFrom(context),
		PreviousSessionID: session.ID,
		UserID:            session.UserID,
	})

	return nil
}

// # Session Restore & Rotation

/*
Restore returns the session the request's tokens represent.

A valid access token is accepted only while the session it names is still
stored (and, when a refresh token is also present, only if both belong to
the same session). A missing or expired access
token triggers a silent [Service.Refresh]. A refresh rejected as invalid is
treated as signed-out: Restore returns (nil, nil) and emits EventSignedOut.

Parameters:
  - context: context.Context (origin via WithOrigin)
  - tokens: Tokens

Returns:
  - *Session: Current session with User loaded, or nil when signed out
  - error: AuthError 503 when storage is unreachable
*/
func (service *Service) Restore(context context.Context, tokens Tokens) (*Session, error) {
	if tokens.Empty() {
		return nil, nil
	}

	if tokens.AccessToken != "" {
		claims, err := service.tokenProvider.VerifyToken(tokens.AccessToken)
		if err == nil {
			session, err := service.sessionFromClaims(context, claims, tokens)
			if err != nil {
				return nil, err
			}
			if session != nil {
				return session, nil
			}

			// The session was ended from another browser context
			service.signedOutElsewhere(context, claims.SessionID, claims.UserID)
			return nil, nil
		}
	}

	if tokens.RefreshToken == "" {
		return nil, nil
	}

	session, err := service.Refresh(context, tokens.RefreshToken, tokens.UserAgent, tokens.IPAddress)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusServiceUnavailable {
			return nil, err
		}

		service.logger.InfoContext(context, "silent_refresh_rejected")
		service.signedOutElsewhere(context, "", "")
		return nil, nil
	}

	return session, nil
}

/*
CurrentUser returns the signed-in user, or (nil, nil) when signed out.

Parameters:
  - context: context.Context
  - tokens: Tokens

Returns:
  - *User: Signed-in account
  - error: AuthError 503 when storage is unreachable
*/
func (service *Service) CurrentUser(context context.Context, tokens Tokens) (*User, error) {
	session, err := service.Restore(context, tokens)
	if err != nil || session == nil {
		return nil, err
	}
	return session.User, nil
}

/*
Refresh implements refresh token rotation.

The presented token is revoked and a new session is issued. Subscribers get
EventTokenRefreshed carrying the previous session id.

Parameters:
  - context: context.Context (origin via WithOrigin)
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *Session: The rotated session
  - error: AuthError 401 for an invalid token, 503 when storage is unreachable
*/
func (service *Service) Refresh(context context.Context, refreshToken, userAgent, ipAddress string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.AuthError(msgInvalidRefresh, http.StatusUnauthorized)
	}

	tokenHash := sec.HashToken(refreshToken)
	previous, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.AuthError(msgInvalidRefresh, http.StatusUnauthorized)
		}
		return nil, unavailable(err)
	}

	user, err := service.userRepository.FindByID(context, previous.UserID)
	if err != nil {
		if isNotFound(err) {
			_ = service.sessionRepository.Revoke(context, tokenHash, previous.UserID)
			return nil, apperr.AuthError(msgInvalidRefresh, http.StatusUnauthorized)
		}
		return nil, unavailable(err)
	}

	// Rotation: the old token must never work again
	if err := service.sessionRepository.Revoke(context, tokenHash, previous.UserID); err != nil {
		return nil, unavailable(err)
	}

	session, err := service.issueSession(context, user, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "session_refreshed",
		slog.String("user_id", user.ID),
		slog.String("previous_session_id", previous.ID),
		slog.String("session_id", session.ID),
	)

	service.listeners.emit(Event{
		Kind:              EventTokenRefreshed,
		Origin:            OriginFrom(context),
		Session:           session,
		PreviousSessionID: previous.ID,
		UserID:            user.ID,
	})

	return session, nil
}

// # Internal Helpers

func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*Session, error) {
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	now := service.now()
	session := &Session{
		ID:              uuid.New(),
		UserID:          user.ID,
		Email:           user.Email,
		User:            user,
		RefreshToken:    refreshToken,
		IssuedAt:        now,
		AccessExpiresAt: now.Add(AccessTokenTTL),
		ExpiresAt:       now.Add(RefreshTokenTTL),
		UserAgent:       userAgent,
		IPAddress:       ipAddress,
	}

	session.AccessToken, err = service.tokenProvider.GenerateAccessToken(user.ID, user.Email, session.ID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.sessionRepository.Create(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, unavailable(err)
	}

	return session, nil
}

// sessionFromClaims rebuilds the session for a verified access token.
// It returns (nil, nil) when the session no longer exists.
func (service *Service) sessionFromClaims(context context.Context, claims *sec.AuthClaims, tokens Tokens) (*Session, error) {
	session := &Session{
		ID:           claims.SessionID,
		UserID:       claims.UserID,
		Email:        claims.Email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if claims.ExpiresAt != nil {
		session.AccessExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}

	stored, tokenHash, err := service.sessionRepository.FindByID(context, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	if tokens.RefreshToken != "" && sec.HashToken(tokens.RefreshToken) != tokenHash {
		return nil, nil
	}
	session.ExpiresAt = stored.ExpiresAt

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	session.User = user

	return session, nil
}

// lookupSession finds the stored session behind the refresh token, falling
// back to the session id of a valid access token.
func (service *Service) lookupSession(context context.Context, tokens Tokens) (*Session, string, error) {
	if tokens.RefreshToken != "" {
		tokenHash := sec.HashToken(tokens.RefreshToken)
		session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
		if err == nil {
			return session, tokenHash, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, "", err
		}
	}

	if tokens.AccessToken == "" {
		return nil, "", ErrSessionNotFound
	}

	claims, err := service.tokenProvider.VerifyToken(tokens.AccessToken)
	if err != nil || claims.SessionID == "" {
		return nil, "", ErrSessionNotFound
	}

	return service.sessionRepository.FindByID(context, claims.SessionID)
}

// endQuietly revokes a session without failing the caller. It returns the
// revoked session id, if any.
func (service *Service) endQuietly(context context.Context, refreshToken string) string {
	if refreshToken == "" {
		return ""
	}

	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return ""
	}

	if err := service.sessionRepository.Revoke(context, tokenHash, session.UserID); err != nil {
		service.logger.WarnContext(context, "previous_session_revoke_failed",
			slog.String("session_id", session.ID),
			slog.Any("error", err),
		)
		return ""
	}
	return session.ID
}

func (service *Service) signedOutElsewhere(context context.Context, sessionID, userID string) {
	service.listeners.emit(Event{
		Kind:              EventSignedOut,
		Origin:            OriginFrom(context),
		PreviousSessionID: sessionID,
		UserID:            userID,
	})
}

func (service *Service) sendVerification(context context.Context, user *User) {
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err != nil {
		service.logger.ErrorContext(context, "verification_token_failed", slog.Any("error", err))
		return
	}

	if err := service.verificationTokenRepository.Set(context, sec.HashToken(token), user.ID, VerificationTokenTTL); err != nil {
		service.logger.ErrorContext(context, "verification_token_failed", slog.Any("error", err))
		return
	}

	link := strings.TrimRight(service.config.PublicBaseURL, "/") + "/auth/verify-email?token=" + url.QueryEscape(token)
	message, err := mail.EmailVerification(user.Email, mail.VerificationData{
		SiteTitle: service.config.SiteTitle,
		Name:      user.FullName,
		Link:      link,
	})
	if err == nil {
		err = service.mailer.Send(context, message)
	}
	if err != nil {
		service.logger.WarnContext(context, "verification_email_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	return errors.Is(err, dberr.ErrNotFound)
}

// unavailable maps a backend failure to the client-safe 503 AuthError.
func unavailable(cause error) error {
	appError := apperr.AuthError(msgUnavailable, http.StatusServiceUnavailable)
	appError.Cause = cause
	return appError
}
