// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// # Transport Helpers

// CookieConfig controls the attributes of session cookies.
type CookieConfig struct {
	Secure bool
}

/*
TokensFromRequest collects the credentials a request carries.

An "Authorization: Bearer" header takes precedence over the access token
cookie. The refresh token is only ever read from its cookie.
*/
func TokensFromRequest(request *http.Request) Tokens {
	tokens := Tokens{
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	}

	if header := request.Header.Get(constants.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			tokens.AccessToken = strings.TrimSpace(token)
		}
	}

	if tokens.AccessToken == "" {
		if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil {
			tokens.AccessToken = cookie.Value
		}
	}

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		tokens.RefreshToken = cookie.Value
	}

	return tokens
}

// WriteSessionCookies stores a session's tokens in HttpOnly cookies.
func WriteSessionCookies(writer http.ResponseWriter, session *Session, config CookieConfig) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.AccessExpiresAt,
		Secure:   config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.ExpiresAt,
		Secure:   config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(writer http.ResponseWriter, config CookieConfig) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.SessionCookiePath,
			MaxAge:   -1,
			Secure:   config.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// # Handler

// Handler serves the Session Store endpoints that do not depend on the
// caller's browser context. Sign-in, sign-up, sign-out and refresh go through
// authctx so that the context observes its own transitions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the handler under /auth.
//
// # Endpoints
//   - GET  /verify-email?token= : Link target from the confirmation email.
//   - POST /verify-email        : Same, with a JSON body.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/verify-email", handler.verifyEmail)
	router.Post("/verify-email", handler.verifyEmail)
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

/*
VerifyEmail confirms a user's email ownership.

Request:
  - Query: token, or Body: verifyEmailRequest

Response:
  - 200: Email confirmed
  - 400: AuthError: Unknown or expired token
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	token := request.URL.Query().Get(FieldToken)

	if token == "" && request.Method == http.MethodPost {
		var input verifyEmailRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = input.Token
	}

	if err := handler.service.VerifyEmail(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Email verified successfully",
	})
}
