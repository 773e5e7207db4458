// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// csrfTokenLength is the byte length of the random CSRF token.
const csrfTokenLength = 32

// CSRFConfig controls the CSRF cookie attributes.
type CSRFConfig struct {
	CookieSecure bool
}

// CSRF implements the double-submit cookie pattern.
//
// # Flow
//  1. Safe methods (GET, HEAD, OPTIONS) pass and receive a csrf_token cookie if missing.
//  2. Requests carrying an Authorization header are exempt: browsers never attach it on their own.
//  3. Unsafe methods without a session cookie are exempt: there is no ambient credential to abuse.
//  4. Otherwise the X-CSRF-Token header must equal the csrf_token cookie.
func CSRF(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if isSafeMethod(request.Method) {
				EnsureCSRFCookie(writer, request, config)
				next.ServeHTTP(writer, request)
				return
			}

			if request.Header.Get(constants.HeaderAuthorization) != "" || !hasSessionCookie(request) {
				next.ServeHTTP(writer, request)
				return
			}

			cookie, err := request.Cookie(constants.CSRFCookieName)
			headerToken := request.Header.Get(constants.HeaderCSRFToken)

			if err != nil || cookie.Value == "" || headerToken == "" ||
				subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(headerToken)) != 1 {
				ctxutil.GetLogger(request.Context()).Warn("csrf_validation_failed",
					slog.String("method", request.Method),
					slog.String("path", request.URL.Path),
				)
				writeError(writer, http.StatusForbidden, "CSRF_FAILED", "CSRF token validation failed")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// EnsureCSRFCookie issues a csrf_token cookie when the client has none and returns its value.
func EnsureCSRFCookie(writer http.ResponseWriter, request *http.Request, config CSRFConfig) string {
	if cookie, err := request.Cookie(constants.CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token, err := sec.GenerateSecureToken(csrfTokenLength)
	if err != nil {
		ctxutil.GetLogger(request.Context()).Error("csrf_token_generation_failed", slog.Any("error", err))
		return ""
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: false, // read by the client and echoed in X-CSRF-Token
		Secure:   config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// isSafeMethod reports whether the HTTP method is read-only.
func isSafeMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// hasSessionCookie reports whether the browser sent any session cookie.
func hasSessionCookie(request *http.Request) bool {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		if cookie, err := request.Cookie(name); err == nil && cookie.Value != "" {
			return true
		}
	}
	return false
}
