// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func withPrincipal(request *http.Request, role sec.UserRole) *http.Request {
	principal := &sec.Principal{UserID: "u1", Email: "jane@example.com", Role: role}
	return request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
}

/* TestRequireRole checks authentication first, then the role hierarchy. */
func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole(sec.RoleAdmin)(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, withPrincipal(httptest.NewRequest(http.MethodGet, "/admin/users", nil), sec.RoleEditor))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Insufficient permissions")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, withPrincipal(httptest.NewRequest(http.MethodGet, "/admin/users", nil), sec.RoleAdmin))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/* TestCSRF_SafeMethodIssuesCookie sets the token cookie on reads. */
func TestCSRF_SafeMethodIssuesCookie(t *testing.T) {
	handler := middleware.CSRF(middleware.CSRFConfig{})(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, constants.CSRFCookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
	}
}

/* TestCSRF_UnsafeMethod requires a matching header when a session cookie is present. */
func TestCSRF_UnsafeMethod(t *testing.T) {
	handler := middleware.CSRF(middleware.CSRFConfig{})(okHandler)

	newRequest := func(header string) *http.Request {
		request := httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "session"})
		request.AddCookie(&http.Cookie{Name: constants.CSRFCookieName, Value: "token"})
		if header != "" {
			request.Header.Set(constants.HeaderCSRFToken, header)
		}
		return request
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusForbidden},
		{"mismatch", "other", http.StatusForbidden},
		{"match", "token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, newRequest(tt.header))
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/* TestCSRF_ExemptWithoutAmbientCredentials lets bearer and cookieless posts through. */
func TestCSRF_ExemptWithoutAmbientCredentials(t *testing.T) {
	handler := middleware.CSRF(middleware.CSRFConfig{})(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "session"})
	request.Header.Set(constants.HeaderAuthorization, "Bearer abc")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/* TestRequestID reuses well-formed client ids and replaces anything else. */
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	tests := []struct {
		name   string
		header string
		reused bool
	}{
		{"well formed", "abc-123_DEF", true},
		{"missing", "", false},
		{"log injection", "abc\ninjected", false},
		{"too long", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderXRequestID, tt.header)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
			if tt.reused {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
				assert.Len(t, seen, 36)
			}
		})
	}
}

/* TestSecurityHeaders disables framing and sniffing. */
func TestSecurityHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.SecurityHeaders(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
}

// slowProfile refills far slower than any test runs.
var slowProfile = middleware.RateLimitProfile{Name: "test", RPS: 0.001, Burst: 3}

func spoofedRequest(index int) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	request.RemoteAddr = "203.0.113.7:51000"
	request.Header.Set(constants.HeaderXRealIP, fmt.Sprintf("10.0.0.%d", index))
	request.Header.Set(constants.HeaderXForwardedFor, fmt.Sprintf("10.0.1.%d, 203.0.113.7", index))
	return request
}

/* TestRateLimit_IgnoresProxyHeaders keys on the connection address, so rotating headers do not reset the bucket. */
func TestRateLimit_IgnoresProxyHeaders(t *testing.T) {
	context, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := middleware.RateLimitWith(context, slowProfile)(okHandler)

	codes := make([]int, 0, slowProfile.Burst+1)
	for index := 0; index <= slowProfile.Burst; index++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, spoofedRequest(index))
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

/* TestRateLimit_TrustedProxy separates clients once chi's RealIP rewrites the remote address. */
func TestRateLimit_TrustedProxy(t *testing.T) {
	context, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := chimw.RealIP(middleware.RateLimitWith(context, slowProfile)(okHandler))

	for index := 0; index <= slowProfile.Burst; index++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, spoofedRequest(index))
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

/* TestRealIP uses the host part of the remote address only. */
func TestRealIP(t *testing.T) {
	request := spoofedRequest(1)
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", middleware.RealIP(request))
}
