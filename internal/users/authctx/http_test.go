// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authctx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/internal/users/authctx"
	"github.com/taibuivan/folio/internal/users/guard"
)

func newRouter(f *fixture) chi.Router {
	router := chi.NewRouter()
	router.Use(authctx.Middleware(authctx.NewFactory(f.store, f.resolver, f.logger), auth.CookieConfig{}))

	router.Route("/auth", authctx.NewHandler(auth.CookieConfig{}, middleware.CSRFConfig{}, nil).RegisterRoutes)
	router.With(guard.Protect(f.logger)).Get("/admin/users", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte("admin content"))
	})
	router.Get("/whoami", func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			writer.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = writer.Write([]byte(principal.UserID + ":" + string(principal.Role)))
	})
	return router
}

// cookieValue returns the last Set-Cookie value for name, which is the one a browser keeps.
func cookieValue(response *http.Response, name string) (string, bool) {
	value, found := "", false
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			value, found = cookie.Value, true
		}
	}
	return value, found
}

type stateEnvelope struct {
	Data authctx.State `json:"data"`
}

/* TestMiddleware_Anonymous attaches a context without a principal. */
func TestMiddleware_Anonymous(t *testing.T) {
	router := newRouter(newFixture(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
}

/* TestMiddleware_BearerToken authenticates from the Authorization header. */
func TestMiddleware_BearerToken(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	tokens := f.signedIn(t, "admin@example.com")

	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+tokens.AccessToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "u-admin:admin", recorder.Body.String())
}

/* TestMiddleware_RotatesCookies rewrites cookies after a silent refresh. */
func TestMiddleware_RotatesCookies(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	tokens := f.signedIn(t, "editor@example.com")

	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: tokens.RefreshToken})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "u-editor:editor", recorder.Body.String())

	rotated, ok := cookieValue(recorder.Result(), constants.RefreshTokenCookieName)
	require.True(t, ok)
	assert.NotEqual(t, tokens.RefreshToken, rotated)

	_, ok = cookieValue(recorder.Result(), constants.AccessTokenCookieName)
	assert.True(t, ok)
}

/* TestMiddleware_ClearsStaleCookies expires cookies of a revoked session. */
func TestMiddleware_ClearsStaleCookies(t *testing.T) {
	router := newRouter(newFixture(t))

	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "revoked"})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	for _, cookie := range recorder.Result().Cookies() {
		assert.Equal(t, -1, cookie.MaxAge, cookie.Name)
	}
	_, ok := cookieValue(recorder.Result(), constants.RefreshTokenCookieName)
	assert.True(t, ok)
}

/* TestMiddleware_SignedOutAccessToken redirects an access token whose session was ended. */
func TestMiddleware_SignedOutAccessToken(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	tokens := f.signedIn(t, "admin@example.com")

	require.NoError(t, f.store.SignOut(context.Background(), tokens))
	require.NoError(t, f.store.SignOut(context.Background(), tokens))

	t.Run("bearer", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+tokens.AccessToken)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, constants.SignInPath, recorder.Header().Get("Location"))
		assert.NotContains(t, recorder.Body.String(), "admin content")
	})

	t.Run("access cookie only", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: tokens.AccessToken})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusFound, recorder.Code)
		cleared, ok := cookieValue(recorder.Result(), constants.AccessTokenCookieName)
		assert.True(t, ok)
		assert.Empty(t, cleared)
	})
}

/* TestMiddleware_BearerSignOut ends a session that only ever presented an access token. */
func TestMiddleware_BearerSignOut(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	tokens := f.signedIn(t, "editor@example.com")

	request := httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+tokens.AccessToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+tokens.AccessToken)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusFound, recorder.Code)
}

/* TestMiddleware_StoreOutage keeps answering loading, never redirecting, while the store is down. */
func TestMiddleware_StoreOutage(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	tokens := f.signedIn(t, "admin@example.com")
	f.sessions.fail(errors.New("redis down"))

	for attempt := 0; attempt < 3; attempt++ {
		request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: tokens.AccessToken})
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: tokens.RefreshToken})
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Empty(t, recorder.Header().Get("Location"))
		assert.Equal(t, "1", recorder.Header().Get(constants.HeaderRetryAfter))
		assert.Empty(t, recorder.Result().Cookies(), "cookies stay untouched during an outage")
	}

	f.sessions.fail(nil)

	request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: tokens.AccessToken})
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: tokens.RefreshToken})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "admin content", recorder.Body.String())
}

/* TestHandler_SignInFlow signs in, reads state and signs out over HTTP. */
func TestHandler_SignInFlow(t *testing.T) {
	router := newRouter(newFixture(t))

	// Sign in
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/sign-in",
		strings.NewReader(`{"email":"admin@example.com","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	var signedIn stateEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&signedIn))
	assert.True(t, signedIn.Data.IsAdmin)

	refreshToken, ok := cookieValue(recorder.Result(), constants.RefreshTokenCookieName)
	require.True(t, ok)

	// Sign out with the issued cookie
	request := httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: refreshToken})
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	cleared, ok := cookieValue(recorder.Result(), constants.RefreshTokenCookieName)
	assert.True(t, ok)
	assert.Empty(t, cleared)

	// The old cookie no longer authenticates
	request = httptest.NewRequest(http.MethodGet, "/auth", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: refreshToken})
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var state stateEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&state))
	assert.False(t, state.Data.IsAuthenticated)
}

/* TestHandler_SignInRejected answers 401 with the AuthError envelope. */
func TestHandler_SignInRejected(t *testing.T) {
	router := newRouter(newFixture(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/sign-in",
		strings.NewReader(`{"email":"admin@example.com","password":"nope!!"}`)))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid login credentials")
	assert.Contains(t, recorder.Body.String(), "AUTH_ERROR")
}

/* TestHandler_SignOutWithoutSession succeeds and still clears cookies. */
func TestHandler_SignOutWithoutSession(t *testing.T) {
	router := newRouter(newFixture(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	_, ok := cookieValue(recorder.Result(), constants.AccessTokenCookieName)
	assert.True(t, ok)
}

/* TestHandler_CSRF issues a readable token cookie. */
func TestHandler_CSRF(t *testing.T) {
	router := newRouter(newFixture(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/auth/csrf", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	token, ok := cookieValue(recorder.Result(), constants.CSRFCookieName)
	require.True(t, ok)
	assert.Contains(t, recorder.Body.String(), token)
}
