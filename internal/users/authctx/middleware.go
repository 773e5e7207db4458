// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authctx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxkey"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/users/auth"
)

// Factory creates one [Context] per request.
type Factory struct {
	sessions SessionStore
	roles    RoleResolver
	logger   *slog.Logger
}

// NewFactory constructs a [Factory] over the shared Session Store and Role Resolver.
func NewFactory(sessions SessionStore, roles RoleResolver, logger *slog.Logger) *Factory {
	return &Factory{sessions: sessions, roles: roles, logger: logger}
}

// New returns an uninitialised [Context].
func (factory *Factory) New() *Context {
	return New(factory.sessions, factory.roles, factory.logger)
}

/*
Middleware attaches an initialised [Context] to every request.

# Flow
 1. Read tokens from the Authorization header or the session cookies.
 2. Initialize a fresh Context and store it under [ctxkey.KeyAuthContext].
 3. Rewrite cookies when the session was rotated, clear them when it is gone.
 4. Store a [sec.Principal] and enrich the request logger with user_id.
 5. Dispose the Context once the request completes.

A Session Store outage leaves the Context loading and the cookies untouched.
*/
func Middleware(factory *Factory, cookies auth.CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			tokens := auth.TokensFromRequest(request)

			authContext := factory.New()
			defer authContext.Dispose()

			// 1. Restore
			if err := authContext.Initialize(ctx, tokens); err == nil {

				// 2. Keep the browser's cookies in step with the store
				session := authContext.Session()
				switch {
				case session == nil && hasCookie(request):
					auth.ClearSessionCookies(writer, cookies)
				case session != nil && session.RefreshToken != "" && session.RefreshToken != tokens.RefreshToken:
					auth.WriteSessionCookies(writer, session, cookies)
				}
			}

			ctx = context.WithValue(ctx, ctxkey.KeyAuthContext, authContext)

			// 3. Identity for policy checks and logs
			if principal := authContext.Principal(); principal != nil {
				ctx = ctxutil.WithPrincipal(ctx, principal)
				ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(
					slog.String("user_id", principal.UserID),
					slog.String("role", principal.Role.String()),
				))
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// FromContext returns the request's [Context], or nil when the middleware did not run.
func FromContext(ctx context.Context) *Context {
	authContext, _ := ctx.Value(ctxkey.KeyAuthContext).(*Context)
	return authContext
}

// FromRequest is [FromContext] for an *http.Request.
func FromRequest(request *http.Request) *Context {
	return FromContext(request.Context())
}

func hasCookie(request *http.Request) bool {
	for _, cookie := range request.Cookies() {
		if (cookie.Name == constants.AccessTokenCookieName || cookie.Name == constants.RefreshTokenCookieName) && cookie.Value != "" {
			return true
		}
	}
	return false
}
