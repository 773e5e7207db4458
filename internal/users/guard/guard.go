// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard protects the admin area.

The guard is a three-state machine driven by the request's auth context:

	loading ──► authenticated    (serve the route)
	        └─► unauthenticated  (redirect to the sign-in page)

While loading, a neutral placeholder is returned and nothing of the protected
route is rendered. The guard checks authentication only. Role checks belong to
the services behind the route.
*/
package guard

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/users/authctx"
)

// Status is the guard's decision for one request.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (status Status) String() string {
	switch status {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// Evaluate maps an auth state to a guard status. Loading always wins.
func Evaluate(state authctx.State) Status {
	switch {
	case state.Loading:
		return StatusLoading
	case state.IsAuthenticated:
		return StatusAuthenticated
	default:
		return StatusUnauthenticated
	}
}

/*
Protect wraps protected routes.

# Responses
  - Loading: 503 with Retry-After and {"status":"loading"}.
  - Unauthenticated: 302 to the sign-in page (303 for non-GET). The original
    path is not preserved and no protected content is written.
  - Authenticated: the wrapped handler, whatever the role.

Requests that reach the guard without an auth context are unauthenticated.
*/
func Protect(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			state := authctx.State{}
			if authContext := authctx.FromRequest(request); authContext != nil {
				state = authContext.State()
			}

			switch Evaluate(state) {
			case StatusAuthenticated:
				next.ServeHTTP(writer, request)

			case StatusLoading:
				logger.WarnContext(request.Context(), "guard_state_loading",
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				)
				writer.Header().Set(constants.HeaderRetryAfter, "1")
				respond.JSON(writer, http.StatusServiceUnavailable, map[string]string{
					constants.FieldStatus: StatusLoading.String(),
				})

			default:
				logger.DebugContext(request.Context(), "guard_redirect",
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
					slog.String("path", request.URL.Path),
				)

				code := http.StatusFound
				if request.Method != http.MethodGet && request.Method != http.MethodHead {
					code = http.StatusSeeOther
				}
				writer.Header().Set("Location", constants.SignInPath)
				writer.WriteHeader(code)
			}
		})
	}
}
