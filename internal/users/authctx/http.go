// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authctx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/users/auth"
)

// Handler serves the /auth endpoints that act on the request's [Context].
type Handler struct {
	cookies auth.CookieConfig
	csrf    middleware.CSRFConfig
	strict  func(http.Handler) http.Handler
}

// NewHandler constructs the /auth [Handler]. strict wraps the credential
// endpoints (typically a strict rate limit); nil leaves them unwrapped.
func NewHandler(cookies auth.CookieConfig, csrf middleware.CSRFConfig, strict func(http.Handler) http.Handler) *Handler {
	if strict == nil {
		strict = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{cookies: cookies, csrf: csrf, strict: strict}
}

// RegisterRoutes mounts the handler under /auth.
//
// # Endpoints
//   - GET  /         : Current auth state
//   - GET  /csrf     : Issue the CSRF cookie and return its value
//   - POST /sign-in  : Email and password sign-in
//   - POST /sign-up  : Account creation
//   - POST /sign-out : End the session (always clears cookies)
//   - POST /refresh  : Rotate the refresh token
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getState)
	router.Get("/csrf", handler.getCSRF)

	router.With(handler.strict).Post("/sign-in", handler.signIn)
	router.With(handler.strict).Post("/sign-up", handler.signUp)

	router.Post("/sign-out", handler.signOut)
	router.Post("/refresh", handler.refresh)
}

// # Request / Response Models

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type signUpResponse struct {
	User                 *auth.User `json:"user"`
	ConfirmationRequired bool       `json:"confirmation_required"`
	State                State      `json:"state"`
}

// # Handlers

func (handler *Handler) getState(writer http.ResponseWriter, request *http.Request) {
	authContext, err := requiredContext(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, authContext.State())
}

func (handler *Handler) getCSRF(writer http.ResponseWriter, request *http.Request) {
	token := middleware.EnsureCSRFCookie(writer, request, handler.csrf)
	respond.OK(writer, map[string]string{"csrf_token": token})
}

/*
POST /auth/sign-in.

Request:
  - body: signInRequest

Response:
  - 200: State (session cookies set)
  - 401: AuthError: Invalid login credentials
  - 503: AuthError: Authentication service unavailable
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	authContext, err := requiredContext(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input signInRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := authContext.SignIn(request.Context(), input.Email, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if session := authContext.Session(); session != nil {
		auth.WriteSessionCookies(writer, session, handler.cookies)
	}
	respond.OK(writer, authContext.State())
}

/*
POST /auth/sign-up.

Request:
  - body: signUpRequest

Response:
  - 201: signUpResponse (cookies set unless confirmation is required)
  - 400: ValidationError or AuthError (weak password)
  - 409: AuthError: User already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	authContext, err := requiredContext(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input signUpRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := authContext.SignUp(request.Context(), input.Email, input.Password, input.FullName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.Session != nil {
		auth.WriteSessionCookies(writer, result.Session, handler.cookies)
	}

	respond.Created(writer, signUpResponse{
		User:                 result.User,
		ConfirmationRequired: result.Session == nil,
		State:                authContext.State(),
	})
}

func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	authContext, err := requiredContext(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = authContext.SignOut(request.Context())
	auth.ClearSessionCookies(writer, handler.cookies)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	authContext, err := requiredContext(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := authContext.Refresh(request.Context()); err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusUnauthorized {
			auth.ClearSessionCookies(writer, handler.cookies)
		}
		respond.Error(writer, request, err)
		return
	}

	if session := authContext.Session(); session != nil {
		auth.WriteSessionCookies(writer, session, handler.cookies)
	}
	respond.OK(writer, authContext.State())
}

func requiredContext(request *http.Request) (*Context, error) {
	authContext := FromRequest(request)
	if authContext == nil {
		return nil, apperr.ServiceUnavailable("Authentication is not available")
	}
	return authContext, nil
}
