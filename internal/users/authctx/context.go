// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authctx composes the Session Store and the Role Resolver into one
object per browser context.

# Lifecycle

A [Context] starts in the loading state. [Context.Initialize] subscribes to
session events, restores the persisted session and resolves the role.
[Context.Dispose] unsubscribes. The HTTP [Middleware] runs both around every
request, so no state outlives the request that created it.

# Events

Session events are accepted when they were caused by this context (matching
origin) or when they replace or end the session this context holds. While a
role is being re-resolved the state reports Loading, so a guard evaluating
mid-resolution never sees an authorised view.
*/
package authctx

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Collaborators

// SessionStore is the subset of [auth.Service] the context drives.
type SessionStore interface {
	Subscribe(listener auth.Listener) func()
	Restore(context context.Context, tokens auth.Tokens) (*auth.Session, error)
	SignIn(context context.Context, input auth.SignInInput) (*auth.Session, error)
	SignUp(context context.Context, input auth.SignUpInput) (*auth.SignUpResult, error)
	SignOut(context context.Context, tokens auth.Tokens) error
	Refresh(context context.Context, refreshToken, userAgent, ipAddress string) (*auth.Session, error)
}

// RoleResolver maps an account to its effective role. It must fail closed.
type RoleResolver interface {
	Resolve(context context.Context, userID string) sec.UserRole
}

// # State

// State is a point-in-time view of a [Context].
type State struct {
	User            *auth.User   `json:"user"`
	Role            sec.UserRole `json:"role"`
	IsAdmin         bool         `json:"is_admin"`
	IsAuthenticated bool         `json:"is_authenticated"`
	Loading         bool         `json:"loading"`
}

// # Context

// Context is the auth state of one browser context.
//
// # Concurrency
//
// All methods are safe for concurrent use. Session events may arrive on the
// goroutine of another context's operation.
type Context struct {
	id       string
	sessions SessionStore
	roles    RoleResolver
	logger   *slog.Logger

	mu          sync.RWMutex
	session     *auth.Session
	role        sec.UserRole
	loading     bool
	disposed    bool
	tokens      auth.Tokens
	unsubscribe func()

	// Used for role lookups triggered by session events, which carry no context
	resolveContext context.Context
}

// New returns a Context in the loading state. Call [Context.Initialize] before use.
func New(sessions SessionStore, roles RoleResolver, logger *slog.Logger) *Context {
	return &Context{
		id:             uuid.New(),
		sessions:       sessions,
		roles:          roles,
		logger:         logger,
		loading:        true,
		resolveContext: context.Background(),
	}
}

// ID identifies the context as the origin of its session operations.
func (authContext *Context) ID() string {
	return authContext.id
}

/*
Initialize subscribes to session events, restores the session the tokens
represent and resolves its role.

On a storage failure the context stays in the loading state: the session is
neither known to be valid nor known to be gone.

Parameters:
  - context: context.Context
  - tokens: auth.Tokens (as read from the request)

Returns:
  - error: AuthError 503 when the Session Store is unreachable
*/
func (authContext *Context) Initialize(context context.Context, tokens auth.Tokens) error {
	authContext.mu.Lock()
	if authContext.unsubscribe != nil || authContext.disposed {
		authContext.mu.Unlock()
		return nil
	}
	authContext.tokens = tokens
	authContext.resolveContext = context
	authContext.unsubscribe = authContext.sessions.Subscribe(authContext.handleEvent)
	authContext.mu.Unlock()

	session, err := authContext.sessions.Restore(authContext.origin(context), tokens)
	if err != nil {
		authContext.logger.WarnContext(context, "auth_context_restore_failed", slog.Any("error", err))
		return err
	}

	authContext.adopt(context, session)
	return nil
}

// Dispose unsubscribes from session events. It is idempotent.
func (authContext *Context) Dispose() {
	authContext.mu.Lock()
	unsubscribe := authContext.unsubscribe
	authContext.unsubscribe = nil
	authContext.disposed = true
	authContext.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// State returns the current auth state.
func (authContext *Context) State() State {
	authContext.mu.RLock()
	defer authContext.mu.RUnlock()

	state := State{Loading: authContext.loading}
	if authContext.session == nil || authContext.loading {
		return state
	}

	state.User = authContext.session.User
	state.Role = authContext.role
	state.IsAuthenticated = true
	state.IsAdmin = authContext.role == sec.RoleAdmin
	return state
}

// Session returns the session the context currently holds, or nil.
func (authContext *Context) Session() *auth.Session {
	authContext.mu.RLock()
	defer authContext.mu.RUnlock()
	return authContext.session
}

// Principal returns the requester identity for policy checks, or nil when
// the context is signed out or still loading.
func (authContext *Context) Principal() *sec.Principal {
	state := authContext.State()
	if !state.IsAuthenticated {
		return nil
	}

	session := authContext.Session()
	if session == nil {
		return nil
	}
	return &sec.Principal{UserID: session.UserID, Email: session.Email, Role: state.Role}
}

// # Operations

/*
SignIn opens a session for this context, replacing the one it held.

Returns:
  - error: AuthError from the Session Store
*/
func (authContext *Context) SignIn(context context.Context, email, password string) error {
	tokens := authContext.currentTokens()

	session, err := authContext.sessions.SignIn(authContext.origin(context), auth.SignInInput{
		Email:               email,
		Password:            password,
		CurrentRefreshToken: tokens.RefreshToken,
		UserAgent:           tokens.UserAgent,
		IPAddress:           tokens.IPAddress,
	})
	if err != nil {
		return err
	}

	authContext.adopt(context, session)
	return nil
}

/*
SignUp creates an account. When the Session Store opens a session (no email
confirmation required) the context adopts it.

Returns:
  - *auth.SignUpResult: The account and its session, if any
  - error: ValidationError or AuthError from the Session Store
*/
func (authContext *Context) SignUp(context context.Context, email, password, fullName string) (*auth.SignUpResult, error) {
	tokens := authContext.currentTokens()

	result, err := authContext.sessions.SignUp(authContext.origin(context), auth.SignUpInput{
		Email:     email,
		Password:  password,
		FullName:  fullName,
		UserAgent: tokens.UserAgent,
		IPAddress: tokens.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	if result.Session != nil {
		authContext.adopt(context, result.Session)
	}
	return result, nil
}

// SignOut ends this context's session. The context is signed out locally
// even when the Session Store reports an error.
func (authContext *Context) SignOut(context context.Context) error {
	err := authContext.sessions.SignOut(authContext.origin(context), authContext.currentTokens())

	authContext.mu.Lock()
	authContext.session = nil
	authContext.role = sec.RoleNone
	authContext.loading = false
	authContext.tokens.AccessToken = ""
	authContext.tokens.RefreshToken = ""
	authContext.mu.Unlock()

	return err
}

/*
Refresh rotates this context's refresh token.

Returns:
  - error: AuthError 401 when the context holds no valid refresh token
*/
func (authContext *Context) Refresh(context context.Context) error {
	tokens := authContext.currentTokens()
	if tokens.RefreshToken == "" {
		return apperr.AuthError("Invalid or expired refresh token", http.StatusUnauthorized)
	}

	session, err := authContext.sessions.Refresh(authContext.origin(context), tokens.RefreshToken, tokens.UserAgent, tokens.IPAddress)
	if err != nil {
		return err
	}

	authContext.adopt(context, session)
	return nil
}

// # Event Handling

func (authContext *Context) handleEvent(event auth.Event) {
	authContext.mu.Lock()
	if authContext.disposed || !authContext.accepts(event) {
		authContext.mu.Unlock()
		return
	}

	switch event.Kind {
	case auth.EventSignedOut:
		authContext.session = nil
		authContext.role = sec.RoleNone
		authContext.loading = false
		authContext.tokens.AccessToken = ""
		authContext.tokens.RefreshToken = ""
		authContext.mu.Unlock()
		return

	case auth.EventSignedIn, auth.EventTokenRefreshed:
		previousUserID := ""
		if authContext.session != nil {
			previousUserID = authContext.session.UserID
		}

		authContext.setSession(event.Session)

		// A refresh keeps the user and therefore the role
		if event.Kind == auth.EventTokenRefreshed && previousUserID == event.UserID {
			authContext.mu.Unlock()
			return
		}

		authContext.loading = true
		resolveContext := authContext.resolveContext
		authContext.mu.Unlock()

		authContext.resolve(resolveContext, event.Session)
		return
	}

	authContext.mu.Unlock()
}

// accepts reports whether an event concerns this context. Caller holds mu.
func (authContext *Context) accepts(event auth.Event) bool {
	if event.Origin != "" && event.Origin == authContext.id {
		return true
	}
	return authContext.session != nil &&
		event.PreviousSessionID != "" &&
		event.PreviousSessionID == authContext.session.ID
}

// # Internal Helpers

// adopt installs a session returned by an operation unless an event already did.
func (authContext *Context) adopt(context context.Context, session *auth.Session) {
	authContext.mu.Lock()
	if authContext.disposed {
		authContext.mu.Unlock()
		return
	}

	if session == nil {
		authContext.session = nil
		authContext.role = sec.RoleNone
		authContext.loading = false
		authContext.mu.Unlock()
		return
	}

	if authContext.session != nil && authContext.session.ID == session.ID && !authContext.loading {
		authContext.mu.Unlock()
		return
	}

	authContext.setSession(session)
	authContext.loading = true
	authContext.mu.Unlock()

	authContext.resolve(context, session)
}

// setSession records the session and its tokens. Caller holds mu.
func (authContext *Context) setSession(session *auth.Session) {
	authContext.session = session
	if session == nil {
		return
	}
	authContext.tokens.AccessToken = session.AccessToken
	authContext.tokens.RefreshToken = session.RefreshToken
}

// resolve looks up the role for session and clears the loading flag, unless
// the session was replaced while the lookup was in flight.
func (authContext *Context) resolve(context context.Context, session *auth.Session) {
	resolved := authContext.roles.Resolve(context, session.UserID)

	authContext.mu.Lock()
	defer authContext.mu.Unlock()

	if authContext.session == nil || authContext.session.ID != session.ID {
		return
	}

	authContext.role = resolved
	authContext.loading = false
}

func (authContext *Context) currentTokens() auth.Tokens {
	authContext.mu.RLock()
	defer authContext.mu.RUnlock()
	return authContext.tokens
}

func (authContext *Context) origin(context context.Context) context.Context {
	return auth.WithOrigin(context, authContext.id)
}
