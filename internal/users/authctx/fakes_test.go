// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authctx_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/mail"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/internal/users/authctx"
	"github.com/taibuivan/folio/internal/users/role"
)

// # Session Store Fakes

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) MarkConfirmed(context.Context, string) error { return nil }

func (m *memoryUsers) UpdateProfile(context.Context, *auth.User) error { return nil }

func (m *memoryUsers) UpdatePassword(context.Context, string, string) error { return nil }

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
	err      error
}

func (m *memorySessions) Create(_ context.Context, tokenHash string, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sessions[tokenHash] = auth.Session{ID: session.ID, UserID: session.UserID, Email: session.Email, ExpiresAt: session.ExpiresAt}
	return nil
}

func (m *memorySessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	session, ok := m.sessions[tokenHash]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return &session, nil
}

func (m *memorySessions) FindByID(_ context.Context, sessionID string) (*auth.Session, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, "", m.err
	}
	for hash, session := range m.sessions {
		if session.ID == sessionID {
			return &session, hash, nil
		}
	}
	return nil, "", auth.ErrSessionNotFound
}

func (m *memorySessions) Revoke(_ context.Context, tokenHash, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

func (m *memorySessions) RevokeOthers(context.Context, string, string) (int, error) { return 0, nil }

func (m *memorySessions) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

type noVerification struct{}

func (noVerification) Set(context.Context, string, string, time.Duration) error { return nil }
func (noVerification) Get(context.Context, string) (string, error)              { return "", auth.ErrTokenNotFound }
func (noVerification) Delete(context.Context, string) error                     { return nil }

type noMail struct{}

func (noMail) Send(context.Context, mail.Message) error { return nil }

// # Role Fakes

type memoryRoles struct {
	mu    sync.Mutex
	roles map[string][]sec.UserRole
	err   error
}

func (m *memoryRoles) RolesForUser(_ context.Context, userID string) ([]sec.UserRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.roles[userID], nil
}

func (m *memoryRoles) ListAssignments(context.Context) ([]*role.Assignment, error) { return nil, nil }
func (m *memoryRoles) FindByID(context.Context, string) (*role.Assignment, error) {
	return nil, dberr.ErrNotFound
}
func (m *memoryRoles) Create(context.Context, *role.Assignment) error { return nil }
func (m *memoryRoles) Delete(context.Context, string) error           { return nil }

// blockingResolver parks inside Resolve until released.
type blockingResolver struct {
	entered chan struct{}
	release chan struct{}
	role    sec.UserRole
}

func (b *blockingResolver) Resolve(context.Context, string) sec.UserRole {
	b.entered <- struct{}{}
	<-b.release
	return b.role
}

// # Fixture

type fixture struct {
	store    *auth.Service
	sessions *memorySessions
	roles    *memoryRoles
	resolver *role.Resolver
	logger   *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewHMACTokenService("0123456789abcdef0123456789abcdef", "folio")
	require.NoError(t, err)

	users := &memoryUsers{users: map[string]*auth.User{}}
	for id, email := range map[string]string{
		"u-admin":  "admin@example.com",
		"u-editor": "editor@example.com",
		"u-plain":  "plain@example.com",
	} {
		hash, err := sec.HashPassword("secret1")
		require.NoError(t, err)
		users.users[id] = &auth.User{ID: id, Email: email, PasswordHash: hash, EmailConfirmed: true}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := &memorySessions{sessions: map[string]auth.Session{}}
	roles := &memoryRoles{roles: map[string][]sec.UserRole{
		"u-admin":  {sec.RoleEditor, sec.RoleAdmin},
		"u-editor": {sec.RoleEditor},
	}}

	return &fixture{
		store:    auth.NewService(users, sessions, noVerification{}, tokens, noMail{}, auth.Config{}, logger),
		sessions: sessions,
		roles:    roles,
		resolver: role.NewResolver(roles, logger),
		logger:   logger,
	}
}

// context returns an initialised auth context over the fixture's store.
func (f *fixture) context(t *testing.T, tokens auth.Tokens) *authctx.Context {
	t.Helper()
	authContext := authctx.New(f.store, f.resolver, f.logger)
	require.NoError(t, authContext.Initialize(context.Background(), tokens))
	t.Cleanup(authContext.Dispose)
	return authContext
}

// signedIn returns the tokens of a fresh session for email.
func (f *fixture) signedIn(t *testing.T, email string) auth.Tokens {
	t.Helper()
	session, err := f.store.SignIn(context.Background(), auth.SignInInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return auth.Tokens{AccessToken: session.AccessToken, RefreshToken: session.RefreshToken}
}
