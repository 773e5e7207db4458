// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/mail"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// # Fakes

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
	err   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*auth.User{}}
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("A record with the same value already exists")
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) MarkConfirmed(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	user.EmailConfirmed = true
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[user.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	existing.FullName = user.FullName
	existing.AvatarURL = user.AvatarURL
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	existing.PasswordHash = newHash
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
	err      error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*auth.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, tokenHash string, session *auth.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[tokenHash] = &auth.Session{
		ID: session.ID, UserID: session.UserID, Email: session.Email,
		IssuedAt: session.IssuedAt, ExpiresAt: session.ExpiresAt,
	}
	return nil
}

func (f *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	session, ok := f.sessions[tokenHash]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessions) FindByID(_ context.Context, sessionID string) (*auth.Session, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, "", f.err
	}
	for hash, session := range f.sessions {
		if session.ID == sessionID {
			copied := *session
			return &copied, hash, nil
		}
	}
	return nil, "", auth.ErrSessionNotFound
}

func (f *fakeSessions) Revoke(_ context.Context, tokenHash, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessions) RevokeOthers(_ context.Context, userID, keepHash string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	revoked := 0
	for hash, session := range f.sessions {
		if session.UserID == userID && hash != keepHash {
			delete(f.sessions, hash)
			revoked++
		}
	}
	return revoked, nil
}

func (f *fakeSessions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type fakeVerifyTokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (f *fakeVerifyTokens) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeVerifyTokens) Get(_ context.Context, tokenHash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.tokens[tokenHash]
	if !ok {
		return "", auth.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeVerifyTokens) Delete(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tokenHash)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (f *fakeMailer) Send(_ context.Context, message mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

// # Fixture

type fixture struct {
	service  *auth.Service
	users    *fakeUsers
	sessions *fakeSessions
	verify   *fakeVerifyTokens
	mailer   *fakeMailer
	tokens   *sec.TokenService
}

func newFixture(t *testing.T, config auth.Config) *fixture {
	t.Helper()

	tokens, err := sec.NewHMACTokenService(testSecret, "folio")
	require.NoError(t, err)

	f := &fixture{
		users:    newFakeUsers(),
		sessions: newFakeSessions(),
		verify:   &fakeVerifyTokens{tokens: map[string]string{}},
		mailer:   &fakeMailer{},
		tokens:   tokens,
	}
	f.service = auth.NewService(f.users, f.sessions, f.verify, tokens, f.mailer, config,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

// seedUser stores a confirmed account with the given password.
func (f *fixture) seedUser(t *testing.T, id, email, password string) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{ID: id, Email: email, PasswordHash: hash, FullName: "Test User", EmailConfirmed: true}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

// recordEvents subscribes and returns a pointer to the captured events.
func (f *fixture) recordEvents() *[]auth.Event {
	events := &[]auth.Event{}
	f.service.Subscribe(func(event auth.Event) {
		*events = append(*events, event)
	})
	return events
}
