// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/contact"
	"github.com/taibuivan/folio/internal/core/message"
	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/mail"
)

// # Fakes

// memoryInbox is a message.Repository that only supports inserts.
type memoryInbox struct {
	mu      sync.Mutex
	rows    []*message.Message
	failure error
}

func (m *memoryInbox) Insert(_ context.Context, item *message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return m.failure
	}
	m.rows = append(m.rows, item)
	return nil
}

func (m *memoryInbox) List(context.Context, message.Filter, int, int) ([]*message.Message, int, error) {
	return m.rows, len(m.rows), nil
}
func (m *memoryInbox) Recent(context.Context, int) ([]*message.Message, error) { return m.rows, nil }
func (m *memoryInbox) Count(context.Context) (int, error)                      { return len(m.rows), nil }
func (m *memoryInbox) CountUnread(context.Context) (int, error)                { return len(m.rows), nil }
func (m *memoryInbox) SetRead(context.Context, string, bool) error             { return nil }
func (m *memoryInbox) Delete(context.Context, string) error                    { return nil }

type fakeSettings map[string]string

func (f fakeSettings) Value(_ context.Context, key string) (string, error) { return f[key], nil }

type recordingSender struct {
	mu       sync.Mutex
	sent     []mail.Message
	failures map[string]error
}

func (r *recordingSender) Send(_ context.Context, outbound mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, outbound)
	return r.failures[outbound.Template]
}

type fixture struct {
	service *contact.Service
	inbox   *memoryInbox
	sender  *recordingSender
}

func newFixture(settings fakeSettings, ownerEmail string) *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inbox := &memoryInbox{}
	sender := &recordingSender{failures: map[string]error{}}

	return &fixture{
		service: contact.NewService(message.NewService(inbox, logger), settings, sender, contact.Config{OwnerEmail: ownerEmail}, logger),
		inbox:   inbox,
		sender:  sender,
	}
}

func jane() contact.Submission {
	return contact.Submission{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Hi",
		Message: "Hello there",
	}
}

// # Service

/* TestSubmit_StoresAndSendsTwoEmails stores one unread row and sends confirmation plus owner notice. */
func TestSubmit_StoresAndSendsTwoEmails(t *testing.T) {
	f := newFixture(fakeSettings{setting.KeyContactEmail: "owner@example.com"}, "fallback@example.com")

	require.NoError(t, f.service.Submit(context.Background(), jane()))

	require.Len(t, f.inbox.rows, 1)
	row := f.inbox.rows[0]
	assert.False(t, row.Read)
	assert.Equal(t, "Jane", row.Name)
	assert.Equal(t, "Hello there", row.Message)

	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "jane@example.com", f.sender.sent[0].To)
	assert.Equal(t, "Thank you for contacting me!", f.sender.sent[0].Subject)
	assert.Equal(t, "owner@example.com", f.sender.sent[1].To)
	assert.Equal(t, "New Contact: Hi", f.sender.sent[1].Subject)
}

/* TestSubmit_OwnerFallback uses the configured owner when the setting is empty. */
func TestSubmit_OwnerFallback(t *testing.T) {
	f := newFixture(fakeSettings{}, "fallback@example.com")

	require.NoError(t, f.service.Submit(context.Background(), jane()))

	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "fallback@example.com", f.sender.sent[1].To)
}

/* TestSubmit_EscapesVisitorInput renders markup from the form as text. */
func TestSubmit_EscapesVisitorInput(t *testing.T) {
	f := newFixture(fakeSettings{}, "owner@example.com")
	submission := jane()
	submission.Message = `<script>alert("x")</script>`

	require.NoError(t, f.service.Submit(context.Background(), submission))

	require.Len(t, f.sender.sent, 2)
	assert.NotContains(t, f.sender.sent[1].HTML, "<script>")
	assert.Contains(t, f.sender.sent[1].HTML, "&lt;script&gt;")
}

/* TestSubmit_Validation rejects blank or malformed fields before storing anything. */
func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*contact.Submission)
		message string
	}{
		{"blank name", func(s *contact.Submission) { s.Name = "   " }, "All fields are required"},
		{"missing message", func(s *contact.Submission) { s.Message = "" }, "All fields are required"},
		{"bad email", func(s *contact.Submission) { s.Email = "not-an-email" }, "Invalid contact details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(fakeSettings{}, "owner@example.com")
			submission := jane()
			tt.mutate(&submission)

			err := f.service.Submit(context.Background(), submission)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
			assert.Equal(t, tt.message, appError.Message)
			assert.Empty(t, f.inbox.rows)
			assert.Empty(t, f.sender.sent)
		})
	}
}

/* TestSubmit_StorageFailure sends nothing when the row cannot be stored. */
func TestSubmit_StorageFailure(t *testing.T) {
	f := newFixture(fakeSettings{}, "owner@example.com")
	f.inbox.failure = errors.New("connection refused")

	err := f.service.Submit(context.Background(), jane())

	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "STORAGE_ERROR", apperr.As(err).Code)
	assert.Empty(t, f.sender.sent)
}

/* TestSubmit_SenderFailureKeepsRow reports the notifier error, keeps the row and does not dedupe a resubmission. */
func TestSubmit_SenderFailureKeepsRow(t *testing.T) {
	f := newFixture(fakeSettings{}, "owner@example.com")
	f.sender.failures[mail.TemplateContactConfirmation] = errors.New("provider down")

	err := f.service.Submit(context.Background(), jane())

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
	assert.Len(t, f.inbox.rows, 1)
	assert.Len(t, f.sender.sent, 2, "the owner notice is still attempted")

	_ = f.service.Submit(context.Background(), jane())
	assert.Len(t, f.inbox.rows, 2)
}

// # HTTP

func newRouter(f *fixture) chi.Router {
	router := chi.NewRouter()
	contact.NewHandler(f.service).RegisterRoutes(router)
	return router
}

/* TestHandler_Success answers with the legacy success body. */
func TestHandler_Success(t *testing.T) {
	f := newFixture(fakeSettings{}, "owner@example.com")

	recorder := httptest.NewRecorder()
	newRouter(f).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"Hello there"}`)))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true,"message":"Message sent successfully"}`, recorder.Body.String())
}

/* TestHandler_Errors answers with the legacy error body. */
func TestHandler_Errors(t *testing.T) {
	f := newFixture(fakeSettings{}, "owner@example.com")
	router := newRouter(f)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Jane"}`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"All fields are required"}`, recorder.Body.String())

	f.sender.failures[mail.TemplateContactNotification] = errors.New("provider down")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"Hello there"}`)))
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.JSONEq(t, `{"error":"Failed to send message. Please try again later."}`, recorder.Body.String())
}
