// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/message"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/pointer"
)

type fakeRepository struct {
	messages   map[string]*message.Message
	lastFilter message.Filter
}

func (f *fakeRepository) List(_ context.Context, filter message.Filter, _, _ int) ([]*message.Message, int, error) {
	f.lastFilter = filter
	messages := make([]*message.Message, 0)
	for _, item := range f.messages {
		if filter.UnreadOnly && item.Read {
			continue
		}
		messages = append(messages, item)
	}
	return messages, len(messages), nil
}

func (f *fakeRepository) Recent(_ context.Context, limit int) ([]*message.Message, error) {
	messages := make([]*message.Message, 0, limit)
	for _, item := range f.messages {
		if len(messages) == limit {
			break
		}
		messages = append(messages, item)
	}
	return messages, nil
}

func (f *fakeRepository) Count(context.Context) (int, error) { return len(f.messages), nil }

func (f *fakeRepository) CountUnread(context.Context) (int, error) {
	unread := 0
	for _, item := range f.messages {
		if !item.Read {
			unread++
		}
	}
	return unread, nil
}

func (f *fakeRepository) Insert(_ context.Context, item *message.Message) error {
	f.messages[item.ID] = item
	return nil
}

func (f *fakeRepository) SetRead(_ context.Context, id string, read bool) error {
	item, ok := f.messages[id]
	if !ok {
		return dberr.ErrNotFound
	}
	item.Read = read
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.messages[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.messages, id)
	return nil
}

func newService() (*message.Service, *fakeRepository) {
	repo := &fakeRepository{messages: map[string]*message.Message{}}
	return message.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func as(role sec.UserRole) context.Context {
	return ctxutil.WithPrincipal(context.Background(), &sec.Principal{UserID: "u1", Role: role})
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
}

/* TestReceive stores an unread message without a principal. */
func TestReceive(t *testing.T) {
	service, repo := newService()

	stored, err := service.Receive(context.Background(), "Jane", "jane@example.com", "Hi", "Hello there")
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Read)
	assert.Len(t, repo.messages, 1)
}

/* TestReading_Policy keeps the inbox private to content roles. */
func TestReading_Policy(t *testing.T) {
	service, _ := newService()

	_, _, err := service.List(context.Background(), message.Filter{}, 10, 0)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = service.Recent(as(sec.RoleNone))
	requireStatus(t, err, http.StatusForbidden)

	_, _, err = service.Counts(as(sec.RoleNone))
	requireStatus(t, err, http.StatusForbidden)
}

/* TestCounts reports total and unread messages. */
func TestCounts(t *testing.T) {
	service, repo := newService()
	repo.messages["m1"] = &message.Message{ID: "m1"}
	repo.messages["m2"] = &message.Message{ID: "m2", Read: true}

	total, unread, err := service.Counts(as(sec.RoleEditor))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, unread)
}

/* TestMarkRead flips the flag, requires a value and reports missing messages. */
func TestMarkRead(t *testing.T) {
	service, repo := newService()
	repo.messages["m1"] = &message.Message{ID: "m1"}

	require.NoError(t, service.MarkRead(as(sec.RoleEditor), "m1", message.ReadInput{Read: pointer.To(true)}))
	assert.True(t, repo.messages["m1"].Read)

	err := service.MarkRead(as(sec.RoleEditor), "m1", message.ReadInput{})
	requireStatus(t, err, http.StatusBadRequest)

	err = service.MarkRead(as(sec.RoleEditor), "missing", message.ReadInput{Read: pointer.To(false)})
	requireStatus(t, err, http.StatusNotFound)
}

/* TestDelete_Policy rejects anonymous deletes and keeps the message. */
func TestDelete_Policy(t *testing.T) {
	service, repo := newService()
	repo.messages["m1"] = &message.Message{ID: "m1"}

	requireStatus(t, service.Delete(context.Background(), "m1"), http.StatusUnauthorized)
	assert.Len(t, repo.messages, 1)

	require.NoError(t, service.Delete(as(sec.RoleAdmin), "m1"))
	assert.Empty(t, repo.messages)
}

/* TestHandler_UnreadFilter reads the unread query flag. */
func TestHandler_UnreadFilter(t *testing.T) {
	service, repo := newService()
	repo.messages["m1"] = &message.Message{ID: "m1"}
	repo.messages["m2"] = &message.Message{ID: "m2", Read: true}

	router := chi.NewRouter()
	router.Route("/admin/messages", message.NewHandler(service).RegisterAdminRoutes)

	request := httptest.NewRequest(http.MethodGet, "/admin/messages?unread=true", nil)
	request = request.WithContext(as(sec.RoleEditor))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, repo.lastFilter.UnreadOnly)
	assert.True(t, strings.Contains(recorder.Body.String(), `"m1"`))
	assert.False(t, strings.Contains(recorder.Body.String(), `"m2"`))
}
