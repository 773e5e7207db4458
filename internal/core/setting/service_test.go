// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package setting_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/sec"
)

type fakeRepository struct {
	values map[string]string
}

func (f *fakeRepository) List(context.Context) ([]*setting.Setting, error) {
	settings := make([]*setting.Setting, 0, len(f.values))
	for key, value := range f.values {
		settings = append(settings, &setting.Setting{Key: key, Value: value})
	}
	return settings, nil
}

func (f *fakeRepository) Get(_ context.Context, key string) (*setting.Setting, error) {
	value, ok := f.values[key]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &setting.Setting{Key: key, Value: value}, nil
}

func (f *fakeRepository) SaveAll(_ context.Context, values map[string]string) error {
	for key, value := range values {
		f.values[key] = value
	}
	return nil
}

func (f *fakeRepository) Create(_ context.Context, item *setting.Setting) error {
	if _, ok := f.values[item.Key]; ok {
		return apperr.Conflict("A record with the same value already exists")
	}
	f.values[item.Key] = item.Value
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, key string) error {
	if _, ok := f.values[key]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.values, key)
	return nil
}

func newService(values map[string]string) (*setting.Service, *fakeRepository) {
	repo := &fakeRepository{values: values}
	return setting.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
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

/* TestRead_Public exposes settings without a principal. */
func TestRead_Public(t *testing.T) {
	service, _ := newService(map[string]string{setting.KeySiteTitle: "Folio"})

	values, err := service.Map(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Folio", values[setting.KeySiteTitle])

	value, err := service.Value(context.Background(), setting.KeyContactEmail)
	require.NoError(t, err)
	assert.Empty(t, value)
}

/* TestSaveAll_AdminOnly rejects editors and upserts for admins. */
func TestSaveAll_AdminOnly(t *testing.T) {
	service, repo := newService(map[string]string{setting.KeySiteTitle: "Old"})
	values := map[string]string{setting.KeySiteTitle: "New", "footer_note": "Hi"}

	requireStatus(t, service.SaveAll(as(sec.RoleEditor), values), http.StatusForbidden)
	assert.Equal(t, "Old", repo.values[setting.KeySiteTitle])

	require.NoError(t, service.SaveAll(as(sec.RoleAdmin), values))
	assert.Equal(t, "New", repo.values[setting.KeySiteTitle])
	assert.Equal(t, "Hi", repo.values["footer_note"])
}

/* TestSaveAll_InvalidKey rejects keys outside [a-z0-9_]. */
func TestSaveAll_InvalidKey(t *testing.T) {
	service, repo := newService(map[string]string{})

	err := service.SaveAll(as(sec.RoleAdmin), map[string]string{"Bad-Key": "x"})
	requireStatus(t, err, http.StatusBadRequest)
	assert.Empty(t, repo.values)
}

/* TestAdd covers creation and duplicate keys. */
func TestAdd(t *testing.T) {
	service, _ := newService(map[string]string{setting.KeySiteTitle: "Folio"})

	created, err := service.Add(as(sec.RoleAdmin), setting.AddInput{Key: " resume_url ", Value: "https://example.com/cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "resume_url", created.Key)
	assert.NotEmpty(t, created.ID)

	_, err = service.Add(as(sec.RoleAdmin), setting.AddInput{Key: setting.KeySiteTitle})
	requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "Setting key already exists", apperr.As(err).Message)
}

/* TestDelete reports missing keys and requires admin. */
func TestDelete(t *testing.T) {
	service, repo := newService(map[string]string{"footer_note": "Hi"})

	requireStatus(t, service.Delete(context.Background(), "footer_note"), http.StatusUnauthorized)
	requireStatus(t, service.Delete(as(sec.RoleAdmin), "missing"), http.StatusNotFound)

	require.NoError(t, service.Delete(as(sec.RoleAdmin), "footer_note"))
	assert.Empty(t, repo.values)
}
