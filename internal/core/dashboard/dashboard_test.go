// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/dashboard"
	"github.com/taibuivan/folio/internal/core/message"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
)

type fixedCount struct {
	count int
	err   error
}

func (f fixedCount) Count(context.Context) (int, error) { return f.count, f.err }

type fakeInbox struct{}

func (fakeInbox) Counts(context.Context) (int, int, error) { return 7, 2, nil }

func (fakeInbox) Recent(context.Context) ([]*message.Message, error) {
	return []*message.Message{{ID: "m1"}, {ID: "m2"}}, nil
}

func sources() dashboard.Sources {
	return dashboard.Sources{
		Projects:       fixedCount{count: 4},
		Achievements:   fixedCount{count: 3},
		Certifications: fixedCount{count: 2},
		Posts:          fixedCount{count: 1},
		Inbox:          fakeInbox{},
	}
}

func editor() context.Context {
	return ctxutil.WithPrincipal(context.Background(), &sec.Principal{UserID: "u1", Role: sec.RoleEditor})
}

/* TestSummary gathers every count and the recent messages. */
func TestSummary(t *testing.T) {
	service := dashboard.NewService(sources(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	summary, err := service.Summary(editor())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Projects)
	assert.Equal(t, 3, summary.Achievements)
	assert.Equal(t, 2, summary.Certifications)
	assert.Equal(t, 1, summary.Posts)
	assert.Equal(t, 7, summary.Messages)
	assert.Equal(t, 2, summary.UnreadMessages)
	assert.Len(t, summary.RecentMessages, 2)
}

/* TestSummary_Failures surfaces policy and storage errors. */
func TestSummary_Failures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := dashboard.NewService(sources(), logger).Summary(context.Background())
	require.NotNil(t, apperr.As(err))

	broken := sources()
	broken.Posts = fixedCount{err: apperr.StorageError(errors.New("timeout"))}
	_, err = dashboard.NewService(broken, logger).Summary(editor())
	assert.Equal(t, "STORAGE_ERROR", apperr.As(err).Code)
}
