// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dashboard summarises the admin area.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/core/message"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// Counter counts the rows of one content type.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Inbox is the part of the message service the dashboard reads.
type Inbox interface {
	Counts(ctx context.Context) (total, unread int, err error)
	Recent(ctx context.Context) ([]*message.Message, error)
}

// Sources groups the services the dashboard reads from.
type Sources struct {
	Projects       Counter
	Achievements   Counter
	Certifications Counter
	Posts          Counter
	Inbox          Inbox
}

// Summary is the admin landing page.
type Summary struct {
	Projects       int                `json:"projects"`
	Achievements   int                `json:"achievements"`
	Certifications int                `json:"certifications"`
	Messages       int                `json:"messages"`
	UnreadMessages int                `json:"unread_messages"`
	Posts          int                `json:"posts"`
	RecentMessages []*message.Message `json:"recent_messages"`
}

// Service builds the dashboard summary.
type Service struct {
	sources Sources
	logger  *slog.Logger
}

func NewService(sources Sources, logger *slog.Logger) *Service {
	return &Service{sources: sources, logger: logger}
}

// Summary counts every content type and loads the latest messages.
func (service *Service) Summary(context context.Context) (*Summary, error) {
	if _, err := policy.RequireEditor(context); err != nil {
		return nil, err
	}

	summary := &Summary{}
	counters := []struct {
		counter Counter
		target  *int
	}{
		{service.sources.Projects, &summary.Projects},
		{service.sources.Achievements, &summary.Achievements},
		{service.sources.Certifications, &summary.Certifications},
		{service.sources.Posts, &summary.Posts},
	}

	for _, entry := range counters {
		count, err := entry.counter.Count(context)
		if err != nil {
			return nil, err
		}
		*entry.target = count
	}

	var err error
	if summary.Messages, summary.UnreadMessages, err = service.sources.Inbox.Counts(context); err != nil {
		return nil, err
	}
	if summary.RecentMessages, err = service.sources.Inbox.Recent(context); err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "dashboard_loaded",
		slog.Int("messages", summary.Messages),
		slog.Int("unread_messages", summary.UnreadMessages),
	)
	return summary, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts GET /admin.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.summary)
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
