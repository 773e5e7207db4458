// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

const resourceName = "Message"

// Service implements inbox use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new inbox [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Receive stores a new unread message. Anyone may write to the inbox, so no
principal is required. Callers validate the fields.

Returns:
  - *Message: The stored message with its id and timestamp
  - error: Storage failures
*/
func (service *Service) Receive(context context.Context, name, email, subject, body string) (*Message, error) {
	message := &Message{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
		Read:    false,
	}

	if err := service.repo.Insert(context, message); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "message_received",
		slog.String("message_id", message.ID),
	)
	return message, nil
}

// List returns one page of the inbox, newest first.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Message, int, error) {
	if _, err := policy.RequireEditor(context); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, filter, limit, offset)
}

// Recent returns the latest messages for the dashboard.
func (service *Service) Recent(context context.Context) ([]*Message, error) {
	if _, err := policy.RequireEditor(context); err != nil {
		return nil, err
	}
	return service.repo.Recent(context, RecentLimit)
}

// Counts returns the total and unread message counts.
func (service *Service) Counts(context context.Context) (total, unread int, err error) {
	if _, err = policy.RequireEditor(context); err != nil {
		return 0, 0, err
	}

	if total, err = service.repo.Count(context); err != nil {
		return 0, 0, err
	}
	if unread, err = service.repo.CountUnread(context); err != nil {
		return 0, 0, err
	}
	return total, unread, nil
}

// MarkRead sets the read flag of a message.
func (service *Service) MarkRead(context context.Context, id string, input ReadInput) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if input.Read == nil {
		return validate.RequiredError(FieldRead, "Read flag is required")
	}

	if err := service.repo.SetRead(context, id, *input.Read); err != nil {
		return dberr.NotFound(err, resourceName)
	}

	service.logger.InfoContext(context, "message_marked",
		slog.String("message_id", id),
		slog.Bool("read", *input.Read),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

// Delete removes a message.
func (service *Service) Delete(context context.Context, id string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, resourceName)
	}

	service.logger.WarnContext(context, "message_deleted",
		slog.String("message_id", id),
		slog.String("user_id", principal.UserID),
	)
	return nil
}
