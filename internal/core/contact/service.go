// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/mail"
	"github.com/taibuivan/folio/internal/platform/metrics"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// Service is the contact notifier.
type Service struct {
	inbox    Inbox
	settings Settings
	sender   mail.Sender
	config   Config
	logger   *slog.Logger
}

// NewService constructs the contact notifier.
func NewService(inbox Inbox, settings Settings, sender mail.Sender, config Config, logger *slog.Logger) *Service {
	return &Service{
		inbox:    inbox,
		settings: settings,
		sender:   sender,
		config:   config,
		logger:   logger,
	}
}

/*
Submit stores a contact submission and sends both emails.

Description: Both emails are attempted even when the first fails. A delivery
failure is reported after the row is stored, so the message is never lost.

Parameters:
  - context: context.Context
  - submission: Submission

Returns:
  - error: ValidationError, StorageError (nothing sent) or NotifierError (row kept)
*/
func (service *Service) Submit(context context.Context, submission Submission) error {
	submission = trim(submission)

	if err := validateSubmission(submission); err != nil {
		metrics.ContactSubmissions.WithLabelValues(outcomeInvalid).Inc()
		return err
	}

	// 1. Persist
	stored, err := service.inbox.Receive(context,
		submission.Name, submission.Email, submission.Subject, submission.Message)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues(outcomeStorageError).Inc()
		service.logger.ErrorContext(context, "contact_store_failed", slog.Any("error", err))
		return apperr.StorageError(err)
	}

	// 2. Notify
	data := mail.ContactData{
		SiteTitle: service.value(context, setting.KeySiteTitle),
		Name:      submission.Name,
		Email:     submission.Email,
		Subject:   submission.Subject,
		Message:   submission.Message,
	}

	if err := service.notify(context, data); err != nil {
		metrics.ContactSubmissions.WithLabelValues(outcomeNotifierError).Inc()
		service.logger.ErrorContext(context, "contact_notify_failed",
			slog.String("message_id", stored.ID),
			slog.Any("error", err),
		)
		return apperr.NotifierError(err)
	}

	metrics.ContactSubmissions.WithLabelValues(outcomeStored).Inc()
	service.logger.InfoContext(context, "contact_received",
		slog.String("message_id", stored.ID),
	)
	return nil
}

// notify sends the confirmation and the owner notice and joins their failures.
func (service *Service) notify(context context.Context, data mail.ContactData) error {
	var failures []error

	confirmation, err := mail.ContactConfirmation(data)
	if err == nil {
		err = service.sender.Send(context, confirmation)
	}
	if err != nil {
		failures = append(failures, err)
	}

	owner := service.ownerEmail(context)
	if owner == "" {
		service.logger.WarnContext(context, "contact_owner_missing")
		return errors.Join(failures...)
	}

	notification, err := mail.ContactNotification(owner, data)
	if err == nil {
		err = service.sender.Send(context, notification)
	}
	if err != nil {
		failures = append(failures, err)
	}

	return errors.Join(failures...)
}

// ownerEmail prefers the contact_email setting over the configured default.
func (service *Service) ownerEmail(context context.Context) string {
	if owner := service.value(context, setting.KeyContactEmail); owner != "" {
		return owner
	}
	return service.config.OwnerEmail
}

// value reads a setting. A failed read is logged and treated as empty.
func (service *Service) value(context context.Context, key string) string {
	value, err := service.settings.Value(context, key)
	if err != nil {
		service.logger.WarnContext(context, "contact_setting_unavailable",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return ""
	}
	return strings.TrimSpace(value)
}

func trim(submission Submission) Submission {
	return Submission{
		Name:    strings.TrimSpace(submission.Name),
		Email:   strings.TrimSpace(submission.Email),
		Subject: strings.TrimSpace(submission.Subject),
		Message: strings.TrimSpace(submission.Message),
	}
}

func validateSubmission(submission Submission) error {
	required := &validate.Validator{}
	required.Required(FieldName, submission.Name).
		Required(FieldEmail, submission.Email).
		Required(FieldSubject, submission.Subject).
		Required(FieldMessage, submission.Message)
	if err := apperr.As(required.Err()); err != nil {
		return apperr.ValidationError("All fields are required", err.Details...)
	}

	format := &validate.Validator{}
	format.Email(FieldEmail, submission.Email).
		MaxLen(FieldName, submission.Name, 200).
		MaxLen(FieldSubject, submission.Subject, 300).
		MaxLen(FieldMessage, submission.Message, 10000)
	if err := apperr.As(format.Err()); err != nil {
		return apperr.ValidationError("Invalid contact details", err.Details...)
	}
	return nil
}
