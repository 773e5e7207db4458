// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contact handles the public contact form.

A submission is stored in the inbox first and then two emails go out: a
confirmation to the visitor and a notice to the site owner. The stored row
is kept even when mail delivery fails. Nothing is retried or deduplicated.
*/
package contact

import (
	"context"

	"github.com/taibuivan/folio/internal/core/message"
)

// Submission is the contact form payload.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Inbox stores submissions.
type Inbox interface {
	Receive(ctx context.Context, name, email, subject, body string) (*message.Message, error)
}

// Settings reads site settings.
type Settings interface {
	Value(ctx context.Context, key string) (string, error)
}

// Config holds the notifier defaults.
type Config struct {
	// OwnerEmail is used when the contact_email setting is empty.
	OwnerEmail string
}

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Outcome labels for the submission counter.
const (
	outcomeStored        = "stored"
	outcomeInvalid       = "invalid"
	outcomeStorageError  = "storage_error"
	outcomeNotifierError = "notifier_error"
)
