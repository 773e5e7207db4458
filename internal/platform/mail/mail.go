// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers transactional email for Folio.

Transports:

  - [ResendSender]: HTTPS JSON to the Resend API behind a circuit breaker.
  - [LogSender]: writes the message to the structured log (development).

Messages are rendered from embedded html/template files, so every value
supplied by a visitor is escaped before it reaches an inbox.
*/
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
)

// # Contracts

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	HTML     string
	Template string // Template name, used as a metrics label.
}

// Sender delivers a single message. Implementations never retry.
type Sender interface {

	/*
		Send delivers the message or returns the transport error.

		Parameters:
		  - context: context.Context
		  - message: Message

		Returns:
		  - error: Transport or provider failures
	*/
	Send(context context.Context, message Message) error
}

// # Templates

const (
	TemplateContactConfirmation = "contact_confirmation"
	TemplateContactNotification = "contact_notification"
	TemplateEmailVerification   = "email_verification"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// ContactData feeds both contact templates.
type ContactData struct {
	SiteTitle string
	Name      string
	Email     string
	Subject   string
	Message   string
}

// VerificationData feeds the email verification template.
type VerificationData struct {
	SiteTitle string
	Name      string
	Link      string
}

// ContactConfirmation builds the thank-you email sent back to a visitor.
func ContactConfirmation(data ContactData) (Message, error) {
	return render(TemplateContactConfirmation, data.Email, "Thank you for contacting me!", data)
}

// ContactNotification builds the owner notice for a new contact submission.
func ContactNotification(owner string, data ContactData) (Message, error) {
	return render(TemplateContactNotification, owner, "New Contact: "+data.Subject, data)
}

// EmailVerification builds the sign-up confirmation email.
func EmailVerification(to string, data VerificationData) (Message, error) {
	return render(TemplateEmailVerification, to, "Confirm your email address", data)
}

func render(name, to, subject string, data any) (Message, error) {
	var buffer bytes.Buffer
	if err := templates.ExecuteTemplate(&buffer, name+".html", data); err != nil {
		return Message{}, fmt.Errorf("mail_render_failed: %s: %w", name, err)
	}

	return Message{
		To:       to,
		Subject:  subject,
		HTML:     buffer.String(),
		Template: name,
	}, nil
}
