// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/metrics"
)

// LogSender logs messages instead of delivering them. Used when no
// RESEND_API_KEY is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a [LogSender].
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements [Sender].
func (sender *LogSender) Send(context context.Context, message Message) error {
	sender.logger.InfoContext(context, "email_logged",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("template", message.Template),
	)
	metrics.EmailsSent.WithLabelValues(message.Template, "logged").Inc()
	return nil
}
