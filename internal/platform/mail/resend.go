// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/taibuivan/folio/internal/platform/metrics"
)

const (
	// DefaultResendURL is the Resend send-email endpoint.
	DefaultResendURL = "https://api.resend.com/emails"

	resendTimeout = 10 * time.Second
	breakerName   = "resend"
)

// ErrCircuitOpen is returned while the breaker rejects calls to the provider.
var ErrCircuitOpen = gobreaker.ErrOpenState

// ResendConfig configures [NewResendSender].
type ResendConfig struct {
	APIKey   string
	From     string
	Endpoint string // Defaults to DefaultResendURL.

	// Breaker tuning. Zero values fall back to defaults.
	MinRequests  uint32
	FailureRatio float64
	OpenTimeout  time.Duration
}

// ResendSender posts messages to the Resend API.
//
// Each call is attempted exactly once. Consecutive failures trip the breaker
// so a provider outage fails contact submissions fast instead of stacking
// up request goroutines on the HTTP timeout.
type ResendSender struct {
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[struct{}]
	apiKey   string
	from     string
	endpoint string
	logger   *slog.Logger
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewResendSender builds a sender with its own HTTP client and breaker.
func NewResendSender(config ResendConfig, logger *slog.Logger) *ResendSender {
	if config.Endpoint == "" {
		config.Endpoint = DefaultResendURL
	}
	if config.MinRequests == 0 {
		config.MinRequests = 5
	}
	if config.FailureRatio == 0 {
		config.FailureRatio = 0.5
	}
	if config.OpenTimeout == 0 {
		config.OpenTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return &ResendSender{
		client:   &http.Client{Timeout: resendTimeout},
		breaker:  gobreaker.NewCircuitBreaker[struct{}](settings),
		apiKey:   config.APIKey,
		from:     config.From,
		endpoint: config.Endpoint,
		logger:   logger,
	}
}

// Send implements [Sender].
func (sender *ResendSender) Send(context context.Context, message Message) error {
	_, err := sender.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, sender.post(context, message)
	})

	outcome := "sent"
	if err != nil {
		outcome = "failed"
		if errors.Is(err, ErrCircuitOpen) {
			outcome = "rejected"
		}
	}
	metrics.EmailsSent.WithLabelValues(message.Template, outcome).Inc()

	if err != nil {
		return fmt.Errorf("mail_send_failed: %w", err)
	}
	return nil
}

// State reports the breaker state.
func (sender *ResendSender) State() gobreaker.State {
	return sender.breaker.State()
}

func (sender *ResendSender) post(context context.Context, message Message) error {
	body, err := json.Marshal(resendPayload{
		From:    sender.from,
		To:      []string{message.To},
		Subject: message.Subject,
		HTML:    message.HTML,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, sender.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+sender.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := sender.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("resend returned %d: %s", response.StatusCode, bytes.TrimSpace(detail))
	}

	_, _ = io.Copy(io.Discard, response.Body)
	return nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
