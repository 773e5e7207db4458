// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package setting

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

const (
	resourceName = "Setting"

	maxKeyLength   = 100
	maxValueLength = 2000
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Service implements site setting use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new settings [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Reading

// List returns every setting ordered by key.
func (service *Service) List(context context.Context) ([]*Setting, error) {
	return service.repo.List(context)
}

// Map returns the settings as key/value pairs.
func (service *Service) Map(context context.Context) (map[string]string, error) {
	settings, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// Value returns the value of key, or "" when the key does not exist.
func (service *Service) Value(context context.Context, key string) (string, error) {
	setting, err := service.repo.Get(context, key)
	if errors.Is(err, dberr.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// # Writing

/*
SaveAll upserts every pair. Unknown keys are created.

Returns:
  - error: Unauthorized, Forbidden, ValidationError or storage failures
*/
func (service *Service) SaveAll(context context.Context, values map[string]string) error {
	principal, err := policy.RequireAdmin(context)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return validate.RequiredError(FieldKey, "At least one setting is required")
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	validator := &validate.Validator{}
	for _, key := range keys {
		validateKey(validator, key)
		validator.MaxLen(key, values[key], maxValueLength)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.SaveAll(context, values); err != nil {
		return err
	}

	service.logger.InfoContext(context, "settings_saved",
		slog.Int("count", len(values)),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

// Add creates a new key. An existing key gives Conflict.
func (service *Service) Add(context context.Context, input AddInput) (*Setting, error) {
	principal, err := policy.RequireAdmin(context)
	if err != nil {
		return nil, err
	}

	setting := &Setting{
		ID:    uuid.New(),
		Key:   strings.TrimSpace(input.Key),
		Value: input.Value,
	}

	validator := &validate.Validator{}
	validateKey(validator, setting.Key)
	validator.MaxLen(FieldValue, setting.Value, maxValueLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, setting); err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
			return nil, apperr.Conflict("Setting key already exists")
		}
		return nil, err
	}

	service.logger.InfoContext(context, "setting_added",
		slog.String("key", setting.Key),
		slog.String("user_id", principal.UserID),
	)
	return setting, nil
}

// Delete removes a key.
func (service *Service) Delete(context context.Context, key string) error {
	principal, err := policy.RequireAdmin(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, key); err != nil {
		return dberr.NotFound(err, resourceName)
	}

	service.logger.WarnContext(context, "setting_deleted",
		slog.String("key", key),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

func validateKey(validator *validate.Validator, key string) {
	validator.Required(FieldKey, key).
		MaxLen(FieldKey, key, maxKeyLength).
		Custom(FieldKey, key != "" && !keyPattern.MatchString(key),
			"Use lowercase letters, digits and underscores only")
}
