// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media uploads images for projects, certifications and blog posts to
S3-compatible object storage.

The content type is sniffed from the file itself. The client-supplied type and
file name are ignored, and objects are stored under a fresh UUID.
*/
package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/storage"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

const (
	// MaxUploadSize is the largest accepted file.
	MaxUploadSize = 5 << 20

	// KeyPrefix is the object key prefix of every upload.
	KeyPrefix = "uploads/"

	FieldFile = "file"
	FieldKey  = "key"

	sniffLength = 512
)

// extensions maps the accepted content types to object key extensions.
var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Object is a stored upload.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Service stores media objects. A nil storage disables uploads.
type Service struct {
	storage storage.ObjectStorage
	logger  *slog.Logger
}

// NewService constructs a media [Service]. Pass a nil storage when object
// storage is not configured.
func NewService(objects storage.ObjectStorage, logger *slog.Logger) *Service {
	return &Service{storage: objects, logger: logger}
}

/*
Upload validates and stores an image.

Returns:
  - *Object: The stored object and its public URL
  - error: Unauthorized, Forbidden, ValidationError, ServiceUnavailable or StorageError
*/
func (service *Service) Upload(context context.Context, reader io.Reader, size int64) (*Object, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	if service.storage == nil {
		return nil, errDisabled()
	}

	if size <= 0 {
		return nil, validate.RequiredError(FieldFile, "File is required")
	}
	if size > MaxUploadSize {
		return nil, validate.RequiredError(FieldFile, "File must be at most 5 MB")
	}

	head := make([]byte, sniffLength)
	read, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperr.Internal(err)
	}
	head = head[:read]

	contentType := http.DetectContentType(head)
	extension, ok := extensions[contentType]
	if !ok {
		return nil, validate.RequiredError(FieldFile, "Only PNG, JPEG, WebP and GIF images are allowed")
	}

	object := &Object{
		Key:         KeyPrefix + uuid.New() + extension,
		ContentType: contentType,
		Size:        size,
	}

	body := io.MultiReader(bytes.NewReader(head), reader)
	if err := service.storage.Put(context, object.Key, body, size, contentType); err != nil {
		service.logger.ErrorContext(context, "media_upload_failed",
			slog.String("key", object.Key),
			slog.Any("error", err),
		)
		return nil, apperr.StorageError(err)
	}
	object.URL = service.storage.URL(object.Key)

	service.logger.InfoContext(context, "media_uploaded",
		slog.String("key", object.Key),
		slog.String("content_type", contentType),
		slog.Int64("size", size),
		slog.String("user_id", principal.UserID),
	)
	return object, nil
}

// Delete removes an uploaded object. Only keys under [KeyPrefix] are accepted.
func (service *Service) Delete(context context.Context, key string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if service.storage == nil {
		return errDisabled()
	}

	if !strings.HasPrefix(key, KeyPrefix) || strings.Contains(key, "..") || len(key) == len(KeyPrefix) {
		return validate.RequiredError(FieldKey, "Invalid object key")
	}

	if err := service.storage.Delete(context, key); err != nil {
		return apperr.StorageError(err)
	}

	service.logger.WarnContext(context, "media_deleted",
		slog.String("key", key),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

func errDisabled() error {
	return apperr.ServiceUnavailable("Media storage is not configured")
}
