// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/folio/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrReferenceMissing is returned for foreign key violations: the row points at
	// a record that does not exist (or was deleted concurrently).
	ErrReferenceMissing = apperr.Unprocessable("Referenced record does not exist")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations are the caller's fault, not ours
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A record with the same value already exists")
		case pgerrcode.ForeignKeyViolation:
			return ErrReferenceMissing
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value violates a storage constraint")
		}
	}

	// 3. Everything else is a storage failure
	return apperr.StorageError(fmt.Errorf("%s: %w", action, err))
}

// NotFound maps [ErrNotFound] to a resource-specific 404 and passes any other error through.
func NotFound(err error, resource string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}
