// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"

	"github.com/taibuivan/folio/internal/platform/sec"
)

// Repository defines the persistence contract for role assignments.
type Repository interface {

	/*
		RolesForUser returns every role stored for an account, in no particular order.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []sec.UserRole: Raw role values (possibly empty)
		  - error: Storage failures
	*/
	RolesForUser(context context.Context, userID string) ([]sec.UserRole, error)

	// ListAssignments returns all assignments joined with the account, newest first.
	ListAssignments(context context.Context) ([]*Assignment, error)

	// FindByID loads a single assignment.
	FindByID(context context.Context, id string) (*Assignment, error)

	// Create persists a new assignment.
	Create(context context.Context, assignment *Assignment) error

	// Delete removes an assignment by id.
	Delete(context context.Context, id string) error
}
