// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/uuid"
)

// AccountLookup finds the account a role is granted to.
type AccountLookup interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	FindByEmail(context context.Context, email string) (*auth.User, error)
}

// Service manages role assignments. Every method except [Service.Grant]
// requires an admin principal in the context.
type Service struct {
	repo     Repository
	accounts AccountLookup
	logger   *slog.Logger
}

// NewService constructs a new role-assignment [Service].
func NewService(repo Repository, accounts AccountLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		logger:   logger,
	}
}

// AssignInput identifies the account by UserID or, when empty, by Email.
type AssignInput struct {
	UserID string       `json:"user_id"`
	Email  string       `json:"email"`
	Role   sec.UserRole `json:"role"`
}

/*
ListAssignments returns every role assignment, newest first.

Returns:
  - []*Assignment: Assignments joined with account email and name
  - error: 401/403 from policy, or storage failures
*/
func (service *Service) ListAssignments(context context.Context) ([]*Assignment, error) {
	if _, err := policy.RequireAdmin(context); err != nil {
		return nil, err
	}
	return service.repo.ListAssignments(context)
}

/*
Assign grants a role to an account.

Parameters:
  - context: context.Context
  - input: AssignInput

Returns:
  - *Assignment: The stored assignment
  - error: Validation, 404 for unknown accounts, 409 if the role is already held
*/
func (service *Service) Assign(context context.Context, input AssignInput) (*Assignment, error) {
	principal, err := policy.RequireAdmin(context)
	if err != nil {
		return nil, err
	}

	input.UserID = strings.TrimSpace(input.UserID)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.OneOf(FieldRole, string(input.Role), string(sec.RoleAdmin), string(sec.RoleEditor))
	if input.UserID == "" {
		validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	} else {
		validator.UUID(FieldUserID, input.UserID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var account *auth.User
	if input.UserID != "" {
		account, err = service.accounts.FindByID(context, input.UserID)
	} else {
		account, err = service.accounts.FindByEmail(context, input.Email)
	}
	if err != nil {
		return nil, dberr.NotFound(err, "User")
	}

	assignment, err := service.grant(context, account, input.Role)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "role_assigned",
		slog.String("assignment_id", assignment.ID),
		slog.String("user_id", account.ID),
		slog.String("role", assignment.Role.String()),
		slog.String("granted_by", principal.UserID),
	)
	return assignment, nil
}

/*
Grant assigns a role by email without a policy check.

It is the bootstrap path used by the command line to create the first admin,
since only admins may assign roles over HTTP.
*/
func (service *Service) Grant(context context.Context, email string, role sec.UserRole) (*Assignment, error) {
	if !role.Valid() {
		return nil, validate.RequiredError(FieldRole, "must be one of: admin, editor")
	}

	account, err := service.accounts.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		return nil, dberr.NotFound(err, "User")
	}

	assignment, err := service.grant(context, account, role)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "role_granted",
		slog.String("user_id", account.ID),
		slog.String("role", role.String()),
	)
	return assignment, nil
}

/*
Revoke removes a role assignment.

An admin cannot remove an assignment that belongs to their own account.

Returns:
  - error: 403 on self-removal, 404 for unknown ids
*/
func (service *Service) Revoke(context context.Context, id string) error {
	principal, err := policy.RequireAdmin(context)
	if err != nil {
		return err
	}

	assignment, err := service.repo.FindByID(context, id)
	if err != nil {
		return dberr.NotFound(err, "Role assignment")
	}

	if assignment.UserID == principal.UserID {
		return apperr.Forbidden("You cannot remove your own role")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, "Role assignment")
	}

	service.logger.WarnContext(context, "role_revoked",
		slog.String("assignment_id", id),
		slog.String("user_id", assignment.UserID),
		slog.String("role", assignment.Role.String()),
		slog.String("revoked_by", principal.UserID),
	)
	return nil
}

func (service *Service) grant(context context.Context, account *auth.User, role sec.UserRole) (*Assignment, error) {
	existing, err := service.repo.RolesForUser(context, account.ID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(existing, role) {
		return nil, apperr.Conflict("User already has this role")
	}

	assignment := &Assignment{
		ID:       uuid.New(),
		UserID:   account.ID,
		Role:     role,
		Email:    account.Email,
		FullName: account.FullName,
	}

	if err := service.repo.Create(context, assignment); err != nil {

		// The account was deleted between the lookup and the insert
		if errors.Is(err, dberr.ErrReferenceMissing) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return assignment, nil
}
