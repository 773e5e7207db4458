// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/sec"
)

// Resolver maps an account to its effective role.
type Resolver struct {
	repo   Repository
	logger *slog.Logger
}

// NewResolver constructs a [Resolver] reading through the given repository.
func NewResolver(repo Repository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

/*
Resolve returns the effective role for userID.

It never returns an error: a storage failure is logged and resolves to
[sec.RoleNone], so callers treat the account as unprivileged.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - sec.UserRole: admin, editor or none
*/
func (resolver *Resolver) Resolve(context context.Context, userID string) sec.UserRole {
	if userID == "" {
		return sec.RoleNone
	}

	roles, err := resolver.repo.RolesForUser(context, userID)
	if err != nil {
		resolver.logger.WarnContext(context, "role_resolution_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return sec.RoleNone
	}

	return Effective(roles)
}
