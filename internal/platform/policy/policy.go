// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package policy enforces per-table row-level access rules at the service boundary.

Every mutating service method calls one of these checks before touching storage,
so the rules hold regardless of which transport (HTTP, CLI) reached the service.

Rules:

  - Content tables (project, achievement, certification, skill, blog_post):
    public read, admin/editor write.
  - contact_message: public insert, admin/editor read and write.
  - site_setting and user_role: admin only.
*/
package policy

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// RequireEditor allows the call when the requester is an admin or an editor.
func RequireEditor(ctx context.Context) (*sec.Principal, error) {
	return require(ctx, sec.RoleEditor)
}

// RequireAdmin allows the call only when the requester is an admin.
func RequireAdmin(ctx context.Context) (*sec.Principal, error) {
	return require(ctx, sec.RoleAdmin)
}

// CanReadDrafts reports whether unpublished content may be returned to the requester.
func CanReadDrafts(ctx context.Context) bool {
	principal := ctxutil.GetPrincipal(ctx)
	return principal != nil && principal.Role.CanEditContent()
}

func require(ctx context.Context, role sec.UserRole) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(ctx)
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if !principal.Role.AtLeast(role) {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "policy_denied",
			slog.String("user_id", principal.UserID),
			slog.String("role", principal.Role.String()),
			slog.String("required", role.String()),
		)
		return nil, apperr.Forbidden("Insufficient permissions")
	}

	return principal, nil
}
