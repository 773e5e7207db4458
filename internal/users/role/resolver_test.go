// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/role"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/* TestEffective checks precedence across multiple assignment rows. */
func TestEffective(t *testing.T) {
	tests := []struct {
		name  string
		roles []sec.UserRole
		want  sec.UserRole
	}{
		{"no rows", nil, sec.RoleNone},
		{"single editor", []sec.UserRole{sec.RoleEditor}, sec.RoleEditor},
		{"single admin", []sec.UserRole{sec.RoleAdmin}, sec.RoleAdmin},
		{"admin and editor", []sec.UserRole{sec.RoleEditor, sec.RoleAdmin}, sec.RoleAdmin},
		{"admin first", []sec.UserRole{sec.RoleAdmin, sec.RoleEditor}, sec.RoleAdmin},
		{"duplicate editor", []sec.UserRole{sec.RoleEditor, sec.RoleEditor}, sec.RoleEditor},
		{"unknown value ignored", []sec.UserRole{"owner"}, sec.RoleNone},
		{"unknown with editor", []sec.UserRole{"superuser", sec.RoleEditor}, sec.RoleEditor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, role.Effective(tt.roles))
		})
	}
}

/* TestResolver_Resolve covers resolution against stored rows. */
func TestResolver_Resolve(t *testing.T) {
	repo := newFakeRepository()
	repo.add("a1", "u-admin", sec.RoleAdmin)
	repo.add("a2", "u-both", sec.RoleEditor)
	repo.add("a3", "u-both", sec.RoleAdmin)
	repo.add("a4", "u-editor", sec.RoleEditor)

	resolver := role.NewResolver(repo, discardLogger())
	ctx := context.Background()

	assert.Equal(t, sec.RoleNone, resolver.Resolve(ctx, "u-none"))
	assert.Equal(t, sec.RoleEditor, resolver.Resolve(ctx, "u-editor"))
	assert.Equal(t, sec.RoleAdmin, resolver.Resolve(ctx, "u-admin"))
	assert.Equal(t, sec.RoleAdmin, resolver.Resolve(ctx, "u-both"))
	assert.Equal(t, sec.RoleNone, resolver.Resolve(ctx, ""))
}

/* TestResolver_FailClosed never elevates when storage is unreachable. */
func TestResolver_FailClosed(t *testing.T) {
	repo := newFakeRepository()
	repo.add("a1", "u-admin", sec.RoleAdmin)
	repo.err = errors.New("connection refused")

	resolver := role.NewResolver(repo, discardLogger())

	var resolved sec.UserRole
	assert.NotPanics(t, func() {
		resolved = resolver.Resolve(context.Background(), "u-admin")
	})
	assert.Equal(t, sec.RoleNone, resolved)
	assert.False(t, resolved.AtLeast(sec.RoleEditor))
}
