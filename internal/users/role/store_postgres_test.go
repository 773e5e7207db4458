// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/role"
)

func newStoreFixture(t *testing.T) (*role.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return role.NewPostgresRepository(mock), mock
}

/* TestPostgresRepository_RolesForUser reads every row for the account. */
func TestPostgresRepository_RolesForUser(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT role FROM users.user_role WHERE user_id =`).
		WithArgs(adminID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("editor").AddRow("admin"))

	roles, err := repo.RolesForUser(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, []sec.UserRole{sec.RoleEditor, sec.RoleAdmin}, roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* TestPostgresRepository_RolesForUser_Empty returns no roles for an unassigned account. */
func TestPostgresRepository_RolesForUser_Empty(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT role FROM users.user_role`).
		WithArgs(editorID).
		WillReturnRows(pgxmock.NewRows([]string{"role"}))

	roles, err := repo.RolesForUser(context.Background(), editorID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

/* TestPostgresRepository_RolesForUser_Failure wraps driver errors as storage errors. */
func TestPostgresRepository_RolesForUser_Failure(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT role FROM users.user_role`).
		WithArgs(editorID).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.RolesForUser(context.Background(), editorID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "STORAGE_ERROR", appError.Code)
}

/* TestPostgresRepository_ListAssignments joins account data. */
func TestPostgresRepository_ListAssignments(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM users.user_role r\s+JOIN users.account a .+ ORDER BY r.created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "role", "created_at", "email", "full_name"}).
			AddRow("r2", editorID, "editor", now, "editor@example.com", "Editor").
			AddRow("r1", adminID, "admin", now.Add(-time.Hour), "admin@example.com", "Admin"))

	assignments, err := repo.ListAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, sec.RoleEditor, assignments[0].Role)
	assert.Equal(t, "admin@example.com", assignments[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* TestPostgresRepository_FindByID_NotFound maps missing rows to dberr.ErrNotFound. */
func TestPostgresRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM users.user_role WHERE id =`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, dberr.ErrNotFound))
}

/* TestPostgresRepository_Delete reports missing rows. */
func TestPostgresRepository_Delete(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM users.user_role WHERE id =`).
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM users.user_role WHERE id =`).
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.True(t, errors.Is(repo.Delete(context.Background(), "r1"), dberr.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* TestPostgresRepository_Create_MissingAccount maps a foreign key violation to dberr.ErrReferenceMissing. */
func TestPostgresRepository_Create_MissingAccount(t *testing.T) {
	repo, mock := newStoreFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users.user_role`).
		WithArgs("r1", editorID, "editor").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	err := repo.Create(context.Background(), &role.Assignment{ID: "r1", UserID: editorID, Role: sec.RoleEditor})
	assert.True(t, errors.Is(err, dberr.ErrReferenceMissing))
	assert.NoError(t, mock.ExpectationsWereMet())
}
