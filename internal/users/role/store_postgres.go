// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"fmt"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new role-assignment repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) RolesForUser(context context.Context, userID string) ([]sec.UserRole, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserRole.Role, schema.UserRole.Table, schema.UserRole.UserID)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles_for_user")
	}
	defer rows.Close()

	roles := make([]sec.UserRole, 0, 1)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		roles = append(roles, sec.UserRole(value))
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_roles")
	}
	return roles, nil
}

func (repository *PostgresRepository) ListAssignments(context context.Context) ([]*Assignment, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, a.%s, a.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s
		ORDER BY r.%s DESC
	`,
		schema.UserRole.ID, schema.UserRole.UserID, schema.UserRole.Role, schema.UserRole.CreatedAt,
		schema.UserAccount.Email, schema.UserAccount.FullName,
		schema.UserRole.Table, schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserRole.UserID,
		schema.UserRole.CreatedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_role_assignments")
	}
	defer rows.Close()

	assignments := make([]*Assignment, 0)
	for rows.Next() {
		assignment := &Assignment{}
		var value string
		if err := rows.Scan(
			&assignment.ID, &assignment.UserID, &value, &assignment.CreatedAt,
			&assignment.Email, &assignment.FullName,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_role_assignment")
		}
		assignment.Role = sec.UserRole(value)
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_role_assignments")
	}
	return assignments, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Assignment, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserRole.ID, schema.UserRole.UserID, schema.UserRole.Role, schema.UserRole.CreatedAt,
		schema.UserRole.Table, schema.UserRole.ID)

	assignment := &Assignment{}
	var value string
	err := repository.db.QueryRow(context, query, id).Scan(
		&assignment.ID, &assignment.UserID, &value, &assignment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_role_assignment")
	}

	assignment.Role = sec.UserRole(value)
	return assignment, nil
}

func (repository *PostgresRepository) Create(context context.Context, assignment *Assignment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.UserRole.Table, schema.UserRole.ID, schema.UserRole.UserID,
		schema.UserRole.Role, schema.UserRole.CreatedAt,
		schema.UserRole.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		assignment.ID, assignment.UserID, string(assignment.Role),
	).Scan(&assignment.CreatedAt)

	return dberr.Wrap(err, "create_role_assignment")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserRole.Table, schema.UserRole.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_role_assignment")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
