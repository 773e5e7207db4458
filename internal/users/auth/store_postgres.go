// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = strings.Join([]string{
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash,
	schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.EmailConfirmed,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
}, ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.AvatarURL,
		&user.EmailConfirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID retrieves a user by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

/*
FindByEmail retrieves a user by email, ignoring case.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict on duplicate email or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.EmailConfirmed,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.AvatarURL, user.EmailConfirmed,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

/*
MarkConfirmed flags the account's email as confirmed.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) MarkConfirmed(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.EmailConfirmed,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	return repository.execOne(context, "confirm_user_email", query, userID)
}

/*
UpdateProfile writes full name and avatar.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) UpdateProfile(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UserAccount.Table, schema.UserAccount.FullName, schema.UserAccount.AvatarURL,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID, schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, user.ID, user.FullName, user.AvatarURL).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user_profile")
}

/*
UpdatePassword replaces the stored password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.PasswordHash,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	return repository.execOne(context, "update_user_password", query, userID, newHash)
}

func (repository *PostgresUserRepository) execOne(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
