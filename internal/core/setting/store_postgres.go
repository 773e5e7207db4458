// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package setting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new settings repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table = schema.SystemSiteSetting

	selectColumns = strings.Join([]string{table.ID, table.Key, table.Value, table.UpdatedAt}, ", ")
)

func scanSetting(row pgx.Row) (*Setting, error) {
	setting := &Setting{}
	err := row.Scan(&setting.ID, &setting.Key, &setting.Value, &setting.UpdatedAt)
	return setting, err
}

func (repository *PostgresRepository) List(context context.Context) ([]*Setting, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, selectColumns, table.Table, table.Key)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_settings")
	}
	defer rows.Close()

	settings := make([]*Setting, 0)
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_setting")
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_settings")
	}
	return settings, nil
}

func (repository *PostgresRepository) Get(context context.Context, key string) (*Setting, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, table.Key)

	setting, err := scanSetting(repository.db.QueryRow(context, query, key))
	if err != nil {
		return nil, dberr.Wrap(err, "get_setting")
	}
	return setting, nil
}

/*
SaveAll upserts the given pairs.

Either every pair is written or none is. Existing keys keep their id.
*/
func (repository *PostgresRepository) SaveAll(context context.Context, values map[string]string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_save_settings_tx")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
	`,
		table.Table, table.ID, table.Key, table.Value, table.UpdatedAt,
		table.Key, table.Value, table.Value, table.UpdatedAt,
	)

	for key, value := range values {
		if _, err := transaction.Exec(context, query, uuid.New(), key, value); err != nil {
			return dberr.Wrap(err, "upsert_setting")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_save_settings_tx")
}

func (repository *PostgresRepository) Create(context context.Context, setting *Setting) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		table.Table, table.ID, table.Key, table.Value, table.UpdatedAt,
		table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, setting.ID, setting.Key, setting.Value).Scan(&setting.UpdatedAt)
	return dberr.Wrap(err, "create_setting")
}

func (repository *PostgresRepository) Delete(context context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Key)

	tag, err := repository.db.Exec(context, query, key)
	if err != nil {
		return dberr.Wrap(err, "delete_setting")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
