// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new inbox repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table = schema.InboxContactMessage

	selectColumns = strings.Join([]string{
		table.ID, table.Name, table.Email, table.Subject, table.Message, table.Read, table.CreatedAt,
	}, ", ")
)

func scanMessage(row pgx.Row) (*Message, error) {
	message := &Message{}
	err := row.Scan(
		&message.ID, &message.Name, &message.Email, &message.Subject,
		&message.Message, &message.Read, &message.CreatedAt,
	)
	return message, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Message, int, error) {
	where := "TRUE"
	if filter.UnreadOnly {
		where = "NOT " + table.Read
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, table.Table, where)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_messages")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC LIMIT $1 OFFSET $2`,
		selectColumns, table.Table, where, table.CreatedAt)

	messages, err := repository.query(context, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (repository *PostgresRepository) Recent(context context.Context, limit int) ([]*Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT $1`, selectColumns, table.Table, table.CreatedAt)
	return repository.query(context, query, limit)
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*Message, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_messages")
	}
	defer rows.Close()

	messages := make([]*Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_message")
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_messages")
	}
	return messages, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	return repository.count(context, "TRUE")
}

func (repository *PostgresRepository) CountUnread(context context.Context) (int, error) {
	return repository.count(context, "NOT "+table.Read)
}

func (repository *PostgresRepository) count(context context.Context, where string) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, table.Table, where)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_messages")
	}
	return total, nil
}

func (repository *PostgresRepository) Insert(context context.Context, message *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`,
		table.Table, table.ID, table.Name, table.Email, table.Subject, table.Message, table.Read, table.CreatedAt,
		table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		message.ID, message.Name, message.Email, message.Subject, message.Message, message.Read,
	).Scan(&message.CreatedAt)
	return dberr.Wrap(err, "insert_message")
}

func (repository *PostgresRepository) SetRead(context context.Context, id string, read bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, table.Table, table.Read, table.ID)
	return repository.exec(context, "mark_message", query, id, read)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)
	return repository.exec(context, "delete_message", query, id)
}

func (repository *PostgresRepository) exec(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
