// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

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

// NewPostgresRepository creates a new achievement repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table = schema.ContentAchievement

	writableColumns = []string{
		table.Title, table.Category, table.Event, table.Organization, table.Level, table.Date,
		table.Location, table.Description, table.Badge, table.Verified, table.DisplayOrder,
	}

	selectColumns = strings.Join(append(append([]string{table.ID}, writableColumns...), table.CreatedAt, table.UpdatedAt), ", ")
)

func scanAchievement(row pgx.Row) (*Achievement, error) {
	achievement := &Achievement{}
	var category string
	err := row.Scan(
		&achievement.ID, &achievement.Title, &category, &achievement.Event, &achievement.Organization,
		&achievement.Level, &achievement.Date, &achievement.Location, &achievement.Description,
		&achievement.Badge, &achievement.Verified, &achievement.DisplayOrder,
		&achievement.CreatedAt, &achievement.UpdatedAt,
	)
	achievement.Category = Category(category)
	return achievement, err
}

// writableValues returns the column values in writableColumns order.
func writableValues(achievement *Achievement) []any {
	return []any{
		achievement.Title, string(achievement.Category), achievement.Event, achievement.Organization,
		achievement.Level, achievement.Date, achievement.Location, achievement.Description,
		achievement.Badge, achievement.Verified, achievement.DisplayOrder,
	}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Achievement, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns, table.Table)
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` WHERE %s = $1`, table.Category)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s DESC`, table.DisplayOrder, table.CreatedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_achievements")
	}
	defer rows.Close()

	achievements := make([]*Achievement, 0)
	for rows.Next() {
		achievement, err := scanAchievement(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_achievement")
		}
		achievements = append(achievements, achievement)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_achievements")
	}
	return achievements, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Achievement, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, table.ID)

	achievement, err := scanAchievement(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_achievement")
	}
	return achievement, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_achievements")
	}
	return total, nil
}

func (repository *PostgresRepository) Create(context context.Context, achievement *Achievement) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, %s, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, strings.Join(writableColumns, ", "), table.CreatedAt, table.UpdatedAt,
		postgres.Placeholders(2, len(writableColumns)),
		table.CreatedAt, table.UpdatedAt,
	)

	args := append([]any{achievement.ID}, writableValues(achievement)...)
	err := repository.db.QueryRow(context, query, args...).Scan(&achievement.CreatedAt, &achievement.UpdatedAt)
	return dberr.Wrap(err, "create_achievement")
}

func (repository *PostgresRepository) Update(context context.Context, achievement *Achievement) error {
	assignments := make([]string, len(writableColumns))
	for i, column := range writableColumns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table, strings.Join(assignments, ", "), table.UpdatedAt,
		table.ID, table.UpdatedAt,
	)

	args := append([]any{achievement.ID}, writableValues(achievement)...)
	err := repository.db.QueryRow(context, query, args...).Scan(&achievement.UpdatedAt)
	return dberr.Wrap(err, "update_achievement")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_achievement")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
