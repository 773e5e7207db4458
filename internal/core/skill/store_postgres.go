// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package skill

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new skill repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
	schema.ContentSkill.ID, schema.ContentSkill.Name, schema.ContentSkill.Category,
	schema.ContentSkill.Level, schema.ContentSkill.DisplayOrder,
	schema.ContentSkill.CreatedAt, schema.ContentSkill.UpdatedAt,
)

func scanSkill(row pgx.Row) (*Skill, error) {
	skill := &Skill{}
	err := row.Scan(&skill.ID, &skill.Name, &skill.Category, &skill.Level,
		&skill.DisplayOrder, &skill.CreatedAt, &skill.UpdatedAt)
	return skill, err
}

func (repository *PostgresRepository) List(context context.Context) ([]*Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC, %s ASC`,
		selectColumns, schema.ContentSkill.Table,
		schema.ContentSkill.Category, schema.ContentSkill.DisplayOrder, schema.ContentSkill.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_skills")
	}
	defer rows.Close()

	skills := make([]*Skill, 0)
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_skill")
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_skills")
	}
	return skills, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.ContentSkill.Table, schema.ContentSkill.ID)

	skill, err := scanSkill(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_skill")
	}
	return skill, nil
}

func (repository *PostgresRepository) Create(context context.Context, skill *Skill) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ContentSkill.Table, schema.ContentSkill.ID, schema.ContentSkill.Name,
		schema.ContentSkill.Category, schema.ContentSkill.Level, schema.ContentSkill.DisplayOrder,
		schema.ContentSkill.CreatedAt, schema.ContentSkill.UpdatedAt,
		schema.ContentSkill.CreatedAt, schema.ContentSkill.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		skill.ID, skill.Name, skill.Category, skill.Level, skill.DisplayOrder,
	).Scan(&skill.CreatedAt, &skill.UpdatedAt)
	return dberr.Wrap(err, "create_skill")
}

func (repository *PostgresRepository) Update(context context.Context, skill *Skill) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ContentSkill.Table, schema.ContentSkill.Name, schema.ContentSkill.Category,
		schema.ContentSkill.Level, schema.ContentSkill.DisplayOrder, schema.ContentSkill.UpdatedAt,
		schema.ContentSkill.ID, schema.ContentSkill.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		skill.ID, skill.Name, skill.Category, skill.Level, skill.DisplayOrder,
	).Scan(&skill.UpdatedAt)
	return dberr.Wrap(err, "update_skill")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContentSkill.Table, schema.ContentSkill.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_skill")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
