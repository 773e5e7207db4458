// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"fmt"
	"strconv"
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

// NewPostgresRepository creates a new project repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var projectColumns = strings.Join([]string{
	schema.ContentProject.ID, schema.ContentProject.Title, schema.ContentProject.Description,
	schema.ContentProject.Category, schema.ContentProject.Tags, schema.ContentProject.ImageURL,
	schema.ContentProject.GithubURL, schema.ContentProject.LiveURL, schema.ContentProject.Featured,
	schema.ContentProject.DisplayOrder, schema.ContentProject.CreatedAt, schema.ContentProject.UpdatedAt,
}, ", ")

func scanProject(row pgx.Row) (*Project, error) {
	project := &Project{}
	err := row.Scan(
		&project.ID, &project.Title, &project.Description, &project.Category, &project.Tags,
		&project.ImageURL, &project.GithubURL, &project.LiveURL, &project.Featured,
		&project.DisplayOrder, &project.CreatedAt, &project.UpdatedAt,
	)
	return project, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Project, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ContentProject.Category, len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("%s && $%d", schema.ContentProject.Tags, len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ContentProject.Featured, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s ASC, %s DESC`,
		projectColumns, schema.ContentProject.Table, strings.Join(conditions, " AND "),
		schema.ContentProject.DisplayOrder, schema.ContentProject.CreatedAt,
	)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_projects")
	}
	return projects, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		projectColumns, schema.ContentProject.Table, schema.ContentProject.ID)

	project, err := scanProject(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_project")
	}
	return project, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.ContentProject.Table)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_projects")
	}
	return total, nil
}

func (repository *PostgresRepository) Create(context context.Context, project *Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ContentProject.Table,
		schema.ContentProject.ID, schema.ContentProject.Title, schema.ContentProject.Description,
		schema.ContentProject.Category, schema.ContentProject.Tags, schema.ContentProject.ImageURL,
		schema.ContentProject.GithubURL, schema.ContentProject.LiveURL, schema.ContentProject.Featured,
		schema.ContentProject.DisplayOrder, schema.ContentProject.CreatedAt, schema.ContentProject.UpdatedAt,
		schema.ContentProject.CreatedAt, schema.ContentProject.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		project.ID, project.Title, project.Description, project.Category, project.Tags,
		project.ImageURL, project.GithubURL, project.LiveURL, project.Featured, project.DisplayOrder,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	return dberr.Wrap(err, "create_project")
}

func (repository *PostgresRepository) Update(context context.Context, project *Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ContentProject.Table,
		schema.ContentProject.Title, schema.ContentProject.Description, schema.ContentProject.Category,
		schema.ContentProject.Tags, schema.ContentProject.ImageURL, schema.ContentProject.GithubURL,
		schema.ContentProject.LiveURL, schema.ContentProject.Featured, schema.ContentProject.DisplayOrder,
		schema.ContentProject.UpdatedAt, schema.ContentProject.ID, schema.ContentProject.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		project.ID, project.Title, project.Description, project.Category, project.Tags,
		project.ImageURL, project.GithubURL, project.LiveURL, project.Featured, project.DisplayOrder,
	).Scan(&project.UpdatedAt)

	return dberr.Wrap(err, "update_project")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContentProject.Table, schema.ContentProject.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
