// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

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

// NewPostgresRepository creates a new blog post repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table = schema.ContentBlogPost

	writableColumns = []string{
		table.Title, table.Slug, table.Excerpt, table.Content, table.Author,
		table.Category, table.ReadTime, table.Published,
	}

	selectColumns = strings.Join(append(append([]string{table.ID}, writableColumns...), table.CreatedAt, table.UpdatedAt), ", ")
)

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Author,
		&post.Category, &post.ReadTime, &post.Published, &post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

func writableValues(post *Post) []any {
	return []any{
		post.Title, post.Slug, post.Excerpt, post.Content, post.Author,
		post.Category, post.ReadTime, post.Published,
	}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.PublishedOnly {
		conditions = append(conditions, table.Published)
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.Category, len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, table.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_posts")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		selectColumns, table.Table, where, table.CreatedAt, len(args)+1, len(args)+2)

	rows, err := repository.db.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_posts")
	}
	return posts, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	return repository.findBy(context, table.ID, id)
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	return repository.findBy(context, table.Slug, slug)
}

func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, column)

	post, err := scanPost(repository.db.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "find_post")
	}
	return post, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_posts")
	}
	return total, nil
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, %s, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, strings.Join(writableColumns, ", "), table.CreatedAt, table.UpdatedAt,
		postgres.Placeholders(2, len(writableColumns)),
		table.CreatedAt, table.UpdatedAt,
	)

	args := append([]any{post.ID}, writableValues(post)...)
	err := repository.db.QueryRow(context, query, args...).Scan(&post.CreatedAt, &post.UpdatedAt)
	return dberr.Wrap(err, "create_post")
}

func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	assignments := make([]string, len(writableColumns))
	for i, column := range writableColumns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, strings.Join(assignments, ", "), table.UpdatedAt, table.ID, table.UpdatedAt)

	args := append([]any{post.ID}, writableValues(post)...)
	err := repository.db.QueryRow(context, query, args...).Scan(&post.UpdatedAt)
	return dberr.Wrap(err, "update_post")
}

func (repository *PostgresRepository) TogglePublished(context context.Context, id string) (*Post, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NOT %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table, table.Published, table.Published, table.UpdatedAt,
		table.ID, selectColumns,
	)

	post, err := scanPost(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "toggle_post_published")
	}
	return post, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
