// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package certification

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

// NewPostgresRepository creates a new certification repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table = schema.ContentCertification

	writableColumns = []string{
		table.Title, table.Issuer, table.Category, table.Date, table.Description,
		table.ImageURL, table.Skills, table.Verified, table.VerifyURL, table.DisplayOrder,
	}

	selectColumns = strings.Join(append(append([]string{table.ID}, writableColumns...), table.CreatedAt, table.UpdatedAt), ", ")
)

func scanCertification(row pgx.Row) (*Certification, error) {
	certification := &Certification{}
	var category string
	err := row.Scan(
		&certification.ID, &certification.Title, &certification.Issuer, &category,
		&certification.Date, &certification.Description, &certification.ImageURL,
		&certification.Skills, &certification.Verified, &certification.VerifyURL,
		&certification.DisplayOrder, &certification.CreatedAt, &certification.UpdatedAt,
	)
	certification.Category = Category(category)
	return certification, err
}

func writableValues(certification *Certification) []any {
	return []any{
		certification.Title, certification.Issuer, string(certification.Category), certification.Date,
		certification.Description, certification.ImageURL, certification.Skills,
		certification.Verified, certification.VerifyURL, certification.DisplayOrder,
	}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Certification, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns, table.Table)
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` WHERE %s = $1`, table.Category)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s DESC`, table.DisplayOrder, table.CreatedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_certifications")
	}
	defer rows.Close()

	certifications := make([]*Certification, 0)
	for rows.Next() {
		certification, err := scanCertification(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_certification")
		}
		certifications = append(certifications, certification)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_certifications")
	}
	return certifications, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Certification, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, table.ID)

	certification, err := scanCertification(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_certification")
	}
	return certification, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_certifications")
	}
	return total, nil
}

func (repository *PostgresRepository) Create(context context.Context, certification *Certification) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, %s, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, strings.Join(writableColumns, ", "), table.CreatedAt, table.UpdatedAt,
		postgres.Placeholders(2, len(writableColumns)),
		table.CreatedAt, table.UpdatedAt,
	)

	args := append([]any{certification.ID}, writableValues(certification)...)
	err := repository.db.QueryRow(context, query, args...).Scan(&certification.CreatedAt, &certification.UpdatedAt)
	return dberr.Wrap(err, "create_certification")
}

func (repository *PostgresRepository) Update(context context.Context, certification *Certification) error {
	assignments := make([]string, len(writableColumns))
	for i, column := range writableColumns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, strings.Join(assignments, ", "), table.UpdatedAt, table.ID, table.UpdatedAt)

	args := append([]any{certification.ID}, writableValues(certification)...)
	err := repository.db.QueryRow(context, query, args...).Scan(&certification.UpdatedAt)
	return dberr.Wrap(err, "update_certification")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_certification")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
