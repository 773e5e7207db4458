// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* TestConvertToPgx5DSN rewrites postgres schemes and leaves others alone. */
func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/folio":   "pgx5://u:p@localhost:5432/folio",
		"postgresql://u:p@localhost:5432/folio": "pgx5://u:p@localhost:5432/folio",
		"pgx5://u:p@localhost:5432/folio":       "pgx5://u:p@localhost:5432/folio",
		"host=localhost dbname=folio":           "host=localhost dbname=folio",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, convertToPgx5DSN(input), input)
	}
}

/* TestEmbeddedMigrations_Paired checks that every up file has a matching down file. */
func TestEmbeddedMigrations_Paired(t *testing.T) {
	entries, err := fs.Glob(embedded, "sql/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, up := range entries {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := fs.Stat(embedded, down)
		assert.NoError(t, err, "missing %s", down)
	}
}
