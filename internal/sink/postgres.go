// Package sink lands normalized tables in PostgreSQL.
//
// The sink is an optional downstream for the ingestion pipeline: a
// materialized Table is written in one transaction using the COPY protocol,
// creating the destination table on demand from the kinds the data exhibits.
package sink

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ubehebe/rowset/internal/dataset"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// tableNameRegex restricts destination table names to plain identifiers.
var tableNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Sink writes normalized tables to a Postgres database.
type Sink struct {
	pool *pgxpool.Pool
}

// New creates a Sink backed by the given connection pool.
func New(pool *pgxpool.Pool) *Sink {
	return &Sink{pool: pool}
}

// Store writes every row of t into the named table, creating the table if
// it does not exist. The write is atomic: all rows or none. Returns the
// number of rows written.
func (s *Sink) Store(ctx context.Context, table string, t *dataset.Table) (int64, error) {
	if !tableNameRegex.MatchString(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}
	if len(t.Columns) == 0 {
		return 0, fmt.Errorf("table has no columns")
	}

	kinds := make([]dataset.Kind, len(t.Columns))
	for i, col := range t.Columns {
		kinds[i] = columnKind(t, col)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if _, err := tx.Exec(ctx, createTableSQL(table, t.Columns, kinds)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", table, err)
	}

	// Column names may carry zero-width markers from deduplication; quoting
	// via pgx.Identifier keeps them intact in the database.
	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		t.Columns,
		pgx.CopyFromSlice(len(t.Rows), func(i int) ([]any, error) {
			row := make([]any, len(t.Columns))
			for j, col := range t.Columns {
				v, err := cellValue(t.Rows[i][col], kinds[j])
				if err != nil {
					return nil, err
				}
				row[j] = v
			}
			return row, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return copied, nil
}

// createTableSQL builds the CREATE TABLE IF NOT EXISTS statement for the
// destination table.
func createTableSQL(table string, columns []string, kinds []dataset.Kind) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{col}.Sanitize(), columnType(kinds[i]))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{table}.Sanitize(), strings.Join(defs, ", "))
}
