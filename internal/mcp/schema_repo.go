package mcp

import (
	"context"
	"fmt"

	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaColumn is one row from information_schema.columns.
type SchemaColumn struct {
	TableName  string
	ColumnName string
	DataType   string
	IsNullable string
	ColumnDef  *string
}

var fitlogTables = []string{"exercise", "workout", "workout_exercise", "workout_set", "weekly_summary"}

type SchemaRepo struct {
	pool *pgxpool.Pool
}

func NewSchemaRepo(pool *pgxpool.Pool) *SchemaRepo {
	return &SchemaRepo{pool: pool}
}

// Columns returns column metadata for the workout log tables. Account tables are left out.
func (r *SchemaRepo) Columns(ctx context.Context) (_ []SchemaColumn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mcp.schema-columns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.pool.Query(ctx, `
		SELECT table_name, column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
		ORDER BY table_name, ordinal_position`,
		fitlogTables,
	)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	defer rows.Close()

	var cols []SchemaColumn
	for rows.Next() {
		var c SchemaColumn
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.IsNullable, &c.ColumnDef); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}

	return cols, nil
}
