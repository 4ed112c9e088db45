// Package query - guarded query execution
package query

import (
	"context"
	"database/sql"

	"retail-analytics/core/report"
	"retail-analytics/internal/errors"
)

// Runner executes guarded read-only queries against a SQL database
type Runner struct {
	db    *sql.DB
	guard *Guard
}

// NewRunner creates a runner over an open database handle
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db, guard: NewGuard()}
}

// Run screens the statement and executes it, returning the result set as a
// generic table. Rejections surface as QUERY_REJECTED before any database
// round trip; execution failures surface as QUERY_ERROR.
func (r *Runner) Run(ctx context.Context, statement string) (report.Table, error) {
	if err := r.guard.Check(statement); err != nil {
		return report.Table{}, err
	}

	rows, err := r.db.QueryContext(ctx, statement)
	if err != nil {
		return report.Table{}, errors.Query("query execution failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return report.Table{}, errors.Query("failed to read result columns", err)
	}

	table := report.Table{Title: "Custom Query", Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return report.Table{}, errors.Query("failed to scan result row", err)
		}
		row := make([]any, len(columns))
		for i, v := range values {
			// Drivers hand back raw bytes for text columns.
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = v
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return report.Table{}, errors.Query("result iteration failed", err)
	}
	return table, nil
}
