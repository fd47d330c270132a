package assistant

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryError wraps a storage-layer failure (bad connection, schema
// mismatch, malformed statement). It is the executor's boundary type:
// callers format it into an apology instead of letting it escape to the
// chat surface as a raw fault.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string { return e.Message }

// Executor binds classified questions to registry templates and runs them
// against the storage collaborator. All templates are read-only
// aggregations; the executor never mutates campaign or performance data.
type Executor struct {
	db *sql.DB
}

// NewExecutor creates an executor over the given database handle.
func NewExecutor(db *sql.DB) *Executor { return &Executor{db: db} }

// Execute resolves the intent's template, sanitizes and binds parameters,
// and returns the result as a Table. Storage failures come back as a
// *QueryError; an empty table is a valid non-error outcome.
func (e *Executor) Execute(ctx context.Context, intent Intent, p Params) (Table, error) {
	tmpl, p := Resolve(intent, p)
	query, args := tmpl.Build(p)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Table{}, &QueryError{Message: fmt.Sprintf("query %s: %v", intent, err)}
	}
	defer rows.Close()

	table, err := scanTable(rows)
	if err != nil {
		return Table{}, &QueryError{Message: fmt.Sprintf("scan %s: %v", intent, err)}
	}
	return table, nil
}

// scanTable reads all rows into a Table, preserving column order and the
// driver's native value types.
func scanTable(rows *sql.Rows) (Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return Table{}, fmt.Errorf("columns: %w", err)
	}

	t := Table{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, fmt.Errorf("scan row: %w", err)
		}
		// []byte buffers are reused by some drivers; copy before keeping
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("iterate rows: %w", err)
	}
	return t, nil
}
