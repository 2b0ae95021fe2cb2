package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Engine runs generator-produced SQL strings against a live warehouse. It
// is the thin body behind the "execution of the generated SQL" external
// collaborator spec.md §1 names and scopes out of the core.
type Engine struct {
	DB      *sql.DB
	Dialect Dialect
}

// NewEngine wraps an already-open *sql.DB.
func NewEngine(db *sql.DB, dialect Dialect) Engine {
	return Engine{DB: db, Dialect: dialect}
}

// Execute runs a compiled SQL string and returns its rows. The generator
// never produces bound parameters today (spec.md open question #4 — date
// bounds are inlined literals), so Execute takes no argument vector; that
// is a placeholder for the day the planner emits "?" placeholders instead.
// On a zero-value Engine (no DB) it returns an error.
func (e Engine) Execute(ctx context.Context, query string) (*sql.Rows, error) {
	if e.DB == nil {
		return nil, fmt.Errorf("store: no execution database configured")
	}
	slog.Debug("executing report query", "dialect", e.Dialect, "sql", query)
	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: executing report query: %w", err)
	}
	return rows, nil
}

// Close releases the underlying connection pool.
func (e Engine) Close() error {
	return e.DB.Close()
}
