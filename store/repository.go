package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sqldef/reportsql/report"
)

// ReportRecord is a saved report definition: the request that produced it,
// the SQL it compiled to, and when it was saved. This is the "persistent
// report store" spec.md §1 names as an external collaborator — reflected
// here from original_source/src/domain/models.rs's ReportDefinition.
type ReportRecord struct {
	ID        uuid.UUID
	Name      string
	Request   report.ReportRequest
	SQL       string
	CreatedAt time.Time
}

// Repository persists ReportRecords in a bookkeeping table alongside
// whatever warehouse Engine points at.
type Repository struct {
	DB *sql.DB
}

// NewRepository wraps an already-open *sql.DB.
func NewRepository(db *sql.DB) Repository {
	return Repository{DB: db}
}

// EnsureSchema creates the bookkeeping table if it does not already exist.
func (r Repository) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		request_json TEXT NOT NULL,
		sql_text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`
	if _, err := r.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("store: ensuring reports schema: %w", err)
	}
	return nil
}

// Save inserts a new ReportRecord, generating its ID and CreatedAt.
func (r Repository) Save(ctx context.Context, name string, req report.ReportRequest, sqlText string) (ReportRecord, error) {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return ReportRecord{}, fmt.Errorf("store: marshaling request: %w", err)
	}

	record := ReportRecord{
		ID:        uuid.New(),
		Name:      name,
		Request:   req,
		SQL:       sqlText,
		CreatedAt: time.Now().UTC(),
	}

	const insert = `INSERT INTO reports (id, name, request_json, sql_text, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err = r.DB.ExecContext(ctx, insert, record.ID.String(), record.Name, string(requestJSON), record.SQL, record.CreatedAt)
	if err != nil {
		return ReportRecord{}, fmt.Errorf("store: saving report %q: %w", name, err)
	}
	return record, nil
}

// FindByName loads the most recently saved record with the given name.
func (r Repository) FindByName(ctx context.Context, name string) (ReportRecord, error) {
	const query = `SELECT id, name, request_json, sql_text, created_at FROM reports WHERE name = ? ORDER BY created_at DESC LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, name)

	var (
		id          string
		requestJSON string
		record      ReportRecord
	)
	if err := row.Scan(&id, &record.Name, &requestJSON, &record.SQL, &record.CreatedAt); err != nil {
		return ReportRecord{}, fmt.Errorf("store: loading report %q: %w", name, err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return ReportRecord{}, fmt.Errorf("store: parsing report id: %w", err)
	}
	record.ID = parsedID

	req, err := report.ParseJSON([]byte(requestJSON))
	if err != nil {
		return ReportRecord{}, fmt.Errorf("store: parsing saved request: %w", err)
	}
	record.Request = req

	return record, nil
}
