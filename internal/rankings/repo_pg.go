package rankings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-matcher/internal/ranking"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a run. Entries are stored as a JSONB array.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO ranking_runs (
    id,
    job_description,
    entries,
    csv_key,
    pdf_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6)`

	entries := run.Entries
	if entries == nil {
		entries = []ranking.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, run.ID, run.JobDescription, raw, run.CSVKey, run.PDFKey, run.CreatedAt)
	return err
}

const selectColumns = `id, job_description, entries, csv_key, pdf_key, created_at`

// GetByID returns a run by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Run, error) {
	query := `SELECT ` + selectColumns + ` FROM ranking_runs WHERE id = $1`
	run, err := scanRun(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return run, nil
}

// List returns runs newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + ` FROM ranking_runs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var raw []byte
	if err := row.Scan(&run.ID, &run.JobDescription, &raw, &run.CSVKey, &run.PDFKey, &run.CreatedAt); err != nil {
		return Run{}, err
	}
	run.Entries = []ranking.Entry{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &run.Entries); err != nil {
			return Run{}, fmt.Errorf("decode entries: %w", err)
		}
	}
	return run, nil
}
