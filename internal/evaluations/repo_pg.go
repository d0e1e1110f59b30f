package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new evaluation.
func (r *PGRepo) Create(ctx context.Context, ev Evaluation) error {
	const query = `
INSERT INTO evaluations (
    id,
    file_name,
    job_description,
    score,
    explanation,
    matched,
    missing,
    feedback,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	matched, err := encodeKeywords(ev.Matched)
	if err != nil {
		return err
	}
	missing, err := encodeKeywords(ev.Missing)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		ev.ID,
		ev.FileName,
		ev.JobDescription,
		ev.Score,
		ev.Explanation,
		matched,
		missing,
		ev.Feedback,
		ev.CreatedAt,
	)
	return err
}

const selectColumns = `id, file_name, job_description, score, explanation, matched, missing, feedback, created_at`

// GetByID returns an evaluation by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Evaluation, error) {
	query := `SELECT ` + selectColumns + ` FROM evaluations WHERE id = $1`
	ev, err := scanEvaluation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrNotFound
		}
		return Evaluation{}, err
	}
	return ev, nil
}

// List returns evaluations newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Evaluation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + ` FROM evaluations ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row scanner) (Evaluation, error) {
	var ev Evaluation
	var matched, missing []byte
	if err := row.Scan(
		&ev.ID,
		&ev.FileName,
		&ev.JobDescription,
		&ev.Score,
		&ev.Explanation,
		&matched,
		&missing,
		&ev.Feedback,
		&ev.CreatedAt,
	); err != nil {
		return Evaluation{}, err
	}
	var err error
	if ev.Matched, err = decodeKeywords(matched); err != nil {
		return Evaluation{}, err
	}
	if ev.Missing, err = decodeKeywords(missing); err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

func encodeKeywords(words []string) ([]byte, error) {
	if words == nil {
		words = []string{}
	}
	raw, err := json.Marshal(words)
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}
	return raw, nil
}

func decodeKeywords(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	return out, nil
}
