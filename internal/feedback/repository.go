// internal/feedback/repository.go
//
// sqlx query helpers for the feedback workflow.
package feedback

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/review"
)

const table = "feedback"

const columns = `id, name, email, rating, comments, category, status,
                 reviewed_at, reviewed_by, created_at, updated_at`

// Repository wraps the shared DB pool.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// Insert assigns identity, initial status, and audit timestamps, then
// persists rec.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.Status = review.StatusPending
	rec.CreatedAt, rec.UpdatedAt = now, now

	const q = `
        INSERT INTO feedback
               (id, name, email, rating, comments, category,
                status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.Name, rec.Email, rec.Rating, rec.Comments,
		rec.Category, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// All returns every feedback entry newest-first, optionally narrowed by
// status.
func (r *Repository) All(ctx context.Context, status string) ([]Record, error) {
	rows := []Record{}
	if status != "" {
		const q = `SELECT ` + columns + ` FROM feedback
                   WHERE status = ? ORDER BY created_at DESC`
		return rows, r.db.SelectContext(ctx, &rows, q, status)
	}
	const q = `SELECT ` + columns + ` FROM feedback ORDER BY created_at DESC`
	return rows, r.db.SelectContext(ctx, &rows, q)
}

// ByID fetches a single entry or review.ErrNotFound.
func (r *Repository) ByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	const q = `SELECT ` + columns + ` FROM feedback WHERE id = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SetStatus overwrites the status field; the first transition out of
// `pending` stamps the reviewer columns.
func (r *Repository) SetStatus(ctx context.Context, id, status string, reviewedBy *string) (*Record, error) {
	now := time.Now().UTC()

	var err error
	if status == review.StatusPending {
		const q = `UPDATE feedback SET status = ?, updated_at = ? WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, id)
	} else {
		const q = `UPDATE feedback
                      SET status = ?, updated_at = ?,
                          reviewed_at = IFNULL(reviewed_at, ?),
                          reviewed_by = IFNULL(?, reviewed_by)
                    WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, now, reviewedBy, id)
	}
	if err != nil {
		return nil, err
	}

	return r.ByID(ctx, id)
}

// Delete removes the row; missing ids are treated as success.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	return err
}

// Counts computes the dashboard summary.
func (r *Repository) Counts(ctx context.Context) (*Summary, error) {
	m, total, err := review.CountByStatus(ctx, r.db, table)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Total:    total,
		Pending:  m["pending"],
		Reviewed: m["reviewed"],
		Archived: m["archived"],
	}, nil
}
