// internal/question/repository.go
//
// sqlx query helpers for the question workflow.
//
// Same operation set as the other kinds, plus Upvote.  The upvote
// counter is bumped with a relative UPDATE (`upvotes = upvotes + 1`) so
// concurrent upvotes serialize at the storage layer instead of losing
// increments to read-then-write races.
package question

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/review"
)

const table = "question"

const columns = `id, name, question, category, upvotes, is_answered, status,
                 answered_at, answered_by, reviewed_at, reviewed_by,
                 created_at, updated_at`

// Repository wraps the shared DB pool.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// Insert assigns identity, initial status, and audit timestamps, then
// persists rec.  New questions start unanswered with zero upvotes.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.Status = review.StatusPending
	rec.Upvotes = 0
	rec.IsAnswered = false
	rec.CreatedAt, rec.UpdatedAt = now, now

	const q = `
        INSERT INTO question
               (id, name, question, category, upvotes, is_answered,
                status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.Name, rec.Question, rec.Category, rec.Upvotes,
		rec.IsAnswered, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// All returns every question newest-first, optionally narrowed by status.
func (r *Repository) All(ctx context.Context, status string) ([]Record, error) {
	rows := []Record{}
	if status != "" {
		const q = `SELECT ` + columns + ` FROM question
                   WHERE status = ? ORDER BY created_at DESC`
		return rows, r.db.SelectContext(ctx, &rows, q, status)
	}
	const q = `SELECT ` + columns + ` FROM question ORDER BY created_at DESC`
	return rows, r.db.SelectContext(ctx, &rows, q)
}

// ByID fetches a single question or review.ErrNotFound.
func (r *Repository) ByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	const q = `SELECT ` + columns + ` FROM question WHERE id = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SetStatus overwrites the status field.  Reaching `answered` also flips
// is_answered and stamps answered_at/answered_by; the first transition
// out of `pending` stamps reviewed_at/reviewed_by as with every kind.
func (r *Repository) SetStatus(ctx context.Context, id, status string, reviewedBy *string) (*Record, error) {
	now := time.Now().UTC()

	var err error
	switch status {
	case review.StatusPending:
		const q = `UPDATE question SET status = ?, updated_at = ? WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, id)
	case "answered":
		const q = `UPDATE question
                      SET status = ?, updated_at = ?,
                          is_answered = TRUE,
                          answered_at = ?, answered_by = ?,
                          reviewed_at = IFNULL(reviewed_at, ?),
                          reviewed_by = IFNULL(?, reviewed_by)
                    WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, now, reviewedBy, now, reviewedBy, id)
	default:
		const q = `UPDATE question
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

// Upvote bumps the counter by one and marks the question reviewed; an
// upvoted question has by definition been seen.  One relative UPDATE,
// never read-then-write.
func (r *Repository) Upvote(ctx context.Context, id string) (*Record, error) {
	const q = `UPDATE question
                  SET upvotes = upvotes + 1, status = 'reviewed', updated_at = ?
                WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	// The update always changes upvotes, so zero rows means no row.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, review.ErrNotFound
	}
	return r.ByID(ctx, id)
}

// Delete removes the row; missing ids are treated as success.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM question WHERE id = ?`, id)
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
		Answered: m["answered"],
		Archived: m["archived"],
	}, nil
}
