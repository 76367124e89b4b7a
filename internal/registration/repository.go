// internal/registration/repository.go
//
// sqlx query helpers for the registration workflow.
//
// Context
// -------
// One repository per submission kind; each implements the same five
// operations (Insert, All, SetStatus, Delete, Counts) against its own
// table.  Storage failures are returned raw — the component layer logs
// them and converts them to the response envelope, so nothing here
// writes to the log except through the caller.
package registration

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/review"
)

const table = "registration"

const columns = `id, name, email, phone, organization, ticket_type, dietary,
                 status, reviewed_at, reviewed_by, created_at, updated_at`

// Repository wraps the shared DB pool.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// Insert assigns identity, initial status, and audit timestamps, then
// persists rec.  The caller's payload fields are already validated.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.Status = review.StatusPending
	rec.CreatedAt, rec.UpdatedAt = now, now

	const q = `
        INSERT INTO registration
               (id, name, email, phone, organization, ticket_type, dietary,
                status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.Name, rec.Email, rec.Phone, rec.Organization,
		rec.TicketType, rec.Dietary, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// All returns every registration newest-first.  A non-empty status
// narrows the result; the caller has already checked it against
// Statuses.  Ordering is a contract the admin table relies on.
func (r *Repository) All(ctx context.Context, status string) ([]Record, error) {
	rows := []Record{}
	if status != "" {
		const q = `SELECT ` + columns + ` FROM registration
                   WHERE status = ? ORDER BY created_at DESC`
		return rows, r.db.SelectContext(ctx, &rows, q, status)
	}
	const q = `SELECT ` + columns + ` FROM registration ORDER BY created_at DESC`
	return rows, r.db.SelectContext(ctx, &rows, q)
}

// ByID fetches a single registration or review.ErrNotFound.
func (r *Repository) ByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	const q = `SELECT ` + columns + ` FROM registration WHERE id = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SetStatus overwrites the status field and refreshes updated_at.  The
// first transition out of `pending` stamps reviewed_at, and reviewed_by
// when supplied; later transitions leave the original stamp in place.
// The target status has already passed the whitelist check.
func (r *Repository) SetStatus(ctx context.Context, id, status string, reviewedBy *string) (*Record, error) {
	now := time.Now().UTC()

	var err error
	if status == review.StatusPending {
		const q = `UPDATE registration SET status = ?, updated_at = ? WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, id)
	} else {
		const q = `UPDATE registration
                      SET status = ?, updated_at = ?,
                          reviewed_at = IFNULL(reviewed_at, ?),
                          reviewed_by = IFNULL(?, reviewed_by)
                    WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, now, reviewedBy, id)
	}
	if err != nil {
		return nil, err
	}

	// RowsAffected is zero for no-op updates too, so existence is
	// settled by the re-fetch.
	return r.ByID(ctx, id)
}

// Delete removes the row.  Deleting an id that no longer exists is a
// success; the operation is idempotent by nature of DELETE-by-id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM registration WHERE id = ?`, id)
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
		Paid:     m["paid"],
		Failed:   m["failed"],
		Refunded: m["refunded"],
	}, nil
}
