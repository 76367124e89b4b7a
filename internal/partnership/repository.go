// internal/partnership/repository.go
//
// sqlx query helpers for the partnership workflow.
//
// Context
// -------
// Partnership intake differs from the other kinds in two ways.  First,
// a duplicate pre-check: the business rule is one inquiry per contact
// email, checked here before the insert (the migration also carries a
// UNIQUE KEY, which collapses the remaining race window into an
// insert-or-conflict).  Second, a best-effort analytics event is written
// after the main insert; the two writes are not transactional, and a
// failed event write never unwinds the partnership row.
package partnership

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/review"
)

const table = "partnership"

const columns = `id, organization, contact_name, email, phone, interest,
                 message, tier, value, follow_up_date, status,
                 reviewed_at, reviewed_by, created_at, updated_at`

// Repository wraps the shared DB pool.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// ExistsByEmail reports whether an inquiry with this contact email is
// already stored.  Comparison is case-insensitive on the stored side
// because the column uses a CI collation; the caller lower-cases input.
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	const q = `SELECT 1 FROM partnership WHERE email = ? LIMIT 1`
	err := r.db.QueryRowContext(ctx, q, email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert assigns identity, initial status, and audit timestamps, then
// persists rec.  A UNIQUE KEY violation on email — the race the
// pre-check cannot close — surfaces as review.ErrDuplicate.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.Status = review.StatusPending
	rec.Email = strings.ToLower(rec.Email)
	rec.CreatedAt, rec.UpdatedAt = now, now

	const q = `
        INSERT INTO partnership
               (id, organization, contact_name, email, phone, interest,
                message, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.Organization, rec.ContactName, rec.Email, rec.Phone,
		rec.Interest, rec.Message, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
		return review.ErrDuplicate
	}
	return err
}

// InsertEvent writes the analytics row for a completed intake.  Callers
// treat a failure as best-effort: log and move on.
func (r *Repository) InsertEvent(ctx context.Context, ev *Event) error {
	ev.ID = uuid.NewString()
	ev.CreatedAt = time.Now().UTC()

	const q = `
        INSERT INTO partnership_event
               (id, partnership_id, ip, country_iso, city, browser,
                device, platform, is_bot, referrer, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		ev.ID, ev.PartnershipID, ev.IP, ev.CountryISO, ev.City,
		ev.Browser, ev.Device, ev.Platform, ev.IsBot, ev.Referrer,
		ev.CreatedAt)
	return err
}

// All returns every inquiry newest-first, optionally narrowed by status.
func (r *Repository) All(ctx context.Context, status string) ([]Record, error) {
	rows := []Record{}
	if status != "" {
		const q = `SELECT ` + columns + ` FROM partnership
                   WHERE status = ? ORDER BY created_at DESC`
		return rows, r.db.SelectContext(ctx, &rows, q, status)
	}
	const q = `SELECT ` + columns + ` FROM partnership ORDER BY created_at DESC`
	return rows, r.db.SelectContext(ctx, &rows, q)
}

// Events returns every analytics event newest-first for the dashboard's
// traffic panel.
func (r *Repository) Events(ctx context.Context) ([]Event, error) {
	rows := []Event{}
	const q = `
        SELECT id, partnership_id, ip, country_iso, city, browser,
               device, platform, is_bot, referrer, created_at
          FROM partnership_event ORDER BY created_at DESC`
	return rows, r.db.SelectContext(ctx, &rows, q)
}

// ByID fetches a single inquiry or review.ErrNotFound.
func (r *Repository) ByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	const q = `SELECT ` + columns + ` FROM partnership WHERE id = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SetStatus overwrites the status field and applies any supplied side
// fields (tier, value, follow-up date).  Absent side fields keep their
// stored values.  First transition out of `pending` stamps the reviewer
// columns.
func (r *Repository) SetStatus(ctx context.Context, id, status string, reviewedBy *string, side SideFields) (*Record, error) {
	now := time.Now().UTC()

	var err error
	if status == review.StatusPending {
		const q = `UPDATE partnership SET status = ?, updated_at = ? WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now, id)
	} else {
		const q = `UPDATE partnership
                      SET status = ?, updated_at = ?,
                          tier           = IFNULL(?, tier),
                          value          = IFNULL(?, value),
                          follow_up_date = IFNULL(?, follow_up_date),
                          reviewed_at    = IFNULL(reviewed_at, ?),
                          reviewed_by    = IFNULL(?, reviewed_by)
                    WHERE id = ?`
		_, err = r.db.ExecContext(ctx, q, status, now,
			side.Tier, side.Value, side.FollowUpDate, now, reviewedBy, id)
	}
	if err != nil {
		return nil, err
	}

	return r.ByID(ctx, id)
}

// Delete removes the row; missing ids are treated as success.  The
// analytics events keep their rows — they describe traffic, not the
// inquiry's lifecycle, and the dashboard reads them independently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM partnership WHERE id = ?`, id)
	return err
}

// Counts computes the dashboard summary.
func (r *Repository) Counts(ctx context.Context) (*Summary, error) {
	m, total, err := review.CountByStatus(ctx, r.db, table)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Total:     total,
		Pending:   m["pending"],
		Contacted: m["contacted"],
		Confirmed: m["confirmed"],
		Declined:  m["declined"],
	}, nil
}
