// internal/review/review.go
//
// Shared vocabulary for the submission-review workflow.
//
// Context
// -------
// Every public submission on a Summit site — registrations, audience
// questions, partnership inquiries, exhibitor pitches, and feedback —
// moves through the same lifecycle: a validated intake writes a row with
// status "pending", an administrator lists the rows newest-first, moves
// them through a small per-kind status set, and eventually deletes them.
// This package holds the pieces that are identical across kinds: the
// status whitelist type, the failure sentinels every repository returns,
// and the per-status count helper behind the dashboard summaries.
//
// The status model is deliberately a flat whitelist, not a guarded state
// machine.  Any declared status may be set at any time; SetStatus-style
// operations check membership only.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package review

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

// StatusPending is the initial status for every submission kind.
const StatusPending = "pending"

// Sentinel failures shared by all repositories.  Handlers map these to
// specific user-facing messages; anything else becomes a generic storage
// failure in the response envelope.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// StatusSet is the declared status whitelist for one submission kind.
// Order is preserved so dashboards render counts in lifecycle order.
type StatusSet []string

// Contains reports whether s is a declared status value.
func (set StatusSet) Contains(s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Values returns the declared statuses in declaration order.
func (set StatusSet) Values() []string { return set }

// CountByStatus runs one GROUP BY over the kind's table and returns a
// status → count map plus the unfiltered total.  Statuses with no rows
// are absent from the map; callers default them to zero when shaping the
// fixed summary struct.
//
// The table name is a package-level constant in each kind's repository,
// never user input.
func CountByStatus(ctx context.Context, db *sqlx.DB, table string) (map[string]int, int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM `+table+` GROUP BY status`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make(map[string]int, 4)
	total := 0
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, 0, err
		}
		counts[status] = n
		total += n
	}
	return counts, total, rows.Err()
}
