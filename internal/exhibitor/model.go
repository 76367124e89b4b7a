// internal/exhibitor/model.go
//
// Exhibitor pitch submissions.
package exhibitor

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/yanizio/summit/internal/review"
)

// Statuses is the declared whitelist for exhibitor pitches:
// pending → reviewed → approved or rejected, with free transitions
// between any declared values.
var Statuses = review.StatusSet{"pending", "reviewed", "approved", "rejected"}

// StringList stores a list column as one comma-joined string, the same
// serialized-list convention the original site used for SDG alignment.
// JSON round-trips it as a proper array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Scan implements sql.Scanner for TEXT and VARCHAR columns.
func (l *StringList) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("exhibitor: cannot scan %T into StringList", src)
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = strings.Split(s, ",")
	return nil
}

// Record mirrors one row in the persistent `exhibitor` table.
type Record struct {
	ID           string     `db:"id"            json:"id"`
	Organization string     `db:"organization"  json:"organization"`
	ContactName  *string    `db:"contact_name"  json:"contactName"`
	Email        string     `db:"email"         json:"email"`
	Website      *string    `db:"website"       json:"website"`
	Pitch        string     `db:"pitch"         json:"pitch"`
	Category     *string    `db:"category"      json:"category"`
	SDGAlignment StringList `db:"sdg_alignment" json:"sdgAlignment"`
	Status       string     `db:"status"        json:"status"`
	ReviewedAt   *time.Time `db:"reviewed_at"   json:"reviewedAt"`
	ReviewedBy   *string    `db:"reviewed_by"   json:"reviewedBy"`
	CreatedAt    time.Time  `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at"    json:"updatedAt"`
}

// Summary is the fixed-shape aggregation for the dashboard card.
type Summary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
