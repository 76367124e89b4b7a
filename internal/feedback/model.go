// internal/feedback/model.go
//
// Attendee feedback records.
package feedback

import (
	"time"

	"github.com/yanizio/summit/internal/review"
)

// Statuses is the declared whitelist for feedback:
// pending → reviewed → archived, with free transitions between any
// declared values.
var Statuses = review.StatusSet{"pending", "reviewed", "archived"}

// Record mirrors one row in the persistent `feedback` table.  Name and
// email are optional — anonymous feedback is welcome.
type Record struct {
	ID         string     `db:"id"          json:"id"`
	Name       *string    `db:"name"        json:"name"`
	Email      *string    `db:"email"       json:"email"`
	Rating     int        `db:"rating"      json:"rating"`
	Comments   string     `db:"comments"    json:"comments"`
	Category   *string    `db:"category"    json:"category"`
	Status     string     `db:"status"      json:"status"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewedAt"`
	ReviewedBy *string    `db:"reviewed_by" json:"reviewedBy"`
	CreatedAt  time.Time  `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at"  json:"updatedAt"`
}

// Summary is the fixed-shape aggregation for the dashboard card.
type Summary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Archived int `json:"archived"`
}
