// internal/registration/model.go
//
// Attendee registration records.
package registration

import (
	"time"

	"github.com/yanizio/summit/internal/review"
)

// Statuses is the declared whitelist for registrations.  `pending`
// becomes `paid` on a successful charge, `failed` on a declined one, and
// `refunded` after a refund is processed.  Transitions are free-form;
// any declared value may be set at any time.
var Statuses = review.StatusSet{"pending", "paid", "failed", "refunded"}

// Record mirrors one row in the persistent `registration` table.
type Record struct {
	ID           string     `db:"id"            json:"id"`
	Name         string     `db:"name"          json:"name"`
	Email        string     `db:"email"         json:"email"`
	Phone        *string    `db:"phone"         json:"phone"`
	Organization *string    `db:"organization"  json:"organization"`
	TicketType   string     `db:"ticket_type"   json:"ticketType"`
	Dietary      *string    `db:"dietary"       json:"dietaryRequirements"`
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
	Paid     int `json:"paid"`
	Failed   int `json:"failed"`
	Refunded int `json:"refunded"`
}
