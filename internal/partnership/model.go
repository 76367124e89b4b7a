// internal/partnership/model.go
//
// Partnership inquiry records plus their intake analytics events.
package partnership

import (
	"time"

	"github.com/yanizio/summit/internal/review"
)

// Statuses is the declared whitelist for partnership inquiries:
// pending → contacted → confirmed or declined, with free transitions
// between any declared values.
var Statuses = review.StatusSet{"pending", "contacted", "confirmed", "declined"}

// Record mirrors one row in the persistent `partnership` table.  At most
// one record may exist per contact email — enforced by an intake
// pre-check and backed by a UNIQUE KEY in the migration.  The tier,
// value, and follow-up fields are set only when an administrator
// confirms the partnership.
type Record struct {
	ID           string     `db:"id"             json:"id"`
	Organization string     `db:"organization"   json:"organization"`
	ContactName  string     `db:"contact_name"   json:"contactName"`
	Email        string     `db:"email"          json:"email"`
	Phone        *string    `db:"phone"          json:"phone"`
	Interest     *string    `db:"interest"       json:"interest"`
	Message      *string    `db:"message"        json:"message"`
	Tier         *string    `db:"tier"           json:"partnershipTier"`
	Value        *float64   `db:"value"          json:"partnershipValue"`
	FollowUpDate *time.Time `db:"follow_up_date" json:"followUpDate"`
	Status       string     `db:"status"         json:"status"`
	ReviewedAt   *time.Time `db:"reviewed_at"    json:"reviewedAt"`
	ReviewedBy   *string    `db:"reviewed_by"    json:"reviewedBy"`
	CreatedAt    time.Time  `db:"created_at"     json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at"     json:"updatedAt"`
}

// Event is one analytics row written alongside a partnership intake.
// It snapshots the request's network origin metadata; losing one on a
// rare failure is accepted, so the write is explicitly best-effort.
type Event struct {
	ID            string    `db:"id"             json:"id"`
	PartnershipID string    `db:"partnership_id" json:"partnershipId"`
	IP            string    `db:"ip"             json:"ip"`
	CountryISO    string    `db:"country_iso"    json:"countryIso"`
	City          string    `db:"city"           json:"city"`
	Browser       string    `db:"browser"        json:"browser"`
	Device        string    `db:"device"         json:"device"`
	Platform      string    `db:"platform"       json:"platform"`
	IsBot         bool      `db:"is_bot"         json:"isBot"`
	Referrer      string    `db:"referrer"       json:"referrer"`
	CreatedAt     time.Time `db:"created_at"     json:"createdAt"`
}

// SideFields are the optional kind-specific attributes an administrator
// may attach while transitioning a partnership (typically on
// confirmation).  Absent fields leave the stored values untouched.
type SideFields struct {
	Tier         *string
	Value        *float64
	FollowUpDate *time.Time
}

// Summary is the fixed-shape aggregation for the dashboard card.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Contacted int `json:"contacted"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
}
