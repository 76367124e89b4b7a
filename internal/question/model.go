// internal/question/model.go
//
// Audience question records ("ask the speakers" box).
package question

import (
	"time"

	"github.com/yanizio/summit/internal/review"
)

// Statuses is the declared whitelist for questions.  The usual path is
// pending → reviewed → answered, with archived available from anywhere.
// Transitions are free-form; any declared value may be set at any time.
var Statuses = review.StatusSet{"pending", "reviewed", "answered", "archived"}

// Record mirrors one row in the persistent `question` table.  Upvotes
// double as a triage signal: any upvoted question is marked reviewed.
type Record struct {
	ID         string     `db:"id"          json:"id"`
	Name       string     `db:"name"        json:"name"`
	Question   string     `db:"question"    json:"question"`
	Category   *string    `db:"category"    json:"category"`
	Upvotes    int        `db:"upvotes"     json:"upvotes"`
	IsAnswered bool       `db:"is_answered" json:"isAnswered"`
	Status     string     `db:"status"      json:"status"`
	AnsweredAt *time.Time `db:"answered_at" json:"answeredAt"`
	AnsweredBy *string    `db:"answered_by" json:"answeredBy"`
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
	Answered int `json:"answered"`
	Archived int `json:"archived"`
}
