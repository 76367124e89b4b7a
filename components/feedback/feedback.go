// components/feedback/feedback.go
//
// Feedback component – public feedback intake plus the admin review
// surface.
//
//------------------------------------------------------------------------------

package feedback

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/feedback"
	"github.com/yanizio/summit/internal/metrics"
	"github.com/yanizio/summit/internal/payload"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/review"
	"github.com/yanizio/summit/internal/session"
)

const kind = "feedback"

var _ component.Component = (*Component)(nil)

// Component wires the feedback repository to its endpoints.
type Component struct {
	repo *feedback.Repository
}

// New constructs the component against the shared DB pool.
func New(db *sqlx.DB) *Component {
	return &Component{repo: feedback.NewRepository(db)}
}

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string { return kind }

// Migrations returns the feedback table DDL.
func (c *Component) Migrations() []string {
	return []string{`
        CREATE TABLE IF NOT EXISTS feedback (
            id          CHAR(36)     NOT NULL PRIMARY KEY,
            name        VARCHAR(120) NULL,
            email       VARCHAR(190) NULL,
            rating      INT          NOT NULL,
            comments    TEXT         NOT NULL,
            category    VARCHAR(60)  NULL,
            status      VARCHAR(20)  NOT NULL DEFAULT 'pending',
            reviewed_at DATETIME     NULL,
            reviewed_by VARCHAR(120) NULL,
            created_at  DATETIME     NOT NULL,
            updated_at  DATETIME     NOT NULL,
            KEY idx_feedback_created (created_at)
        )`}
}

// Routes registers the public and admin endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/feedback", c.handleIntake)

	r.Route("/api/admin/feedback", func(ar chi.Router) {
		ar.Use(session.RequireAdmin)
		ar.Get("/", c.handleList)
		ar.Get("/stats", c.handleStats)
		ar.Patch("/{id}/status", c.handleStatus)
		ar.Delete("/{id}", c.handleDelete)
	})
}

/*──────────────────────────── payloads ─────────────────────────────────────*/

type intakePayload struct {
	Name     *string `json:"name"     validate:"omitempty,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email,max=190"`
	Rating   int     `json:"rating"   validate:"required,gte=1,lte=5"`
	Comments string  `json:"comments" validate:"required,max=4000"`
	Category *string `json:"category" validate:"omitempty,max=60"`
}

type statusPayload struct {
	Status     string  `json:"status"     validate:"required"`
	ReviewedBy *string `json:"reviewedBy" validate:"omitempty,max=120"`
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleIntake(w http.ResponseWriter, r *http.Request) {
	var p intakePayload
	if err := payload.Bind(r, &p); err != nil {
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := &feedback.Record{
		Name:     p.Name,
		Email:    p.Email,
		Rating:   p.Rating,
		Comments: p.Comments,
		Category: p.Category,
	}
	if err := c.repo.Insert(r.Context(), rec); err != nil {
		zap.S().Errorw("feedback intake failed", "err", err)
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusInternalServerError, "Could not save your feedback.  Please try again.")
		return
	}

	metrics.IntakeTotal.WithLabelValues(kind).Inc()
	respond.Created(w, rec, "Thanks for your feedback.")
}

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !feedback.Statuses.Contains(status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status filter.")
		return
	}

	recs, err := c.repo.All(r.Context(), status)
	if err != nil {
		zap.S().Errorw("feedback list failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not load feedback.")
		return
	}
	respond.OK(w, recs)
}

func (c *Component) handleStatus(w http.ResponseWriter, r *http.Request) {
	var p statusPayload
	if err := payload.Bind(r, &p); err != nil {
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if !feedback.Statuses.Contains(p.Status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status value.")
		return
	}

	rec, err := c.repo.SetStatus(r.Context(), chi.URLParam(r, "id"), p.Status, p.ReviewedBy)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Feedback entry not found.")
			return
		}
		zap.S().Errorw("feedback status update failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not update the feedback entry.")
		return
	}

	metrics.TransitionsTotal.WithLabelValues(kind).Inc()
	respond.OK(w, rec)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		zap.S().Errorw("feedback delete failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not delete the feedback entry.")
		return
	}
	metrics.DeletesTotal.WithLabelValues(kind).Inc()
	respond.Message(w, "Feedback entry deleted.")
}

func (c *Component) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := c.repo.Counts(r.Context())
	if err != nil {
		zap.S().Errorw("feedback stats failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not compute feedback stats.")
		return
	}
	respond.OK(w, sum)
}
