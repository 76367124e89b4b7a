// components/exhibitor/exhibitor.go
//
// Exhibitor component – public pitch intake plus the admin review
// surface.
//
//------------------------------------------------------------------------------

package exhibitor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/exhibitor"
	"github.com/yanizio/summit/internal/metrics"
	"github.com/yanizio/summit/internal/payload"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/review"
	"github.com/yanizio/summit/internal/session"
)

const kind = "exhibitor"

var _ component.Component = (*Component)(nil)

// Component wires the exhibitor repository to its endpoints.
type Component struct {
	repo *exhibitor.Repository
}

// New constructs the component against the shared DB pool.
func New(db *sqlx.DB) *Component {
	return &Component{repo: exhibitor.NewRepository(db)}
}

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string { return kind }

// Migrations returns the exhibitor table DDL.  sdg_alignment holds the
// comma-serialized SDG list.
func (c *Component) Migrations() []string {
	return []string{`
        CREATE TABLE IF NOT EXISTS exhibitor (
            id            CHAR(36)     NOT NULL PRIMARY KEY,
            organization  VARCHAR(190) NOT NULL,
            contact_name  VARCHAR(120) NULL,
            email         VARCHAR(190) NOT NULL,
            website       VARCHAR(300) NULL,
            pitch         TEXT         NOT NULL,
            category      VARCHAR(60)  NULL,
            sdg_alignment VARCHAR(500) NULL,
            status        VARCHAR(20)  NOT NULL DEFAULT 'pending',
            reviewed_at   DATETIME     NULL,
            reviewed_by   VARCHAR(120) NULL,
            created_at    DATETIME     NOT NULL,
            updated_at    DATETIME     NOT NULL,
            KEY idx_exhibitor_created (created_at)
        )`}
}

// Routes registers the public and admin endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/exhibitors", c.handleIntake)

	r.Route("/api/admin/exhibitors", func(ar chi.Router) {
		ar.Use(session.RequireAdmin)
		ar.Get("/", c.handleList)
		ar.Get("/stats", c.handleStats)
		ar.Patch("/{id}/status", c.handleStatus)
		ar.Delete("/{id}", c.handleDelete)
	})
}

/*──────────────────────────── payloads ─────────────────────────────────────*/

type intakePayload struct {
	Organization string   `json:"organization" validate:"required,max=190"`
	ContactName  *string  `json:"contactName"  validate:"omitempty,max=120"`
	Email        string   `json:"email"        validate:"required,email,max=190"`
	Website      *string  `json:"website"      validate:"omitempty,url,max=300"`
	Pitch        string   `json:"pitch"        validate:"required,max=4000"`
	Category     *string  `json:"category"     validate:"omitempty,max=60"`
	SDGAlignment []string `json:"sdgAlignment" validate:"omitempty,max=17,dive,required,max=60"`
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

	rec := &exhibitor.Record{
		Organization: p.Organization,
		ContactName:  p.ContactName,
		Email:        p.Email,
		Website:      p.Website,
		Pitch:        p.Pitch,
		Category:     p.Category,
		SDGAlignment: p.SDGAlignment,
	}
	if err := c.repo.Insert(r.Context(), rec); err != nil {
		zap.S().Errorw("exhibitor intake failed", "err", err)
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusInternalServerError, "Could not save your pitch.  Please try again.")
		return
	}

	metrics.IntakeTotal.WithLabelValues(kind).Inc()
	respond.Created(w, rec, "Pitch received.")
}

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !exhibitor.Statuses.Contains(status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status filter.")
		return
	}

	recs, err := c.repo.All(r.Context(), status)
	if err != nil {
		zap.S().Errorw("exhibitor list failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not load pitches.")
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
	if !exhibitor.Statuses.Contains(p.Status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status value.")
		return
	}

	rec, err := c.repo.SetStatus(r.Context(), chi.URLParam(r, "id"), p.Status, p.ReviewedBy)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Pitch not found.")
			return
		}
		zap.S().Errorw("exhibitor status update failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not update the pitch.")
		return
	}

	metrics.TransitionsTotal.WithLabelValues(kind).Inc()
	respond.OK(w, rec)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		zap.S().Errorw("exhibitor delete failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not delete the pitch.")
		return
	}
	metrics.DeletesTotal.WithLabelValues(kind).Inc()
	respond.Message(w, "Pitch deleted.")
}

func (c *Component) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := c.repo.Counts(r.Context())
	if err != nil {
		zap.S().Errorw("exhibitor stats failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not compute exhibitor stats.")
		return
	}
	respond.OK(w, sum)
}
