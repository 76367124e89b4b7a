// components/registration/registration.go
//
// Registration component – public intake plus the admin review surface.
//
//------------------------------------------------------------------------------

package registration

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/metrics"
	"github.com/yanizio/summit/internal/payload"
	"github.com/yanizio/summit/internal/registration"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/review"
	"github.com/yanizio/summit/internal/session"
)

const kind = "registration"

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component wires the registration repository to its endpoints.
type Component struct {
	repo *registration.Repository
}

// New constructs the component against the shared DB pool.
func New(db *sqlx.DB) *Component {
	return &Component{repo: registration.NewRepository(db)}
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return kind }

// Migrations returns the registration table DDL.
func (c *Component) Migrations() []string {
	return []string{`
        CREATE TABLE IF NOT EXISTS registration (
            id           CHAR(36)     NOT NULL PRIMARY KEY,
            name         VARCHAR(120) NOT NULL,
            email        VARCHAR(190) NOT NULL,
            phone        VARCHAR(40)  NULL,
            organization VARCHAR(190) NULL,
            ticket_type  VARCHAR(30)  NOT NULL,
            dietary      VARCHAR(500) NULL,
            status       VARCHAR(20)  NOT NULL DEFAULT 'pending',
            reviewed_at  DATETIME     NULL,
            reviewed_by  VARCHAR(120) NULL,
            created_at   DATETIME     NOT NULL,
            updated_at   DATETIME     NOT NULL,
            KEY idx_registration_created (created_at)
        )`}
}

// Routes registers the public and admin endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/registrations", c.handleIntake)

	r.Route("/api/admin/registrations", func(ar chi.Router) {
		ar.Use(session.RequireAdmin)
		ar.Get("/", c.handleList)
		ar.Get("/stats", c.handleStats)
		ar.Patch("/{id}/status", c.handleStatus)
		ar.Delete("/{id}", c.handleDelete)
	})
}

/*──────────────────────────── payloads ─────────────────────────────────────*/

type intakePayload struct {
	Name         string  `json:"name"                validate:"required,max=120"`
	Email        string  `json:"email"               validate:"required,email,max=190"`
	Phone        *string `json:"phone"               validate:"omitempty,max=40"`
	Organization *string `json:"organization"        validate:"omitempty,max=190"`
	TicketType   string  `json:"ticketType"          validate:"required,oneof=standard student vip virtual"`
	Dietary      *string `json:"dietaryRequirements" validate:"omitempty,max=500"`
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

	rec := &registration.Record{
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Organization: p.Organization,
		TicketType:   p.TicketType,
		Dietary:      p.Dietary,
	}
	if err := c.repo.Insert(r.Context(), rec); err != nil {
		zap.S().Errorw("registration intake failed", "err", err)
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusInternalServerError, "Could not save your registration.  Please try again.")
		return
	}

	metrics.IntakeTotal.WithLabelValues(kind).Inc()
	respond.Created(w, rec, "Registration received.")
}

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !registration.Statuses.Contains(status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status filter.")
		return
	}

	recs, err := c.repo.All(r.Context(), status)
	if err != nil {
		zap.S().Errorw("registration list failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not load registrations.")
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
	if !registration.Statuses.Contains(p.Status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status value.")
		return
	}

	rec, err := c.repo.SetStatus(r.Context(), chi.URLParam(r, "id"), p.Status, p.ReviewedBy)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Registration not found.")
			return
		}
		zap.S().Errorw("registration status update failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not update the registration.")
		return
	}

	metrics.TransitionsTotal.WithLabelValues(kind).Inc()
	respond.OK(w, rec)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		zap.S().Errorw("registration delete failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not delete the registration.")
		return
	}
	metrics.DeletesTotal.WithLabelValues(kind).Inc()
	respond.Message(w, "Registration deleted.")
}

func (c *Component) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := c.repo.Counts(r.Context())
	if err != nil {
		zap.S().Errorw("registration stats failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not compute registration stats.")
		return
	}
	respond.OK(w, sum)
}
