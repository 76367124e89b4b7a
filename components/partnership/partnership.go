// components/partnership/partnership.go
//
// Partnership component – public inquiry intake (with email dedup and a
// best-effort analytics event), the admin review surface, and the
// analytics event feed for the dashboard's traffic panel.
//
//------------------------------------------------------------------------------

package partnership

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/message"
	"github.com/yanizio/summit/internal/metrics"
	"github.com/yanizio/summit/internal/partnership"
	"github.com/yanizio/summit/internal/payload"
	"github.com/yanizio/summit/internal/requestinfo"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/review"
	"github.com/yanizio/summit/internal/session"
)

const kind = "partnership"

var _ component.Component = (*Component)(nil)

// Component wires the partnership repository to its endpoints.
type Component struct {
	repo *partnership.Repository
}

// New constructs the component against the shared DB pool.
func New(db *sqlx.DB) *Component {
	return &Component{repo: partnership.NewRepository(db)}
}

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string { return kind }

// Migrations returns the partnership and partnership_event DDL.  The
// UNIQUE KEY on email backs up the application-level dedup pre-check,
// collapsing its race window into an insert-or-conflict.
func (c *Component) Migrations() []string {
	return []string{`
        CREATE TABLE IF NOT EXISTS partnership (
            id             CHAR(36)      NOT NULL PRIMARY KEY,
            organization   VARCHAR(190)  NOT NULL,
            contact_name   VARCHAR(120)  NOT NULL,
            email          VARCHAR(190)  NOT NULL,
            phone          VARCHAR(40)   NULL,
            interest       VARCHAR(60)   NULL,
            message        TEXT          NULL,
            tier           VARCHAR(40)   NULL,
            value          DECIMAL(12,2) NULL,
            follow_up_date DATE          NULL,
            status         VARCHAR(20)   NOT NULL DEFAULT 'pending',
            reviewed_at    DATETIME      NULL,
            reviewed_by    VARCHAR(120)  NULL,
            created_at     DATETIME      NOT NULL,
            updated_at     DATETIME      NOT NULL,
            UNIQUE KEY uq_partnership_email (email),
            KEY idx_partnership_created (created_at)
        )`, `
        CREATE TABLE IF NOT EXISTS partnership_event (
            id             CHAR(36)     NOT NULL PRIMARY KEY,
            partnership_id CHAR(36)     NOT NULL,
            ip             VARCHAR(45)  NOT NULL DEFAULT '',
            country_iso    VARCHAR(2)   NOT NULL DEFAULT '',
            city           VARCHAR(120) NOT NULL DEFAULT '',
            browser        VARCHAR(60)  NOT NULL DEFAULT '',
            device         VARCHAR(20)  NOT NULL DEFAULT '',
            platform       VARCHAR(40)  NOT NULL DEFAULT '',
            is_bot         TINYINT(1)   NOT NULL DEFAULT 0,
            referrer       VARCHAR(500) NOT NULL DEFAULT '',
            created_at     DATETIME     NOT NULL,
            KEY idx_partnership_event_created (created_at)
        )`}
}

// Routes registers the public and admin endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/partnerships", c.handleIntake)

	r.Route("/api/admin/partnerships", func(ar chi.Router) {
		ar.Use(session.RequireAdmin)
		ar.Get("/", c.handleList)
		ar.Get("/stats", c.handleStats)
		ar.Get("/events", c.handleEvents)
		ar.Patch("/{id}/status", c.handleStatus)
		ar.Delete("/{id}", c.handleDelete)
	})
}

/*──────────────────────────── payloads ─────────────────────────────────────*/

type intakePayload struct {
	Organization string  `json:"organization" validate:"required,max=190"`
	ContactName  string  `json:"contactName"  validate:"required,max=120"`
	Email        string  `json:"email"        validate:"required,email,max=190"`
	Phone        *string `json:"phone"        validate:"omitempty,max=40"`
	Interest     *string `json:"interest"     validate:"omitempty,oneof=sponsorship media venue catering other"`
	Message      *string `json:"message"      validate:"omitempty,max=4000"`
}

type statusPayload struct {
	Status           string   `json:"status"           validate:"required"`
	ReviewedBy       *string  `json:"reviewedBy"       validate:"omitempty,max=120"`
	PartnershipTier  *string  `json:"partnershipTier"  validate:"omitempty,oneof=platinum gold silver bronze community"`
	PartnershipValue *float64 `json:"partnershipValue" validate:"omitempty,gte=0"`
	FollowUpDate     *string  `json:"followUpDate"     validate:"omitempty,datetime=2006-01-02"`
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleIntake(w http.ResponseWriter, r *http.Request) {
	var p intakePayload
	if err := payload.Bind(r, &p); err != nil {
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	// Dedup pre-check: one inquiry per contact email.  The check and
	// the insert are two sequential calls; the table's UNIQUE KEY
	// closes the remaining window.
	email := strings.ToLower(p.Email)
	exists, err := c.repo.ExistsByEmail(r.Context(), email)
	if err != nil {
		zap.S().Errorw("partnership dedup check failed", "err", err)
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusInternalServerError, "Could not save your inquiry.  Please try again.")
		return
	}
	if exists {
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusConflict, "We already have an inquiry from this email address.  Our team will be in touch.")
		return
	}

	rec := &partnership.Record{
		Organization: p.Organization,
		ContactName:  p.ContactName,
		Email:        email,
		Phone:        p.Phone,
		Interest:     p.Interest,
		Message:      p.Message,
	}
	if err := c.repo.Insert(r.Context(), rec); err != nil {
		if errors.Is(err, review.ErrDuplicate) {
			metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
			respond.Fail(w, http.StatusConflict, "We already have an inquiry from this email address.  Our team will be in touch.")
			return
		}
		zap.S().Errorw("partnership intake failed", "err", err)
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusInternalServerError, "Could not save your inquiry.  Please try again.")
		return
	}

	// Best-effort analytics write.  The inquiry row stands even when
	// this fails; losing an event on a rare failure is accepted.
	if ri := requestinfo.FromContext(r.Context()); ri != nil {
		ev := &partnership.Event{
			PartnershipID: rec.ID,
			CountryISO:    ri.Geo.CountryISO,
			City:          ri.Geo.City,
			Browser:       ri.UA.Browser,
			Device:        ri.UA.Device,
			Platform:      ri.UA.Platform,
			IsBot:         ri.UA.IsBot,
			Referrer:      ri.Referrer,
		}
		if ri.Geo.IP != nil {
			ev.IP = ri.Geo.IP.String()
		}
		if err := c.repo.InsertEvent(r.Context(), ev); err != nil {
			zap.S().Warnw("partnership analytics write lost", "partnership", rec.ID, "err", err)
		}
	}

	// Heads-up mail to the partnerships team; fire-and-forget stub.
	_ = message.EnqueueEmail(r.Context(), message.Email{
		To:      []string{"partnerships@summit.local"},
		Subject: "New partnership inquiry: " + rec.Organization,
		Text:    "Contact " + rec.ContactName + " <" + rec.Email + ">",
	})

	metrics.IntakeTotal.WithLabelValues(kind).Inc()
	respond.Created(w, rec, "Inquiry received.")
}

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !partnership.Statuses.Contains(status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status filter.")
		return
	}

	recs, err := c.repo.All(r.Context(), status)
	if err != nil {
		zap.S().Errorw("partnership list failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not load inquiries.")
		return
	}
	respond.OK(w, recs)
}

func (c *Component) handleEvents(w http.ResponseWriter, r *http.Request) {
	evs, err := c.repo.Events(r.Context())
	if err != nil {
		zap.S().Errorw("partnership events list failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not load analytics events.")
		return
	}
	respond.OK(w, evs)
}

func (c *Component) handleStatus(w http.ResponseWriter, r *http.Request) {
	var p statusPayload
	if err := payload.Bind(r, &p); err != nil {
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if !partnership.Statuses.Contains(p.Status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status value.")
		return
	}

	side := partnership.SideFields{
		Tier:  p.PartnershipTier,
		Value: p.PartnershipValue,
	}
	if p.FollowUpDate != nil {
		// Format already validated by the datetime tag.
		d, _ := time.Parse("2006-01-02", *p.FollowUpDate)
		side.FollowUpDate = &d
	}

	rec, err := c.repo.SetStatus(r.Context(), chi.URLParam(r, "id"), p.Status, p.ReviewedBy, side)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Inquiry not found.")
			return
		}
		zap.S().Errorw("partnership status update failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not update the inquiry.")
		return
	}

	metrics.TransitionsTotal.WithLabelValues(kind).Inc()
	respond.OK(w, rec)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		zap.S().Errorw("partnership delete failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not delete the inquiry.")
		return
	}
	metrics.DeletesTotal.WithLabelValues(kind).Inc()
	respond.Message(w, "Inquiry deleted.")
}

func (c *Component) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := c.repo.Counts(r.Context())
	if err != nil {
		zap.S().Errorw("partnership stats failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not compute partnership stats.")
		return
	}
	respond.OK(w, sum)
}
