// components/question/question.go
//
// Question component – public “ask the speakers” intake, public upvote,
// and the admin review surface.
//
//------------------------------------------------------------------------------

package question

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/metrics"
	"github.com/yanizio/summit/internal/payload"
	"github.com/yanizio/summit/internal/question"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/review"
	"github.com/yanizio/summit/internal/session"
)

const kind = "question"

var _ component.Component = (*Component)(nil)

// Component wires the question repository to its endpoints.
type Component struct {
	repo *question.Repository
}

// New constructs the component against the shared DB pool.
func New(db *sqlx.DB) *Component {
	return &Component{repo: question.NewRepository(db)}
}

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string { return kind }

// Migrations returns the question table DDL.
func (c *Component) Migrations() []string {
	return []string{`
        CREATE TABLE IF NOT EXISTS question (
            id          CHAR(36)     NOT NULL PRIMARY KEY,
            name        VARCHAR(120) NOT NULL,
            question    TEXT         NOT NULL,
            category    VARCHAR(60)  NULL,
            upvotes     INT          NOT NULL DEFAULT 0,
            is_answered TINYINT(1)   NOT NULL DEFAULT 0,
            status      VARCHAR(20)  NOT NULL DEFAULT 'pending',
            answered_at DATETIME     NULL,
            answered_by VARCHAR(120) NULL,
            reviewed_at DATETIME     NULL,
            reviewed_by VARCHAR(120) NULL,
            created_at  DATETIME     NOT NULL,
            updated_at  DATETIME     NOT NULL,
            KEY idx_question_created (created_at)
        )`}
}

// Routes registers the public and admin endpoints.  Upvoting is public;
// the front end shows a vote button on the program page.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/questions", c.handleIntake)
	r.Post("/api/questions/{id}/upvote", c.handleUpvote)

	r.Route("/api/admin/questions", func(ar chi.Router) {
		ar.Use(session.RequireAdmin)
		ar.Get("/", c.handleList)
		ar.Get("/stats", c.handleStats)
		ar.Patch("/{id}/status", c.handleStatus)
		ar.Delete("/{id}", c.handleDelete)
	})
}

/*──────────────────────────── payloads ─────────────────────────────────────*/

type intakePayload struct {
	Name     string  `json:"name"     validate:"required,max=120"`
	Question string  `json:"question" validate:"required,max=2000"`
	Category *string `json:"category" validate:"omitempty,max=60"`
}

// statusPayload accepts the Question kind's extra reviewer alias: the
// admin UI sends `answeredBy` when marking a question answered.
type statusPayload struct {
	Status     string  `json:"status"     validate:"required"`
	ReviewedBy *string `json:"reviewedBy" validate:"omitempty,max=120"`
	AnsweredBy *string `json:"answeredBy" validate:"omitempty,max=120"`
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleIntake(w http.ResponseWriter, r *http.Request) {
	var p intakePayload
	if err := payload.Bind(r, &p); err != nil {
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := &question.Record{
		Name:     p.Name,
		Question: p.Question,
		Category: p.Category,
	}
	if err := c.repo.Insert(r.Context(), rec); err != nil {
		zap.S().Errorw("question intake failed", "err", err)
		metrics.IntakeFailuresTotal.WithLabelValues(kind).Inc()
		respond.Fail(w, http.StatusInternalServerError, "Could not save your question.  Please try again.")
		return
	}

	metrics.IntakeTotal.WithLabelValues(kind).Inc()
	respond.Created(w, rec, "Question received.")
}

func (c *Component) handleUpvote(w http.ResponseWriter, r *http.Request) {
	rec, err := c.repo.Upvote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Question not found.")
			return
		}
		zap.S().Errorw("question upvote failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not record your vote.")
		return
	}
	respond.OK(w, rec)
}

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !question.Statuses.Contains(status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status filter.")
		return
	}

	recs, err := c.repo.All(r.Context(), status)
	if err != nil {
		zap.S().Errorw("question list failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not load questions.")
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
	if !question.Statuses.Contains(p.Status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown status value.")
		return
	}

	// answeredBy and reviewedBy identify the same administrator; the
	// repository stamps whichever columns the target status calls for.
	reviewer := p.ReviewedBy
	if reviewer == nil {
		reviewer = p.AnsweredBy
	}

	rec, err := c.repo.SetStatus(r.Context(), chi.URLParam(r, "id"), p.Status, reviewer)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Question not found.")
			return
		}
		zap.S().Errorw("question status update failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not update the question.")
		return
	}

	metrics.TransitionsTotal.WithLabelValues(kind).Inc()
	respond.OK(w, rec)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		zap.S().Errorw("question delete failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not delete the question.")
		return
	}
	metrics.DeletesTotal.WithLabelValues(kind).Inc()
	respond.Message(w, "Question deleted.")
}

func (c *Component) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := c.repo.Counts(r.Context())
	if err != nil {
		zap.S().Errorw("question stats failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not compute question stats.")
		return
	}
	respond.OK(w, sum)
}
