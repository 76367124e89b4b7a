// components/admin/admin.go
//
// Admin component – server-side login, session introspection, and the
// combined dashboard summary.
//
// Context
//   The password check happens here and only here.  The browser never
//   sees a comparison secret; a successful login yields an HMAC-signed,
//   expiring cookie issued by internal/session.  The combined stats
//   endpoint fans out to all five kind repositories; a singleflight
//   group collapses concurrent dashboard refreshes into one set of
//   queries.
//
//------------------------------------------------------------------------------

package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/exhibitor"
	"github.com/yanizio/summit/internal/feedback"
	"github.com/yanizio/summit/internal/partnership"
	"github.com/yanizio/summit/internal/payload"
	"github.com/yanizio/summit/internal/question"
	"github.com/yanizio/summit/internal/registration"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/session"
)

var _ component.Component = (*Component)(nil)

// Component holds the admin gate and one repository per kind for the
// dashboard roll-up.
type Component struct {
	passwordHash  string // bcrypt
	sfg           singleflight.Group
	registrations *registration.Repository
	questions     *question.Repository
	partnerships  *partnership.Repository
	exhibitors    *exhibitor.Repository
	feedback      *feedback.Repository
}

// New constructs the component against the shared DB pool.  The hash
// comes from config (admin.password_hash, usually vault-resolved).
func New(db *sqlx.DB, passwordHash string) *Component {
	return &Component{
		passwordHash:  passwordHash,
		registrations: registration.NewRepository(db),
		questions:     question.NewRepository(db),
		partnerships:  partnership.NewRepository(db),
		exhibitors:    exhibitor.NewRepository(db),
		feedback:      feedback.NewRepository(db),
	}
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "admin" }

// Migrations returns nil – the admin surface owns no tables.
func (c *Component) Migrations() []string { return nil }

// Routes registers the session endpoints and the combined dashboard
// summary.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/admin/login", c.handleLogin)
	r.Post("/api/admin/logout", c.handleLogout)

	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(session.RequireAdmin)
		ar.Get("/session", c.handleSession)
		ar.Get("/stats", c.handleStats)
	})
}

/*──────────────────────────── payloads ─────────────────────────────────────*/

type loginPayload struct {
	Password string `json:"password" validate:"required,max=200"`
}

// dashboard is the combined summary the admin landing page renders.
type dashboard struct {
	Registrations *registration.Summary `json:"registrations"`
	Questions     *question.Summary     `json:"questions"`
	Partnerships  *partnership.Summary  `json:"partnerships"`
	Exhibitors    *exhibitor.Summary    `json:"exhibitors"`
	Feedback      *feedback.Summary     `json:"feedback"`
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleLogin(w http.ResponseWriter, r *http.Request) {
	var p loginPayload
	if err := payload.Bind(r, &p); err != nil {
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(p.Password)); err != nil {
		zap.S().Infow("admin login rejected")
		respond.Fail(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}

	session.Login(w, r)
	respond.Message(w, "Logged in.")
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.Logout(w)
	respond.Message(w, "Logged out.")
}

// handleSession lets the dashboard probe its login state without
// replaying credentials.  Reaching this handler at all means the
// RequireAdmin gate passed.
func (c *Component) handleSession(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, map[string]bool{"authenticated": true})
}

func (c *Component) handleStats(w http.ResponseWriter, r *http.Request) {
	v, err, _ := c.sfg.Do("stats", func() (any, error) {
		return c.collect(r.Context())
	})
	if err != nil {
		zap.S().Errorw("dashboard stats failed", "err", err)
		respond.Fail(w, http.StatusInternalServerError, "Could not compute dashboard stats.")
		return
	}
	respond.OK(w, v.(*dashboard))
}

// collect runs the five aggregations sequentially; each is a single
// GROUP BY round trip, so fan-out machinery would buy little here.
func (c *Component) collect(ctx context.Context) (*dashboard, error) {
	var (
		d   dashboard
		err error
	)
	if d.Registrations, err = c.registrations.Counts(ctx); err != nil {
		return nil, err
	}
	if d.Questions, err = c.questions.Counts(ctx); err != nil {
		return nil, err
	}
	if d.Partnerships, err = c.partnerships.Counts(ctx); err != nil {
		return nil, err
	}
	if d.Exhibitors, err = c.exhibitors.Counts(ctx); err != nil {
		return nil, err
	}
	if d.Feedback, err = c.feedback.Counts(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}
