// components/admin/admin_test.go
//
// Login flow and combined dashboard summary.
//
// Run: go test ./components/admin -v

package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/yanizio/summit/internal/session"
)

// Hash of "open-sesame" at MinCost; cheap enough to generate per run.
func testHash(t *testing.T) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func newTestRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock) {
	t.Helper()
	session.Configure("test-secret", time.Hour)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := chi.NewRouter()
	New(sqlx.NewDb(db, "sqlmock"), testHash(t)).Routes(r)
	return r, mock
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"password":"guess"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("rejected login still set a cookie")
	}
}

func TestLoginIssuesUsableSession(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"password":"open-sesame"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("login set %d cookies, want 1", len(cookies))
	}

	// The issued cookie opens the gated session probe.
	probe := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	probe.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, probe)

	if rec.Code != http.StatusOK {
		t.Fatalf("session probe = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	var data map[string]bool
	if err := json.Unmarshal(env.Data, &data); err != nil || !data["authenticated"] {
		t.Errorf("probe data = %s", env.Data)
	}
}

func TestStatsCombinesAllKinds(t *testing.T) {
	r, mock := newTestRouter(t)

	// collect runs the five GROUP BYs in a fixed order.
	for _, table := range []string{"registration", "question", "partnership", "exhibitor", "feedback"} {
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT status, COUNT(*) FROM " + table + " GROUP BY status",
		)).WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 1))
	}

	login := httptest.NewRecorder()
	session.Login(login, httptest.NewRequest(http.MethodPost, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.AddCookie(login.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	var d struct {
		Registrations struct{ Total, Pending int } `json:"registrations"`
		Feedback      struct{ Total int }          `json:"feedback"`
	}
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("dashboard payload: %v", err)
	}
	if d.Registrations.Total != 1 || d.Registrations.Pending != 1 || d.Feedback.Total != 1 {
		t.Errorf("dashboard = %s", env.Data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
