// components/question/question_test.go
//
// Public upvote endpoint through a real chi router.  The shared intake
// and admin behaviors are covered in components/registration.
//
// Run: go test ./components/question -v

package question

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func newTestRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := chi.NewRouter()
	New(sqlx.NewDb(db, "sqlmock")).Routes(r)
	return r, mock
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func TestUpvoteReturnsUpdatedRecord(t *testing.T) {
	r, mock := newTestRouter(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE question SET upvotes = upvotes + 1")).
		WithArgs(sqlmock.AnyArg(), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, name, question").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "upvotes", "status", "created_at", "updated_at"}).
			AddRow("id-1", 7, "reviewed", now, now))

	req := httptest.NewRequest(http.MethodPost, "/api/questions/id-1/upvote", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	var data struct {
		Upvotes int    `json:"upvotes"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("data payload: %v", err)
	}
	if data.Upvotes != 7 || data.Status != "reviewed" {
		t.Errorf("upvote data = %+v", data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpvoteUnknownQuestionIs404(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE question SET upvotes = upvotes + 1")).
		WithArgs(sqlmock.AnyArg(), "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/questions/nope/upvote", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404\n%s", rec.Code, rec.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if env.Success || env.Error != "Question not found." {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
