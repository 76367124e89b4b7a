// internal/partnership/repository_test.go
//
// Partnership-specific repository behavior: the one-inquiry-per-email
// rule and the duplicate-key mapping behind it.
//
// Run: go test ./internal/partnership -v

package partnership

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/summit/internal/review"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestExistsByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM partnership WHERE email = ? LIMIT 1",
	)).WithArgs("dup@example.org").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM partnership WHERE email = ? LIMIT 1",
	)).WithArgs("new@example.org").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	got, err := repo.ExistsByEmail(context.Background(), "dup@example.org")
	if err != nil || !got {
		t.Errorf("ExistsByEmail(dup) = %v, %v, want true, nil", got, err)
	}
	got, err = repo.ExistsByEmail(context.Background(), "new@example.org")
	if err != nil || got {
		t.Errorf("ExistsByEmail(new) = %v, %v, want false, nil", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInsertLowercasesEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO partnership (id, organization, contact_name, email, phone, interest, message, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)).WithArgs(
		sqlmock.AnyArg(), "Acme", "Ada Lovelace", "ada@example.org", nil,
		"sponsorship", "Hello.", review.StatusPending,
		sqlmock.AnyArg(), sqlmock.AnyArg(),
	).WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &Record{
		Organization: "Acme",
		ContactName:  "Ada Lovelace",
		Email:        "Ada@Example.ORG",
		Interest:     "sponsorship",
		Message:      "Hello.",
	}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if rec.Email != "ada@example.org" {
		t.Errorf("email not lower-cased: %q", rec.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInsertMapsUniqueKeyViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	// MySQL error 1062, as the driver renders it.
	mock.ExpectExec("INSERT INTO partnership").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry 'dup@example.org' for key 'uq_partnership_email'"))

	rec := &Record{
		Organization: "Acme",
		ContactName:  "Ada",
		Email:        "dup@example.org",
		Interest:     "sponsorship",
		Message:      "Hello.",
	}
	if err := repo.Insert(context.Background(), rec); !errors.Is(err, review.ErrDuplicate) {
		t.Errorf("err = %v, want review.ErrDuplicate", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetStatusAppliesSideFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	tier, value := "gold", 25000.0
	followUp := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE partnership SET status = ?, updated_at = ?, "+
			"tier = IFNULL(?, tier), value = IFNULL(?, value), "+
			"follow_up_date = IFNULL(?, follow_up_date), "+
			"reviewed_at = IFNULL(reviewed_at, ?), reviewed_by = IFNULL(?, reviewed_by) WHERE id = ?",
	)).WithArgs("confirmed", sqlmock.AnyArg(), &tier, &value, &followUp,
		sqlmock.AnyArg(), nil, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, organization").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "tier"}).
			AddRow("id-1", "confirmed", tier))

	side := SideFields{Tier: &tier, Value: &value, FollowUpDate: &followUp}
	rec, err := repo.SetStatus(context.Background(), "id-1", "confirmed", nil, side)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if rec.Status != "confirmed" || rec.Tier == nil || *rec.Tier != "gold" {
		t.Errorf("side fields not applied: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
