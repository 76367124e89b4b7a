// internal/registration/repository_test.go
//
// Repository tests against a sqlmock connection.  The registration
// repository is the template for the other four kinds, so the shared
// behaviors — pending on insert, newest-first listing, reviewer
// stamping, idempotent delete — are exercised here in full.
//
// Run: go test ./internal/registration -v

package registration

import (
	"context"
	"errors"
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

const recordColumns = "id, name, email, phone, organization, ticket_type, dietary, " +
	"status, reviewed_at, reviewed_by, created_at, updated_at"

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "organization", "ticket_type", "dietary",
		"status", "reviewed_at", "reviewed_by", "created_at", "updated_at",
	})
}

func TestInsertAssignsIdentityAndPending(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO registration (id, name, email, phone, organization, ticket_type, dietary, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)).WithArgs(
		sqlmock.AnyArg(), "Ada Lovelace", "ada@example.org", nil, nil,
		"standard", nil, review.StatusPending, sqlmock.AnyArg(), sqlmock.AnyArg(),
	).WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &Record{Name: "Ada Lovelace", Email: "ada@example.org", TicketType: "standard"}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	if rec.ID == "" {
		t.Error("Insert did not assign an id")
	}
	if rec.Status != review.StatusPending {
		t.Errorf("status = %q, want %q", rec.Status, review.StatusPending)
	}
	if !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("created_at and updated_at differ on insert: %v vs %v", rec.CreatedAt, rec.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAllOrdersNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+recordColumns+" FROM registration ORDER BY created_at DESC",
	)).WillReturnRows(recordRows().
		AddRow("id-2", "Second", "b@example.org", nil, nil, "standard", nil,
			"pending", nil, nil, now, now).
		AddRow("id-1", "First", "a@example.org", nil, nil, "vip", nil,
			"paid", now, "admin", now.Add(-time.Hour), now))

	rows, err := repo.All(context.Background(), "")
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "id-2" || rows[1].ID != "id-1" {
		t.Errorf("rows out of order: %#v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAllFiltersByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+recordColumns+" FROM registration WHERE status = ? ORDER BY created_at DESC",
	)).WithArgs("paid").WillReturnRows(recordRows().
		AddRow("id-1", "First", "a@example.org", nil, nil, "vip", nil,
			"paid", now, "admin", now, now))

	rows, err := repo.All(context.Background(), "paid")
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(rows) != 1 || rows[0].Status != "paid" {
		t.Errorf("unexpected rows: %#v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetStatusStampsReviewer(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	reviewer := "admin@summit.local"

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE registration SET status = ?, updated_at = ?, reviewed_at = IFNULL(reviewed_at, ?), reviewed_by = IFNULL(?, reviewed_by) WHERE id = ?",
	)).WithArgs("paid", sqlmock.AnyArg(), sqlmock.AnyArg(), &reviewer, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + recordColumns + " FROM registration WHERE id = ? LIMIT 1",
	)).WithArgs("id-1").WillReturnRows(recordRows().
		AddRow("id-1", "First", "a@example.org", nil, nil, "vip", nil,
			"paid", now, reviewer, now, now))

	rec, err := repo.SetStatus(context.Background(), "id-1", "paid", &reviewer)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if rec.Status != "paid" {
		t.Errorf("status = %q, want paid", rec.Status)
	}
	if rec.ReviewedAt == nil || rec.ReviewedBy == nil || *rec.ReviewedBy != reviewer {
		t.Errorf("reviewer stamp missing: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetStatusBackToPendingSkipsStamp(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE registration SET status = ?, updated_at = ? WHERE id = ?",
	)).WithArgs("pending", sqlmock.AnyArg(), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + recordColumns + " FROM registration WHERE id = ? LIMIT 1",
	)).WithArgs("id-1").WillReturnRows(recordRows().
		AddRow("id-1", "First", "a@example.org", nil, nil, "vip", nil,
			"pending", nil, nil, now, now))

	rec, err := repo.SetStatus(context.Background(), "id-1", "pending", nil)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if rec.ReviewedAt != nil {
		t.Errorf("pending transition stamped reviewed_at: %v", *rec.ReviewedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetStatusUnknownIDIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE registration SET status = ?, updated_at = ?, reviewed_at = IFNULL(reviewed_at, ?), reviewed_by = IFNULL(?, reviewed_by) WHERE id = ?",
	)).WithArgs("paid", sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + recordColumns + " FROM registration WHERE id = ? LIMIT 1",
	)).WithArgs("nope").WillReturnRows(recordRows())

	if _, err := repo.SetStatus(context.Background(), "nope", "paid", nil); !errors.Is(err, review.ErrNotFound) {
		t.Errorf("err = %v, want review.ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Zero rows affected is still a success.
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM registration WHERE id = ?",
	)).WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "gone"); err != nil {
		t.Errorf("Delete of missing id returned %v, want nil", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCountsShapesSummary(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT status, COUNT(*) FROM registration GROUP BY status",
	)).WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 4).
		AddRow("paid", 6))

	sum, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts error: %v", err)
	}
	want := Summary{Total: 10, Pending: 4, Paid: 6}
	if *sum != want {
		t.Errorf("summary = %+v, want %+v", *sum, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
