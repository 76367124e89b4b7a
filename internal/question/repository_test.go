// internal/question/repository_test.go
//
// Question-specific repository behavior: the relative upvote increment
// and the `answered` stamping branch.  The shared operations are
// covered in internal/registration.
//
// Run: go test ./internal/question -v

package question

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

const recordColumns = "id, name, question, category, upvotes, is_answered, status, " +
	"answered_at, answered_by, reviewed_at, reviewed_by, created_at, updated_at"

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "question", "category", "upvotes", "is_answered", "status",
		"answered_at", "answered_by", "reviewed_at", "reviewed_by",
		"created_at", "updated_at",
	})
}

func TestUpvoteIncrementsAndMarksReviewed(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE question SET upvotes = upvotes + 1, status = 'reviewed', updated_at = ? WHERE id = ?",
	)).WithArgs(sqlmock.AnyArg(), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + recordColumns + " FROM question WHERE id = ? LIMIT 1",
	)).WithArgs("id-1").WillReturnRows(recordRows().
		AddRow("id-1", "Ada", "When is lunch?", nil, 3, false, "reviewed",
			nil, nil, nil, nil, now, now))

	rec, err := repo.Upvote(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("Upvote error: %v", err)
	}
	if rec.Upvotes != 3 || rec.Status != "reviewed" {
		t.Errorf("unexpected record after upvote: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpvoteUnknownIDIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE question SET upvotes = upvotes + 1, status = 'reviewed', updated_at = ? WHERE id = ?",
	)).WithArgs(sqlmock.AnyArg(), "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Upvote(context.Background(), "nope"); !errors.Is(err, review.ErrNotFound) {
		t.Errorf("err = %v, want review.ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetStatusAnsweredStampsAnswerFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	reviewer := "moderator@summit.local"

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE question SET status = ?, updated_at = ?, is_answered = TRUE, "+
			"answered_at = ?, answered_by = ?, "+
			"reviewed_at = IFNULL(reviewed_at, ?), reviewed_by = IFNULL(?, reviewed_by) WHERE id = ?",
	)).WithArgs("answered", sqlmock.AnyArg(), sqlmock.AnyArg(), &reviewer,
		sqlmock.AnyArg(), &reviewer, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + recordColumns + " FROM question WHERE id = ? LIMIT 1",
	)).WithArgs("id-1").WillReturnRows(recordRows().
		AddRow("id-1", "Ada", "When is lunch?", nil, 0, true, "answered",
			now, reviewer, now, reviewer, now, now))

	rec, err := repo.SetStatus(context.Background(), "id-1", "answered", &reviewer)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if !rec.IsAnswered || rec.AnsweredAt == nil || rec.AnsweredBy == nil {
		t.Errorf("answer stamp missing: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInsertStartsUnansweredWithZeroUpvotes(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO question (id, name, question, category, upvotes, is_answered, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)).WithArgs(
		sqlmock.AnyArg(), "Ada", "When is lunch?", nil, 0, false,
		review.StatusPending, sqlmock.AnyArg(), sqlmock.AnyArg(),
	).WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &Record{Name: "Ada", Question: "When is lunch?", Upvotes: 99, IsAnswered: true}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if rec.Upvotes != 0 || rec.IsAnswered {
		t.Errorf("insert did not reset counters: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
