// internal/review/review_test.go
//
// Unit-tests for the shared workflow vocabulary.
//
// Run: go test ./internal/review -v

package review

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestStatusSetContains(t *testing.T) {
	set := StatusSet{"pending", "paid", "failed", "refunded"}

	for _, s := range set.Values() {
		if !set.Contains(s) {
			t.Errorf("declared status %q not accepted", s)
		}
	}
	for _, s := range []string{"", "PAID", "archived", "paid "} {
		if set.Contains(s) {
			t.Errorf("undeclared status %q accepted", s)
		}
	}
}

func TestCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	sx := sqlx.NewDb(db, "sqlmock")

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT status, COUNT(*) FROM registration GROUP BY status`,
	)).WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 3).
		AddRow("paid", 2))

	counts, total, err := CountByStatus(context.Background(), sx, "registration")
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if counts["pending"] != 3 || counts["paid"] != 2 {
		t.Errorf("unexpected counts: %#v", counts)
	}
	if _, ok := counts["failed"]; ok {
		t.Errorf("zero-row status should be absent from the map")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
