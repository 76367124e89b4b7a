// Package database centralises sqlx connection helpers.  The default
// driver is go-sql-driver/mysql, which also works with MariaDB when
// configured for the MySQL wire protocol.
//
// Public entry points:
//
//	Open(dsn)                              – helper with conservative pool sizes.
//	OpenWithOptions(dsn, maxOpen, maxIdle) – fine-grained control.
//	Migrate(db, stmts)                     – apply component DDL at boot.
//
// The open helpers Ping the database before returning so callers can
// fail fast during bootstrap.  Callers should Close() the returned
// *sqlx.DB when no longer needed.
package database

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Open returns a *sqlx.DB with sane defaults: 15 max open, 5 idle, and
// a 30-minute connection lifetime.
func Open(dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle per pool.
func OpenWithOptions(dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate executes DDL statements in order.  Components contribute
// idempotent CREATE TABLE IF NOT EXISTS statements via their
// Migrations() method; boot collects and applies them here.  The first
// failing statement aborts startup.
func Migrate(db *sqlx.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			zap.S().Errorw("migration failed", "stmt", firstLine(stmt), "err", err)
			return err
		}
	}
	return nil
}

// firstLine trims a DDL statement to its first line for log readability.
func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
