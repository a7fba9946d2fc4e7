package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/waitlist"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteTimeLayout = "2006-01-02T15:04:05.000Z"

var sqliteSchema = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL DEFAULT (strftime('%%Y-%%m-%%dT%%H:%%M:%%fZ', 'now'))
)`, waitlist.TableName)

var sqliteInsertQuery = fmt.Sprintf(
	"INSERT INTO %s (email) VALUES (?) RETURNING id, email, created_at",
	waitlist.TableName,
)

// OpenSQLite opens (creating if needed) the database at path and makes sure
// the waitlist table exists. ":memory:" is accepted for tests.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create waitlist table: %w", err)
	}
	return db, nil
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, email waitlist.Email) (rec waitlist.Record, err error) {
	var (
		id        int64
		stored    string
		createdAt string
	)
	err = r.db.QueryRowContext(ctx, sqliteInsertQuery, string(email)).Scan(&id, &stored, &createdAt)

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && isUniqueViolation(sqliteErr) {
		return rec, &waitlist.EmailAlreadyExistsError{Email: email, Cause: sqliteErr.Error()}
	}
	if err != nil {
		return rec, err
	}

	at, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return rec, fmt.Errorf("unexpected created_at value '%s': %w", createdAt, err)
	}
	return waitlist.Record{ID: waitlist.ID(id), Email: waitlist.Email(stored), CreatedAt: at}, nil
}

func isUniqueViolation(err *sqlite.Error) bool {
	switch err.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended result codes are off for this connection.
		return strings.Contains(err.Error(), "UNIQUE")
	}
	return false
}
