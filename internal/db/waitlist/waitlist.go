package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "waitlist/internal/core/domain/errors"
	"waitlist/internal/core/domain/waitlist"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "waitlist_email_key"

var insertQuery = fmt.Sprintf(
	"INSERT INTO %s (email) VALUES ($1) RETURNING id, email, created_at",
	waitlist.TableName,
)

type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: db}
}

func (r *PgxRepository) Insert(ctx context.Context, email waitlist.Email) (rec waitlist.Record, err error) {
	var (
		id        int64
		stored    string
		createdAt time.Time
	)
	err = r.db.QueryRow(ctx, insertQuery, string(email)).Scan(&id, &stored, &createdAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return rec, &waitlist.EmailAlreadyExistsError{Email: email, Cause: pgErr.Message}
		}
	}
	if err != nil {
		return rec, err
	}

	return waitlist.Record{
		ID:        waitlist.ID(id),
		Email:     waitlist.Email(stored),
		CreatedAt: createdAt.UTC(),
	}, nil
}
