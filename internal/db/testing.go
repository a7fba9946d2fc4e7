package db

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

const defaultTestMigrationsPath = "../../../migrations"

// CreateTestPool connects to TEST_POSTGRESQL_URL with migrations applied.
// The second result is false when the variable is unset and the caller
// should skip.
func CreateTestPool() (*pgxpool.Pool, bool) {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		return nil, false
	}
	migrationsPath := os.Getenv("TEST_MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = defaultTestMigrationsPath
	}
	if err := Migrate(connString, migrationsPath, false); err != nil {
		panic(fmt.Sprintf("Could not apply DB migrations %v.", err))
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic("Could not connect to the database.")
	}
	return pool, true
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE waitlist")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
