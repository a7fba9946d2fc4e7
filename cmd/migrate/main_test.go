package main

import (
	"context"
	"os"
	"testing"

	"waitlist/internal/core/domain/logging"

	"github.com/stretchr/testify/require"
)

func TestRunRejectsUnknownDirection(t *testing.T) {
	log := logging.NewFakeLogger()

	code := run(context.Background(), log, []string{"sideways"})

	assert := require.New(t)
	assert.Equal(2, code)
	records := log.Records(logging.ERROR)
	assert.Len(records, 1)
	direction, _ := records[0].Value("direction")
	assert.Equal("sideways", direction)
	assert.Empty(log.Records(logging.INFO))
}

func TestRunRequiresPostgresqlURL(t *testing.T) {
	t.Setenv("POSTGRESQL_URL", "")
	os.Unsetenv("POSTGRESQL_URL")
	log := logging.NewFakeLogger()

	code := run(context.Background(), log, nil)

	assert := require.New(t)
	assert.Equal(1, code)
	records := log.Records(logging.ERROR)
	assert.Len(records, 1)
	assert.Equal("Could not parse environment.", records[0].Msg)
}

func TestRunLogsMigrationFailure(t *testing.T) {
	t.Setenv("POSTGRESQL_URL", "postgres://waitlist@127.0.0.1:1/waitlist?sslmode=disable&connect_timeout=1")
	t.Setenv("MIGRATIONS_PATH", "../../migrations")
	log := logging.NewFakeLogger()

	code := run(context.Background(), log, []string{"up"})

	assert := require.New(t)
	assert.Equal(1, code)
	assert.Len(log.Records(logging.INFO), 1)
	records := log.Records(logging.ERROR)
	assert.Len(records, 1)
	assert.Equal("Could not apply DB migrations.", records[0].Msg)
}
