package main

import (
	"context"
	"os"

	"waitlist/internal/db"
	"waitlist/internal/implementations/logging"

	dl "waitlist/internal/core/domain/logging"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type migrateConfig struct {
	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

func main() {
	_ = godotenv.Load()

	logger := logging.NewZapLogger(os.Getenv("DEVELOPMENT") == "true")
	code := run(context.Background(), logger, os.Args[1:])
	logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, log dl.Logger, args []string) int {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}
	if direction != "up" && direction != "down" {
		log.Error(ctx, "Unknown migration direction, expected up or down.", dl.Entry("direction", direction))
		return 2
	}

	cfg := migrateConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Error(ctx, "Could not parse environment.", dl.Err(err))
		return 1
	}

	log.Info(
		ctx,
		"Applying DB migrations.",
		dl.Entry("direction", direction),
		dl.Entry("path", cfg.MigrationsPath),
	)
	if err := db.Migrate(cfg.PostgresqlURL, cfg.MigrationsPath, direction == "down"); err != nil {
		log.Error(ctx, "Could not apply DB migrations.", dl.Err(err))
		return 1
	}
	log.Info(ctx, "DB migrations have been applied.", dl.Entry("direction", direction))
	return 0
}
