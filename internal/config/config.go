package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgrest = "postgrest"
	StoreBackendPostgres  = "postgres"
	StoreBackendSQLite    = "sqlite"

	NotifierBackendResend = "resend"
	NotifierBackendSES    = "ses"
	NotifierBackendNoop   = "noop"
)

type Config struct {
	IsDevelopment  bool     `env:"DEVELOPMENT" envDefault:"false"`
	Port           int      `env:"PORT" envDefault:"3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`
	ResendAPIKey    string `env:"RESEND_API_KEY"`
	RequireSecrets  bool   `env:"REQUIRE_SECRETS" envDefault:"false"`

	// SupabaseReturnRow reads the inserted row back; the key then needs SELECT.
	SupabaseReturnRow bool `env:"SUPABASE_RETURN_ROW" envDefault:"false"`

	StoreBackend  string        `env:"STORE_BACKEND" envDefault:"postgrest"`
	PostgresqlURL string        `env:"POSTGRESQL_URL"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"waitlist.db"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	NotifierBackend string        `env:"NOTIFIER_BACKEND" envDefault:"resend"`
	EmailSender     string        `env:"EMAIL_SENDER" envDefault:"Foretyx <onboarding@resend.dev>"`
	NotifierTimeout time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"5s"`
	AwsRegion       string        `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey    string        `env:"AWS_ACCESS_KEY"`
	AwsSecretKey    string        `env:"AWS_SECRET_KEY"`

	HideStoreErrors bool `env:"HIDE_STORE_ERRORS" envDefault:"false"`
}

// Load reads the process environment, after merging an optional .env file
// from the working directory. Missing secrets only fail the load when
// REQUIRE_SECRETS is set; otherwise the caller is expected to warn about
// MissingSecrets and carry on.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	missing := cfg.MissingSecrets()
	if cfg.RequireSecrets && len(missing) > 0 {
		return nil, fmt.Errorf("%s must be set", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// MissingSecrets lists the unset variables the selected backends need.
func (c *Config) MissingSecrets() []string {
	required := map[string]string{}
	switch c.StoreBackend {
	case StoreBackendPostgrest:
		required["SUPABASE_URL"] = c.SupabaseURL
		required["SUPABASE_ANON_KEY"] = c.SupabaseAnonKey
	case StoreBackendPostgres:
		required["POSTGRESQL_URL"] = c.PostgresqlURL
	}
	switch c.NotifierBackend {
	case NotifierBackendResend:
		required["RESEND_API_KEY"] = c.ResendAPIKey
	case NotifierBackendSES:
		required["AWS_ACCESS_KEY"] = c.AwsAccessKey
		required["AWS_SECRET_KEY"] = c.AwsSecretKey
	}

	missing := make([]string, 0, len(required))
	for _, name := range secretOrder {
		value, ok := required[name]
		if ok && strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

var secretOrder = []string{
	"SUPABASE_URL",
	"SUPABASE_ANON_KEY",
	"POSTGRESQL_URL",
	"RESEND_API_KEY",
	"AWS_ACCESS_KEY",
	"AWS_SECRET_KEY",
}
