package deps

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"waitlist/internal/config"
	"waitlist/internal/core/domain/confirmation"
	e "waitlist/internal/core/domain/errors"
	dl "waitlist/internal/core/domain/logging"
	"waitlist/internal/core/domain/waitlist"
	joinwaitlist "waitlist/internal/core/services/join_waitlist"
	dbwaitlist "waitlist/internal/db/waitlist"
	"waitlist/internal/implementations/email"
	"waitlist/internal/implementations/logging"
	"waitlist/internal/implementations/metrics"
	"waitlist/internal/implementations/postgrest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Deps struct {
	Config   *config.Config
	Logger   dl.Logger
	Registry *prometheus.Registry

	Now func() time.Time

	WaitlistRepository waitlist.Repository
	Composer           *confirmation.Composer
	ConfirmationSender confirmation.Sender
	OutcomeRecorder    joinwaitlist.OutcomeRecorder
}

// InitDeps builds everything from the environment and panics on failure.
func InitDeps() (*Deps, func()) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewZapLogger(cfg.IsDevelopment)
	deps, closeDeps, err := New(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Could not initialize dependencies.", dl.Err(err))
		logger.Sync()
		panic(err)
	}

	return deps, func() {
		closeDeps()
		logger.Sync()
	}
}

// New wires the backends selected by cfg. Missing secrets are reported as
// warnings; calls that need them fail at request time.
func New(cfg *config.Config, logger dl.Logger) (*Deps, func(), error) {
	if cfg == nil {
		panic(e.NewNilArgumentError("cfg"))
	}
	if logger == nil {
		panic(e.NewNilArgumentError("logger"))
	}

	deps := &Deps{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, name := range cfg.MissingSecrets() {
		logger.Warning(context.Background(), "Missing environment variable.", dl.Entry("name", name))
	}

	closeRepository, err := deps.initWaitlistRepository()
	if err != nil {
		return nil, nil, err
	}
	if err := deps.initConfirmationSender(); err != nil {
		closeRepository()
		return nil, nil, err
	}

	deps.Composer = confirmation.NewComposer(cfg.EmailSender, deps.Now)
	deps.OutcomeRecorder = metrics.NewPrometheus(deps.Registry)

	return deps, func() {
		closeFuncs := []func(){
			closeRepository,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}, nil
}

func (deps *Deps) initWaitlistRepository() (func(), error) {
	ctx := context.Background()

	switch deps.Config.StoreBackend {
	case config.StoreBackendPostgrest:
		baseURL, err := url.Parse(deps.Config.SupabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid SUPABASE_URL: %w", err)
		}
		deps.WaitlistRepository = postgrest.New(
			*baseURL,
			deps.Config.SupabaseAnonKey,
			deps.Config.StoreTimeout,
			deps.Config.SupabaseReturnRow,
		)
		return func() {}, nil

	case config.StoreBackendPostgres:
		poolConfig, err := pgxpool.ParseConfig(deps.Config.PostgresqlURL)
		if err != nil {
			deps.Logger.Error(ctx, "Could not parse POSTGRESQL_URL.", dl.Err(err))
			return nil, err
		}
		// An unreachable DB fails inserts, not startup.
		poolConfig.LazyConnect = true
		db, err := pgxpool.ConnectConfig(ctx, poolConfig)
		if err != nil {
			deps.Logger.Error(ctx, "Could not create DB pool.", dl.Err(err))
			return nil, err
		}
		deps.WaitlistRepository = dbwaitlist.NewPgxRepository(db)
		return func() {
			deps.Logger.Info(ctx, "Shutting down DB connection.")
			db.Close()
			deps.Logger.Info(ctx, "DB connection shut down.")
		}, nil

	case config.StoreBackendSQLite:
		db, err := dbwaitlist.OpenSQLite(ctx, deps.Config.SQLitePath)
		if err != nil {
			deps.Logger.Error(ctx, "Could not open SQLite database.", dl.Err(err))
			return nil, err
		}
		deps.WaitlistRepository = dbwaitlist.NewSQLiteRepository(db)
		return func() {
			deps.Logger.Info(ctx, "Closing SQLite database.")
			db.Close()
			deps.Logger.Info(ctx, "SQLite database closed.")
		}, nil
	}

	return nil, e.NewUnsupportedBackendError("store", deps.Config.StoreBackend)
}

func (deps *Deps) initConfirmationSender() error {
	switch deps.Config.NotifierBackend {
	case config.NotifierBackendResend:
		deps.ConfirmationSender = email.NewResendSender(deps.Config.ResendAPIKey)
		return nil

	case config.NotifierBackendSES:
		awsCfg, err := deps.loadAwsConfig()
		if err != nil {
			return err
		}
		deps.ConfirmationSender = email.NewSESSender(awsCfg)
		return nil

	case config.NotifierBackendNoop:
		deps.ConfirmationSender = email.NewNoopSender(deps.Logger, deps.Now)
		return nil
	}

	return e.NewUnsupportedBackendError("notifier", deps.Config.NotifierBackend)
}

func (deps *Deps) loadAwsConfig() (aws.Config, error) {
	return awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
}
