// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/riskibarqy/pl-predictor/external/footballdata"
	"github.com/riskibarqy/pl-predictor/internal/config"
	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/person"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	"github.com/riskibarqy/pl-predictor/internal/domain/scoring"
	"github.com/riskibarqy/pl-predictor/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pl-predictor/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/pl-predictor/internal/infrastructure/session"
	"github.com/riskibarqy/pl-predictor/internal/interfaces/httpapi"
	"github.com/riskibarqy/pl-predictor/internal/platform/cache"
	"github.com/riskibarqy/pl-predictor/internal/platform/dbmigrate"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
	"github.com/riskibarqy/pl-predictor/internal/platform/resilience"
	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	people      person.Repository
	fixtures    fixture.Repository
	results     result.Repository
	predictions prediction.Repository
}

// New builds the application. The match provider is injected so tests can
// replace football-data.org; nil means the real client from cfg.
func New(ctx context.Context, cfg config.Config, provider usecase.MatchProvider, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(session.Config{
		Username: cfg.AppUsername,
		Password: cfg.AppPassword,
		Secret:   cfg.AppSecret,
		TTL:      cfg.SessionTTL,
	})
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("build session manager: %w", err)
	}

	if provider == nil {
		provider = newFootballDataClient(cfg, logger)
	}

	var leaderboardCache *cache.Store[[]scoring.Standing]
	if cfg.CacheEnabled {
		leaderboardCache = cache.NewStore[[]scoring.Standing](cfg.CacheTTL)
	}

	leaderboardSvc := usecase.NewLeaderboardService(repos.predictions, repos.results, leaderboardCache, logger.Named("leaderboard"))
	personSvc := usecase.NewPersonService(repos.people, logger.Named("people"))
	fixtureSvc := usecase.NewFixtureService(repos.fixtures, repos.results)
	syncSvc := usecase.NewSyncService(provider, repos.fixtures, repos.results, leaderboardSvc, logger.Named("sync"))
	syncSvc.SetResyncWorkers(cfg.ResyncMaxWorkers)
	predictionSvc := usecase.NewPredictionService(repos.fixtures, repos.predictions, repos.people, leaderboardSvc, logger.Named("predictions"))

	handler := httpapi.NewHandler(
		personSvc,
		fixtureSvc,
		syncSvc,
		predictionSvc,
		leaderboardSvc,
		sessions,
		cfg.SessionSecureCookie,
		logger,
	)
	router := httpapi.NewRouter(handler, sessions, logger.Named("http"), cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		db:     db,
		logger: logger,
	}, nil
}

// Close releases the database pool. The server must be shut down first.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newFootballDataClient(cfg config.Config, logger *logging.Logger) *footballdata.Client {
	if cfg.FootballDataAPIKey == "" {
		logger.Warn("FOOTBALL_DATA_API_KEY is empty, sync endpoints will be rejected")
	}
	return footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:     cfg.FootballDataBaseURL,
		Competition: cfg.FootballDataCompetition,
		Token:       cfg.FootballDataAPIKey,
		Timeout:     cfg.FootballDataTimeout,
		MaxRetries:  cfg.FootballDataMaxRetries,
		Logger:      logger.Named("footballdata"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, repositories, error) {
	if cfg.DBDriver == config.DBDriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return nil, repositories{
			people:      memory.NewPersonRepository(store),
			fixtures:    memory.NewFixtureRepository(store),
			results:     memory.NewResultRepository(store),
			predictions: memory.NewPredictionRepository(store),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, repositories{}, err
	}
	if cfg.DBAutoMigrate {
		if err := dbmigrate.Up(db.DB, cfg.DBDriver, cfg.DBURL); err != nil {
			closeDB(db)
			return nil, repositories{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("database migrations applied", "driver", cfg.DBDriver)
	}

	return db, repositories{
		people:      sqlstore.NewPersonRepository(db),
		fixtures:    sqlstore.NewFixtureRepository(db),
		results:     sqlstore.NewResultRepository(db),
		predictions: sqlstore.NewPredictionRepository(db),
	}, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DBURL
	system := "postgresql"
	if cfg.DBDriver == config.DBDriverSQLite {
		dsn = sqliteDSN(dsn)
		system = "sqlite"
	}
	if dsn == "" {
		return nil, errors.New("DB_URL cannot be empty")
	}

	db, err := otelsqlx.Open(cfg.DBDriver, dsn,
		otelsql.WithDBSystem(system),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
