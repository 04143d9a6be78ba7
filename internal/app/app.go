package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchday/internal/config"
	"github.com/pitchside/matchday/internal/domain/badge"
	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/formation"
	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/infrastructure/jobqueue"
	"github.com/pitchside/matchday/internal/infrastructure/repository/memory"
	"github.com/pitchside/matchday/internal/infrastructure/repository/postgres"
	"github.com/pitchside/matchday/internal/interfaces/httpapi"
	idgen "github.com/pitchside/matchday/internal/platform/id"
	"github.com/pitchside/matchday/internal/platform/logging"
	"github.com/pitchside/matchday/internal/platform/resilience"
	"github.com/pitchside/matchday/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	events       event.Repository
	votes        vote.Repository
	participants participant.Repository
	formations   formation.Repository
	awarded      badge.AwardedRepository
}

// NewHTTPServer wires the whole service. With DB_URL empty it runs on seeded
// in-memory repositories; otherwise it opens an instrumented Postgres pool.
// The returned cleanup releases whatever the wiring opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	policy, err := usecase.ParseAttendancePolicy(cfg.AttendancePolicy)
	if err != nil {
		cleanup(context.Background())
		return nil, nil, err
	}

	attendanceSvc := usecase.NewAttendanceService(repos.events, repos.votes, repos.participants, policy)
	voteSvc := usecase.NewVoteService(repos.events, repos.votes, repos.participants, attendanceSvc, idgen.NewUUIDGenerator())
	formationSvc := usecase.NewFormationService(repos.events, repos.votes, repos.participants, repos.formations)
	formationSvc.SetSquadCount(cfg.SquadCount)
	outcomeSvc := usecase.NewOutcomeService(repos.events, repos.votes, repos.formations)
	badgeSvc := usecase.NewBadgeService(repos.events, repos.participants, repos.awarded, outcomeSvc, badge.DefaultCatalog(), badge.DefaultRules())
	badgeSvc.SetDefaultReconcileWorkers(cfg.ReconcileMaxWorkers)
	eventSvc := usecase.NewEventService(repos.events)

	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
		voteSvc.SetReconcileScheduler(publisher, cfg.JobReconcileDelay)
	}

	handler := httpapi.NewHandler(eventSvc, voteSvc, attendanceSvc, formationSvc, outcomeSvc, badgeSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup(context.Background())
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if cfg.DBURL == "" {
		logger.Info("storage mode", "mode", "memory")
		votes := memory.NewVoteRepository()
		return repositories{
			events:       memory.NewEventRepository(memory.SeedEvents(), votes),
			votes:        votes,
			participants: memory.NewParticipantRepository(memory.SeedParticipants()),
			formations:   memory.NewFormationRepository(),
			awarded:      memory.NewAwardedBadgeRepository(nil),
		}, noop, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.BootstrapSeedEnabled {
		if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	logger.Info("storage mode", "mode", "postgres", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
			events:       postgres.NewEventRepository(db),
			votes:        postgres.NewVoteRepository(db),
			participants: postgres.NewParticipantRepository(db),
			formations:   postgres.NewFormationRepository(db),
			awarded:      postgres.NewAwardedBadgeRepository(db),
		}, func(context.Context) error {
			return db.Close()
		}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
