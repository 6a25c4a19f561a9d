package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Baguimon/STYX-sub000/external/styxapi"
	"github.com/Baguimon/STYX-sub000/internal/config"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
	"github.com/Baguimon/STYX-sub000/internal/infrastructure/account/identity"
	"github.com/Baguimon/STYX-sub000/internal/infrastructure/repository/memory"
	"github.com/Baguimon/STYX-sub000/internal/infrastructure/repository/postgres"
	"github.com/Baguimon/STYX-sub000/internal/interfaces/httpapi"
	idgen "github.com/Baguimon/STYX-sub000/internal/platform/id"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
	"github.com/Baguimon/STYX-sub000/internal/platform/resilience"
	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

type repositories struct {
	clubs   club.Repository
	matches match.Repository
	close   func(context.Context) error
}

// NewHTTPServer wires the roster services onto the configured storage
// backend. The returned cleanup releases storage resources.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	assignmentCfg := usecase.AssignmentConfig{
		MaxAttempts:  cfg.AssignmentMaxAttempts,
		ClubCacheTTL: cfg.ClubCacheTTL,
	}
	ids := idgen.NewUUIDGenerator()

	clubSvc := usecase.NewClubService(repos.clubs, ids, logger, assignmentCfg)
	matchSvc := usecase.NewMatchService(repos.matches, repos.clubs, ids, logger, assignmentCfg)
	auditSvc := usecase.NewAuditService(repos.clubs, repos.matches, cfg.AuditWorkers, logger)

	identityClient := identity.NewClient(
		&http.Client{Timeout: cfg.IdentityTimeout},
		identity.Config{
			BaseURL:        cfg.IdentityBaseURL,
			IntrospectPath: cfg.IdentityIntrospectURL,
			CacheTTL:       cfg.IdentityCacheTTL,
			Circuit:        resilience.DefaultCircuitBreakerConfig(),
		},
		logger,
	)

	handler := httpapi.NewHandler(clubSvc, matchSvc, auditSvc, logger)
	router := httpapi.NewRouter(handler, identityClient, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.StorageBackend {
	case config.StorageMemory, "":
		logger.Warn("using in-memory roster storage with seed data", "backend", config.StorageMemory)
		return repositories{
			clubs:   memory.NewClubRepository(memory.SeedClubs(), memory.SeedClubRosters()),
			matches: memory.NewMatchRepository(memory.SeedMatches(), nil),
			close:   noop,
		}, nil

	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		logger.Info("using postgres roster storage", "database", dbNameFromURL(cfg.DBURL))
		return repositories{
			clubs:   postgres.NewClubRepository(db),
			matches: postgres.NewMatchRepository(db),
			close:   func(context.Context) error { return db.Close() },
		}, nil

	case config.StorageRemote:
		client, err := styxapi.NewClient(styxapi.Config{
			BaseURL:    cfg.RemoteAPIBaseURL,
			Token:      cfg.RemoteAPIToken,
			Timeout:    cfg.RemoteAPITimeout,
			MaxRetries: cfg.RemoteAPIMaxRetries,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RemoteAPICircuitEnabled,
				FailureThreshold: cfg.RemoteAPICircuitFailureCount,
				OpenTimeout:      cfg.RemoteAPICircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.RemoteAPICircuitHalfOpenMax,
			},
		}, logger)
		if err != nil {
			return repositories{}, fmt.Errorf("build roster api client: %w", err)
		}
		logger.Info("using remote roster storage", "base_url", cfg.RemoteAPIBaseURL)
		return repositories{
			clubs:   styxapi.NewClubRepository(client),
			matches: styxapi.NewMatchRepository(client),
			close:   noop,
		}, nil

	default:
		return repositories{}, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}
