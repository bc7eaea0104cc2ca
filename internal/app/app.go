package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/federated-matches/external/leverade"
	"github.com/riskibarqy/federated-matches/internal/config"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/infrastructure/catalogfile"
	"github.com/riskibarqy/federated-matches/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/federated-matches/internal/interfaces/httpapi"
	"github.com/riskibarqy/federated-matches/internal/platform/logging"
	"github.com/riskibarqy/federated-matches/internal/platform/resilience"
	"github.com/riskibarqy/federated-matches/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	cat, err := catalogfile.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalogRepo := memory.NewCatalogRepository(cat.Categories, cat.Clubs)

	federations := make([]federation.Federation, 0, len(cfg.Federations))
	for _, item := range cfg.Federations {
		federations = append(federations, federation.Federation{
			Key:                item.Key,
			Name:               item.Name,
			ManagerID:          item.ManagerID,
			NativeGenderFilter: item.NativeGenderFilter,
		})
	}

	leveradeClient := leverade.NewClient(leverade.ClientConfig{
		BaseURL:    cfg.LeveradeBaseURL,
		Timeout:    cfg.LeveradeTimeout,
		MaxRetries: cfg.LeveradeMaxRetries,
		Logger:     logger.Named("leverade"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LeveradeCircuitEnabled,
			FailureThreshold: cfg.LeveradeCircuitFailureCount,
			OpenTimeout:      cfg.LeveradeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LeveradeCircuitHalfOpenMaxReq,
		},
	})
	fetchers := make(map[string]federation.Fetcher, len(federations))
	for _, item := range federations {
		fetchers[item.Key] = leveradeClient
	}

	builder := usecase.NewFederationQueryBuilder(federations, cat.Categories, cat.Clubs, usecase.FederationQueryConfig{
		SeasonID: cfg.MatchesSeasonID,
		PageSize: cfg.MatchesPageSize,
	})
	matchSvc := usecase.NewMatchService(builder, fetchers, usecase.MatchServiceConfig{
		QueryTimeout:              cfg.MatchesQueryTimeout,
		TolerateFederationFailure: cfg.MatchesTolerateFederationError,
	}, logger.Named("matches"))
	catalogSvc := usecase.NewCatalogService(catalogRepo)

	handler := httpapi.NewHandler(matchSvc, catalogSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	logger.Info("federations configured",
		"count", len(federations),
		"categories", len(cat.Categories),
		"clubs", len(cat.Clubs),
		"season_id", cfg.MatchesSeasonID,
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
