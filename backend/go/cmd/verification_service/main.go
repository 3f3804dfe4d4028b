package main

import (
	"Sceptre/backend/go/internal/audit"
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/knowledge"
	"Sceptre/backend/go/internal/llm"
	"Sceptre/backend/go/internal/search"
	"Sceptre/backend/go/internal/verification_service/api"
	"Sceptre/backend/go/internal/verification_service/service"
	httpclient "Sceptre/backend/go/pkg/http"
	"Sceptre/backend/go/pkg/logger"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("verification_service", "", "")

	appLogger.Info("Logger initialized")

	// Initialize the reasoning oracle
	oracle, err := llm.NewClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	appLogger.Info("Reasoning oracle initialized: " + cfg.LLM.Provider)

	// Build the evidence search pipeline
	queryClient, err := httpclient.NewClient(cfg.Search.CircuitBreaker, time.Duration(cfg.Search.QueryTimeoutSeconds)*time.Second)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	fetchClient, err := httpclient.NewClient(cfg.Search.CircuitBreaker, time.Duration(cfg.Search.FetchTimeoutSeconds)*time.Second)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	provider, err := buildProvider(cfg, queryClient)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	cache, err := search.NewEvidenceCache(cfg.Search, provider)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	filter, err := search.NewTrustFilter(cfg.Search.TrustedPatterns)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	fetcher := search.NewContentFetcher(fetchClient)
	searcher := search.NewEvidenceSearcher(appLogger, cfg.Search, cache, filter, fetcher)
	appLogger.Info("Evidence search pipeline initialized")

	// Session knowledge bases
	km := knowledge.NewManager(cfg.Knowledge)

	// Optional audit trail
	var auditor service.AuditPublisher
	if cfg.Audit.Enabled {
		publisher := audit.NewPublisher(cfg.Audit.Kafka, appLogger)
		defer publisher.Close()
		auditor = publisher
		appLogger.Info("Audit publisher initialized")
	}

	// Wire the verification pipeline (extractor -> verifier -> aggregator)
	extractor := service.NewClaimExtractor(appLogger, oracle, cfg.Verification.MaxClaims)
	verifier := service.NewClaimVerifier(appLogger, oracle, cfg.Verification.EvidencePerClaim)
	aggregator := service.NewScoreAggregator(cfg.Verification.MaxSources)
	verificationService := service.NewService(
		appLogger, cfg.Verification, cfg.Search, cfg.LLM,
		extractor, verifier, aggregator, searcher, km, auditor,
	)
	processor := service.NewContentProcessor(appLogger, oracle, fetchClient)
	responder := service.NewResponder(appLogger, oracle, km)
	appLogger.Info("Dependencies injected")

	// Setup and start Gin router
	apiHandler := api.NewHandler(verificationService, processor, responder, km)
	router, err := api.SetupRouter(apiHandler, cfg)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	appLogger.Info("Router setup completed")

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	serverAddress := fmt.Sprintf(":%d", port)
	appLogger.Info("Starting server on " + serverAddress)

	if err := router.Run(serverAddress); err != nil {
		appLogger.Fatal(err.Error())
	}
}

// buildProvider selects the configured search backend.
func buildProvider(cfg *config.AppConfig, client *httpclient.Client) (search.Provider, error) {
	switch cfg.Search.Provider {
	case "google", "":
		return search.NewGoogleProvider(cfg.Search.Google, client)
	default:
		return nil, fmt.Errorf("unsupported search provider: %q", cfg.Search.Provider)
	}
}
