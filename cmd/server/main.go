package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightinfo-service/internal/infrastructure/config"
	"flightinfo-service/internal/infrastructure/persistence"
	"flightinfo-service/internal/interface/repository"
	"flightinfo-service/internal/interface/webhook"
	"flightinfo-service/internal/usecase"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/metrics"

	domainRepo "flightinfo-service/internal/domain/repository"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flight Information Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.AutoMigrate(gormDB); err != nil {
		log.Fatal("Failed to migrate schema", "error", err)
	}

	// Set up MongoDB for the inbound payload archive; the service runs
	// without it when no archive store is reachable
	var archiveRepo domainRepo.PayloadArchiveRepository
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Warn("Payload archive unavailable, continuing without it", "error", err)
	} else {
		archiveRepo = repository.NewMongoPayloadArchiveRepository(mongoDB)
	}

	// Set up repositories
	flightRepo := repository.NewGormFlightRepository(gormDB)
	airportRepo := repository.NewGormAirportRepository(gormDB)
	gateRepo := repository.NewGormGateRepository(gormDB)
	claimRepo := repository.NewGormBaggageClaimRepository(gormDB)
	eventRepo := repository.NewGormFlightEventRepository(gormDB)

	hubRepo := repository.NewHubHTTPRepository(cfg, repository.HubAuth{
		ClientID:     cfg.HubClientID,
		ClientSecret: cfg.HubClientSecret,
		TokenURL:     cfg.HubTokenURL,
		BearerToken:  cfg.HubBearerToken,
	}, log)

	// Set up the handler family and HTTP layer
	m := metrics.NewMetrics("fis")
	factory := usecase.NewWebhookHandlerFactory(
		flightRepo, airportRepo, gateRepo, claimRepo, eventRepo, hubRepo,
		usecase.FactoryConfig{
			DefaultStatusCode: cfg.DefaultStatusCode,
			StatusCodes:       cfg.StatusCodes,
		},
		m, log)

	handler := webhook.NewHandler(factory, archiveRepo, m, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      webhook.NewRouter(handler, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Flight Information Service stopped")
}
