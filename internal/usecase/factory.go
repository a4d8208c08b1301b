package usecase

import (
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/metrics"
)

// HandlerFactory produces the four capability handlers as one coherent
// family, bound to the same configuration. Callers depend on this interface
// only, never on concrete handler types; substituting the factory is the sole
// mechanism for swapping in simulated handlers during testing or alternative
// integration backends later.
type HandlerFactory interface {
	FlightReader() FlightReader
	StatusUpdater() StatusUpdater
	AirportCreator() AirportCreator
	FlightSyncer() FlightSyncer
}

// FactoryConfig carries the externally configured behavior shared by the
// handler family
type FactoryConfig struct {
	// DefaultStatusCode seeds new flights whose creation payload names no status
	DefaultStatusCode string
	// StatusCodes is the status vocabulary; empty accepts any code
	StatusCodes []string
}

// WebhookHandlerFactory is the concrete handler family for the integration
// hub webhook backend. Construction wires dependencies only: no database or
// network access happens here.
type WebhookHandlerFactory struct {
	flightRepo  repository.FlightRepository
	airportRepo repository.AirportRepository
	gateRepo    repository.GateRepository
	claimRepo   repository.BaggageClaimRepository
	eventRepo   repository.FlightEventRepository
	hubRepo     repository.HubRepository
	config      FactoryConfig
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewWebhookHandlerFactory creates the webhook-backed handler factory
func NewWebhookHandlerFactory(
	flightRepo repository.FlightRepository,
	airportRepo repository.AirportRepository,
	gateRepo repository.GateRepository,
	claimRepo repository.BaggageClaimRepository,
	eventRepo repository.FlightEventRepository,
	hubRepo repository.HubRepository,
	config FactoryConfig,
	m *metrics.Metrics,
	logger logger.Logger,
) *WebhookHandlerFactory {
	return &WebhookHandlerFactory{
		flightRepo:  flightRepo,
		airportRepo: airportRepo,
		gateRepo:    gateRepo,
		claimRepo:   claimRepo,
		eventRepo:   eventRepo,
		hubRepo:     hubRepo,
		config:      config,
		metrics:     m,
		logger:      logger,
	}
}

// FlightReader returns the read-only flight lookup handler
func (f *WebhookHandlerFactory) FlightReader() FlightReader {
	return NewFlightReader(f.flightRepo, f.eventRepo, f.logger)
}

// StatusUpdater returns the change detection and notification handler
func (f *WebhookHandlerFactory) StatusUpdater() StatusUpdater {
	return NewStatusUpdater(f.flightRepo, f.gateRepo, f.claimRepo, f.hubRepo,
		f.config.StatusCodes, f.metrics, f.logger)
}

// AirportCreator returns the airport sync handler
func (f *WebhookHandlerFactory) AirportCreator() AirportCreator {
	return NewAirportCreator(f.airportRepo, f.logger)
}

// FlightSyncer returns the flight sync handler
func (f *WebhookHandlerFactory) FlightSyncer() FlightSyncer {
	return NewFlightSyncer(f.flightRepo, f.config.DefaultStatusCode, f.logger)
}
