package webhook

import (
	"net/http"

	"flightinfo-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP router: webhook endpoints for the integration
// hub, the admin API, and the health/metrics endpoints
func NewRouter(h *Handler, log logger.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(CorrelationID)
	r.Use(RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/flights/sync", h.SyncFlight)
			r.Post("/flights/status", h.UpdateStatus)
			r.Post("/airports/sync", h.SyncAirport)
		})

		r.Route("/flights/{flightID}", func(r chi.Router) {
			r.Get("/", h.GetFlight)
			r.Get("/events", h.GetFlightEvents)
			r.Put("/gate", h.AssignGate)
			r.Put("/baggage-claim", h.AssignBaggageClaim)
			r.Put("/times", h.UpdateTime)
			r.Post("/departure", h.RecordDeparture)
			r.Post("/arrival", h.RecordArrival)
		})
	})

	return r
}
