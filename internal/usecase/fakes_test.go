package usecase

import (
	"context"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/pkg/metrics"
)

// One metrics instance per test binary; promauto registers globally.
var testMetrics = metrics.NewMetrics("fis_usecase_test")

// fakeFlightRepo is an in-memory FlightRepository. It stores copies so that
// usecase-side mutations only become visible through an explicit write, like
// a real database.
type fakeFlightRepo struct {
	flights   map[uint]*entity.Flight
	events    []entity.FlightEvent
	nextID    uint
	failWrite error
}

func newFakeFlightRepo() *fakeFlightRepo {
	return &fakeFlightRepo{flights: map[uint]*entity.Flight{}}
}

func cloneFlight(f *entity.Flight) *entity.Flight {
	c := *f
	if f.Gate != nil {
		gate := *f.Gate
		c.Gate = &gate
	}
	if f.BaggageClaim != nil {
		claim := *f.BaggageClaim
		c.BaggageClaim = &claim
	}
	return &c
}

func (r *fakeFlightRepo) FindByID(_ context.Context, id uint) (*entity.Flight, error) {
	flight, ok := r.flights[id]
	if !ok {
		return nil, nil
	}
	return cloneFlight(flight), nil
}

func (r *fakeFlightRepo) FindByNumber(_ context.Context, number string) (*entity.Flight, error) {
	var latest *entity.Flight
	for _, flight := range r.flights {
		if flight.Number == number && (latest == nil || flight.ID > latest.ID) {
			latest = flight
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneFlight(latest), nil
}

func (r *fakeFlightRepo) Upsert(_ context.Context, flight *entity.Flight) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	if flight.ID == 0 {
		r.nextID++
		flight.ID = r.nextID
	} else if flight.ID > r.nextID {
		r.nextID = flight.ID
	}
	r.flights[flight.ID] = cloneFlight(flight)
	return nil
}

func (r *fakeFlightRepo) UpdateWithEvent(ctx context.Context, flight *entity.Flight, event *entity.FlightEvent) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	if err := r.Upsert(ctx, flight); err != nil {
		return err
	}
	event.ID = uint(len(r.events) + 1)
	event.FlightID = flight.ID
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeFlightRepo) eventsFor(flightID uint) []entity.FlightEvent {
	var out []entity.FlightEvent
	for _, event := range r.events {
		if event.FlightID == flightID {
			out = append(out, event)
		}
	}
	return out
}

// ListByFlightID lets the fake double as a FlightEventRepository
func (r *fakeFlightRepo) ListByFlightID(_ context.Context, flightID uint) ([]entity.FlightEvent, error) {
	return r.eventsFor(flightID), nil
}

func (r *fakeFlightRepo) Append(_ context.Context, event *entity.FlightEvent) error {
	event.ID = uint(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

type fakeGateRepo struct {
	gates map[uint]*entity.Gate
}

func (r *fakeGateRepo) FindByID(_ context.Context, id uint) (*entity.Gate, error) {
	gate, ok := r.gates[id]
	if !ok {
		return nil, nil
	}
	copied := *gate
	return &copied, nil
}

type fakeClaimRepo struct {
	claims map[uint]*entity.BaggageClaim
}

func (r *fakeClaimRepo) FindByID(_ context.Context, id uint) (*entity.BaggageClaim, error) {
	claim, ok := r.claims[id]
	if !ok {
		return nil, nil
	}
	copied := *claim
	return &copied, nil
}

type fakeAirportRepo struct {
	airports map[string]*entity.Airport
	nextID   uint
}

func newFakeAirportRepo() *fakeAirportRepo {
	return &fakeAirportRepo{airports: map[string]*entity.Airport{}}
}

func (r *fakeAirportRepo) FindByIATACode(_ context.Context, code string) (*entity.Airport, error) {
	airport, ok := r.airports[code]
	if !ok {
		return nil, nil
	}
	copied := *airport
	return &copied, nil
}

func (r *fakeAirportRepo) Upsert(_ context.Context, airport *entity.Airport) error {
	if airport.ID == 0 {
		r.nextID++
		airport.ID = r.nextID
	}
	copied := *airport
	r.airports[airport.IATACode] = &copied
	return nil
}

// hubCall records one dispatched notification with its category
type hubCall struct {
	category     string
	notification entity.HubNotification
}

// fakeHubRepo records outbound notifications and optionally fails them all
type fakeHubRepo struct {
	calls []hubCall
	err   error
}

func (r *fakeHubRepo) record(category string, n *entity.HubNotification) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, hubCall{category: category, notification: *n})
	return nil
}

func (r *fakeHubRepo) NotifyStatusChange(_ context.Context, n *entity.HubNotification) error {
	return r.record(entity.EventStatusChange, n)
}

func (r *fakeHubRepo) NotifyGateChange(_ context.Context, n *entity.HubNotification) error {
	return r.record(entity.EventGateChange, n)
}

func (r *fakeHubRepo) NotifyBaggageChange(_ context.Context, n *entity.HubNotification) error {
	return r.record(entity.EventBaggageChange, n)
}

func (r *fakeHubRepo) NotifyTimeUpdate(_ context.Context, n *entity.HubNotification) error {
	return r.record(entity.EventTimeUpdate, n)
}

func (r *fakeHubRepo) NotifyDeparture(_ context.Context, n *entity.HubNotification) error {
	return r.record(entity.EventDeparture, n)
}

func (r *fakeHubRepo) NotifyArrival(_ context.Context, n *entity.HubNotification) error {
	return r.record(entity.EventArrival, n)
}
