package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// HubRepository defines the interface for outbound notifications to the
// integration hub, one operation per event category. Delivery is best-effort:
// callers log failures and never roll back the persisted change.
type HubRepository interface {
	NotifyStatusChange(ctx context.Context, notification *entity.HubNotification) error
	NotifyGateChange(ctx context.Context, notification *entity.HubNotification) error
	NotifyBaggageChange(ctx context.Context, notification *entity.HubNotification) error
	NotifyTimeUpdate(ctx context.Context, notification *entity.HubNotification) error
	NotifyDeparture(ctx context.Context, notification *entity.HubNotification) error
	NotifyArrival(ctx context.Context, notification *entity.HubNotification) error
}
