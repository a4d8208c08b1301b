package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// PayloadArchiveRepository defines the interface for archiving raw inbound
// webhook payloads
type PayloadArchiveRepository interface {
	Archive(ctx context.Context, payload *entity.InboundPayload) error
}
