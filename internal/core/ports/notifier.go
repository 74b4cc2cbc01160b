package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

// AvailabilityCache is best effort; Get returns nil, nil on a miss. Readers take Version
// before loading from the store and pass it to Set, which drops the write if Invalidate
// ran in between.
type AvailabilityCache interface {
	Get(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error)
	Version(ctx context.Context, eventID uuid.UUID) (int64, error)
	Set(ctx context.Context, availability *domain.Availability, version int64) error
	Invalidate(ctx context.Context, eventID uuid.UUID) error
}

// EventPublisher announces committed ticket changes to other services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
