package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

// UnitOfWork runs fn inside one atomic store transaction. The transaction commits when fn
// returns nil and rolls back otherwise; row locks taken through tx are held until then.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx InventoryTx) error) error
}

type InventoryTx interface {
	LockEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error)
	LockTicket(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error)
	InsertTicket(ctx context.Context, ticket *domain.Ticket) error
	InsertTransaction(ctx context.Context, txn *domain.Transaction) error
	AdjustTicketsAvailable(ctx context.Context, eventID uuid.UUID, delta int) error
	UpdateTicketState(ctx context.Context, ticketID uuid.UUID, state domain.TicketState) error
	UpdateTransactionState(ctx context.Context, ticketID uuid.UUID, state domain.TransactionState) error
}

type TicketRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	// MarkUsed transitions a paid ticket to used. It reports false when the ticket was not
	// in the paid state at the time of the update.
	MarkUsed(ctx context.Context, ticketID uuid.UUID, usedAt time.Time) (bool, error)
}

type TicketQueryRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.TicketPage, error)
	GetDetailsByCode(ctx context.Context, code string) (*domain.TicketDetails, error)
	GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error)
}

type InventoryAuditor interface {
	FindInventoryDrift(ctx context.Context) ([]domain.InventoryDrift, error)
}
