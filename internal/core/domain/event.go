package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Event struct {
	ID               uuid.UUID
	OrganizerID      uuid.UUID
	Title            string
	Price            decimal.Decimal
	TotalCapacity    int
	TicketsAvailable int
	Active           bool
}

// CheckPurchasable reports why quantity units of the event cannot be sold, if any.
// The caller must hold the event row lock for the result to stay valid.
func (e *Event) CheckPurchasable(quantity int) error {
	if !e.Active {
		return ErrEventInactive
	}

	if e.TicketsAvailable < quantity {
		return &InsufficientInventoryError{Requested: quantity, Remaining: e.TicketsAvailable}
	}

	return nil
}

func (e *Event) TotalFor(quantity int) decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

type Availability struct {
	EventID          uuid.UUID `json:"event_id"`
	TotalCapacity    int       `json:"total_capacity"`
	TicketsAvailable int       `json:"tickets_available"`
	Active           bool      `json:"active"`
}

// InventoryDrift is an event whose stored inventory disagrees with its live tickets.
type InventoryDrift struct {
	EventID          uuid.UUID
	TotalCapacity    int
	TicketsAvailable int
	LiveTickets      int
}

func (d InventoryDrift) Expected() int {
	return d.TotalCapacity - d.LiveTickets
}

func (d InventoryDrift) Delta() int {
	return d.TicketsAvailable - d.Expected()
}
