package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketState string

const (
	TicketPaid      TicketState = "paid"
	TicketUsed      TicketState = "used"
	TicketCancelled TicketState = "cancelled"
)

// Live tickets count against an event's capacity.
func (s TicketState) Live() bool {
	return s == TicketPaid || s == TicketUsed
}

type Ticket struct {
	ID          uuid.UUID
	Code        string
	EventID     uuid.UUID
	OwnerID     uuid.UUID
	PricePaid   decimal.Decimal
	State       TicketState
	PurchasedAt time.Time
	UsedAt      *time.Time
}

func (t *Ticket) IsOwnedBy(userID uuid.UUID) bool {
	return t.OwnerID == userID
}

// CheckCancel returns the error that forbids cancelling the ticket, or nil.
func (t *Ticket) CheckCancel() error {
	switch t.State {
	case TicketPaid:
		return nil
	case TicketCancelled:
		return ErrTicketAlreadyCancelled
	case TicketUsed:
		return ErrTicketAlreadyUsed
	default:
		return ErrInvalidTicketState
	}
}

// CheckUse returns the error that forbids admitting the ticket holder, or nil.
func (t *Ticket) CheckUse() error {
	switch t.State {
	case TicketPaid:
		return nil
	case TicketUsed:
		return ErrTicketAlreadyUsed
	case TicketCancelled:
		return ErrTicketCancelled
	default:
		return ErrInvalidTicketState
	}
}

// TicketDetails is the read model returned by ticket lookups.
type TicketDetails struct {
	Ticket
	EventTitle string
}

type TicketPage struct {
	Tickets    []TicketDetails
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type PurchasedTicket struct {
	TicketID uuid.UUID `json:"ticket_id"`
	Code     string    `json:"code"`
}

type PurchaseResult struct {
	EventID     uuid.UUID         `json:"event_id"`
	EventTitle  string            `json:"event_title"`
	Tickets     []PurchasedTicket `json:"tickets"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}
