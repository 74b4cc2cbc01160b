package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

type PurchaseTicketsRequest struct {
	EventID       string `json:"event_id"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

type PurchaseResponse struct {
	EventID     uuid.UUID                `json:"event_id"`
	EventTitle  string                   `json:"event_title"`
	Tickets     []domain.PurchasedTicket `json:"tickets"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
}

type TicketResponse struct {
	ID          uuid.UUID          `json:"id"`
	Code        string             `json:"code"`
	EventID     uuid.UUID          `json:"event_id"`
	EventTitle  string             `json:"event_title"`
	OwnerID     uuid.UUID          `json:"owner_id"`
	PricePaid   decimal.Decimal    `json:"price_paid"`
	State       domain.TicketState `json:"state"`
	PurchasedAt time.Time          `json:"purchased_at"`
	UsedAt      *time.Time         `json:"used_at,omitempty"`
}

type TicketPageResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToPurchaseResponse(res *domain.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		EventID:     res.EventID,
		EventTitle:  res.EventTitle,
		Tickets:     res.Tickets,
		TotalAmount: res.TotalAmount,
	}
}

func ToTicketResponse(d *domain.TicketDetails) TicketResponse {
	return TicketResponse{
		ID:          d.ID,
		Code:        d.Code,
		EventID:     d.EventID,
		EventTitle:  d.EventTitle,
		OwnerID:     d.OwnerID,
		PricePaid:   d.PricePaid,
		State:       d.State,
		PurchasedAt: d.PurchasedAt,
		UsedAt:      d.UsedAt,
	}
}

func ToTicketPageResponse(p *domain.TicketPage) TicketPageResponse {
	tickets := make([]TicketResponse, len(p.Tickets))
	for i := range p.Tickets {
		tickets[i] = ToTicketResponse(&p.Tickets[i])
	}

	return TicketPageResponse{
		Tickets:    tickets,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
