package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/ports"
	"github.com/srgjo27/ticket_inventory/internal/platform/monitoring"
)

const (
	DefaultMaxTicketsPerPurchase = 10
	DefaultPageLimit             = 10
	MaxPageLimit                 = 100
)

const (
	RoutingTicketPurchased = "ticket.purchased"
	RoutingTicketCancelled = "ticket.cancelled"
	RoutingTicketUsed      = "ticket.used"
)

type Config struct {
	MaxTicketsPerPurchase int
	Now                   func() time.Time
}

type PurchaseRequest struct {
	EventID       uuid.UUID
	Buyer         domain.Principal
	Quantity      int
	PaymentMethod string
}

type TicketPurchasedMessage struct {
	EventID       uuid.UUID                `json:"event_id"`
	BuyerID       uuid.UUID                `json:"buyer_id"`
	Tickets       []domain.PurchasedTicket `json:"tickets"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	PaymentMethod string                   `json:"payment_method"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

type TicketChangedMessage struct {
	TicketID   uuid.UUID          `json:"ticket_id"`
	EventID    uuid.UUID          `json:"event_id"`
	State      domain.TicketState `json:"state"`
	ActorID    uuid.UUID          `json:"actor_id,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// InventoryService owns every state transition that touches an event's available
// ticket count or a ticket's lifecycle. Serialization between concurrent callers is
// delegated to the store's row locks.
type InventoryService struct {
	uow       ports.UnitOfWork
	tickets   ports.TicketRepository
	queries   ports.TicketQueryRepository
	cache     ports.AvailabilityCache
	publisher ports.EventPublisher
	monitor   *monitoring.Monitor

	maxPerPurchase int
	now            func() time.Time
}

func NewInventoryService(
	uow ports.UnitOfWork,
	tickets ports.TicketRepository,
	queries ports.TicketQueryRepository,
	cache ports.AvailabilityCache,
	publisher ports.EventPublisher,
	cfg Config,
) *InventoryService {
	if cfg.MaxTicketsPerPurchase <= 0 {
		cfg.MaxTicketsPerPurchase = DefaultMaxTicketsPerPurchase
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &InventoryService{
		uow:            uow,
		tickets:        tickets,
		queries:        queries,
		cache:          cache,
		publisher:      publisher,
		monitor:        monitoring.NewMonitor(),
		maxPerPurchase: cfg.MaxTicketsPerPurchase,
		now:            cfg.Now,
	}
}

func (s *InventoryService) Purchase(ctx context.Context, req PurchaseRequest) (*domain.PurchaseResult, error) {
	started := time.Now()

	if req.Quantity < 1 || req.Quantity > s.maxPerPurchase {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrInvalidQuantity, s.maxPerPurchase)
	}

	method, err := normalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var result *domain.PurchaseResult

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.InventoryTx) error {
		event, err := tx.LockEvent(ctx, req.EventID)
		if err != nil {
			return err
		}

		if err := event.CheckPurchasable(req.Quantity); err != nil {
			return err
		}

		now := s.now()
		res := &domain.PurchaseResult{
			EventID:     event.ID,
			EventTitle:  event.Title,
			Tickets:     make([]domain.PurchasedTicket, 0, req.Quantity),
			TotalAmount: event.TotalFor(req.Quantity),
		}

		for i := 0; i < req.Quantity; i++ {
			code, err := domain.NewTicketCode()
			if err != nil {
				return err
			}

			ticket := &domain.Ticket{
				ID:          uuid.New(),
				Code:        code,
				EventID:     event.ID,
				OwnerID:     req.Buyer.UserID,
				PricePaid:   event.Price,
				State:       domain.TicketPaid,
				PurchasedAt: now,
			}
			if err := tx.InsertTicket(ctx, ticket); err != nil {
				return fmt.Errorf("insert ticket %d of %d: %w", i+1, req.Quantity, err)
			}

			txn := &domain.Transaction{
				ID:            uuid.New(),
				TicketID:      ticket.ID,
				Amount:        event.Price,
				PaymentMethod: method,
				State:         domain.TransactionCompleted,
				CreatedAt:     now,
			}
			if err := tx.InsertTransaction(ctx, txn); err != nil {
				return fmt.Errorf("insert transaction for ticket %s: %w", ticket.ID, err)
			}

			res.Tickets = append(res.Tickets, domain.PurchasedTicket{TicketID: ticket.ID, Code: ticket.Code})
		}

		if err := tx.AdjustTicketsAvailable(ctx, event.ID, -req.Quantity); err != nil {
			return fmt.Errorf("decrement inventory: %w", err)
		}

		result = res
		return nil
	})

	s.track("purchase", err, started)
	if err != nil {
		if !isRejection(err) {
			slog.Error("Ticket purchase failed", "error", err, "event_id", req.EventID, "buyer_id", req.Buyer.UserID, "quantity", req.Quantity)
		}
		return nil, err
	}

	s.monitor.TrackTicketsSold(len(result.Tickets))
	slog.Info("Tickets purchased", "event_id", result.EventID, "buyer_id", req.Buyer.UserID, "quantity", len(result.Tickets), "total", result.TotalAmount.String())

	s.afterCommit(ctx, result.EventID, RoutingTicketPurchased, TicketPurchasedMessage{
		EventID:       result.EventID,
		BuyerID:       req.Buyer.UserID,
		Tickets:       result.Tickets,
		TotalAmount:   result.TotalAmount,
		PaymentMethod: method,
		OccurredAt:    s.now(),
	})

	return result, nil
}

// Cancel refunds a paid ticket and returns its unit to the event's inventory. The ticket
// row lock is taken before any check and held until commit, so two concurrent cancels of
// the same ticket cannot both restore inventory.
func (s *InventoryService) Cancel(ctx context.Context, ticketID uuid.UUID, requester domain.Principal) error {
	started := time.Now()

	var eventID uuid.UUID

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.InventoryTx) error {
		ticket, err := tx.LockTicket(ctx, ticketID)
		if err != nil {
			return err
		}

		if !ticket.IsOwnedBy(requester.UserID) && !requester.Role.CanCancelAnyTicket() {
			return domain.ErrForbidden
		}

		if err := ticket.CheckCancel(); err != nil {
			return err
		}

		if err := tx.UpdateTicketState(ctx, ticket.ID, domain.TicketCancelled); err != nil {
			return fmt.Errorf("cancel ticket: %w", err)
		}

		if err := tx.AdjustTicketsAvailable(ctx, ticket.EventID, 1); err != nil {
			return fmt.Errorf("restore inventory: %w", err)
		}

		if err := tx.UpdateTransactionState(ctx, ticket.ID, domain.TransactionRefunded); err != nil {
			return fmt.Errorf("refund transaction: %w", err)
		}

		eventID = ticket.EventID
		return nil
	})

	s.track("cancel", err, started)
	if err != nil {
		if !isRejection(err) {
			slog.Error("Ticket cancellation failed", "error", err, "ticket_id", ticketID, "requester_id", requester.UserID)
		}
		return err
	}

	slog.Info("Ticket cancelled", "ticket_id", ticketID, "event_id", eventID, "requester_id", requester.UserID)

	s.afterCommit(ctx, eventID, RoutingTicketCancelled, TicketChangedMessage{
		TicketID:   ticketID,
		EventID:    eventID,
		State:      domain.TicketCancelled,
		ActorID:    requester.UserID,
		OccurredAt: s.now(),
	})

	return nil
}

// MarkUsed admits the holder of a paid ticket. A second call for the same code fails
// with domain.ErrTicketAlreadyUsed.
func (s *InventoryService) MarkUsed(ctx context.Context, code string) error {
	started := time.Now()

	ticket, err := s.markUsed(ctx, code)

	s.track("mark_used", err, started)
	if err != nil {
		if !isRejection(err) {
			slog.Error("Marking ticket as used failed", "error", err, "code", code)
		}
		return err
	}

	slog.Info("Ticket used", "ticket_id", ticket.ID, "event_id", ticket.EventID)

	if s.publisher != nil {
		msg := TicketChangedMessage{
			TicketID:   ticket.ID,
			EventID:    ticket.EventID,
			State:      domain.TicketUsed,
			OccurredAt: *ticket.UsedAt,
		}
		if err := s.publisher.Publish(ctx, RoutingTicketUsed, msg); err != nil {
			slog.Warn("Failed to publish ticket change", "error", err, "routing_key", RoutingTicketUsed, "ticket_id", ticket.ID)
		}
	}

	return nil
}

func (s *InventoryService) markUsed(ctx context.Context, code string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := ticket.CheckUse(); err != nil {
		return nil, err
	}

	usedAt := s.now()
	if usedAt.Before(ticket.PurchasedAt) {
		usedAt = ticket.PurchasedAt
	}

	updated, err := s.tickets.MarkUsed(ctx, ticket.ID, usedAt)
	if err != nil {
		return nil, fmt.Errorf("mark ticket used: %w", err)
	}

	if !updated {
		// lost a race with another use or a cancellation; report what won
		current, err := s.tickets.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if err := current.CheckUse(); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidTicketState
	}

	ticket.State = domain.TicketUsed
	ticket.UsedAt = &usedAt

	return ticket, nil
}

func (s *InventoryService) ListOwnedTickets(ctx context.Context, owner domain.Principal, page, limit int) (*domain.TicketPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return s.queries.ListByOwner(ctx, owner.UserID, page, limit)
}

func (s *InventoryService) GetTicketByCode(ctx context.Context, code string, requester domain.Principal) (*domain.TicketDetails, error) {
	details, err := s.queries.GetDetailsByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !details.IsOwnedBy(requester.UserID) && !requester.Role.CanViewAnyTicket() {
		return nil, domain.ErrForbidden
	}

	return details, nil
}

// GetAvailability serves from cache when possible. Cache failures fall through to the store.
// The cache version is read before the store so a commit landing in between
// invalidates the value this call would otherwise cache.
func (s *InventoryService) GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error) {
	cacheable := false
	var version int64

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, eventID)
		if err != nil {
			slog.Warn("Availability cache read failed", "error", err, "event_id", eventID)
		} else if cached != nil {
			return cached, nil
		}

		version, err = s.cache.Version(ctx, eventID)
		if err != nil {
			slog.Warn("Availability cache version read failed", "error", err, "event_id", eventID)
		} else {
			cacheable = true
		}
	}

	availability, err := s.queries.GetAvailability(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, availability, version); err != nil {
			slog.Warn("Availability cache write failed", "error", err, "event_id", eventID)
		}
	}

	return availability, nil
}

// afterCommit runs side effects that must never undo a committed unit of work.
func (s *InventoryService) afterCommit(ctx context.Context, eventID uuid.UUID, routingKey string, msg any) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, eventID); err != nil {
			slog.Warn("Failed to invalidate availability cache", "error", err, "event_id", eventID)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, routingKey, msg); err != nil {
			slog.Warn("Failed to publish ticket change", "error", err, "routing_key", routingKey, "event_id", eventID)
		}
	}
}

func (s *InventoryService) track(operation string, err error, started time.Time) {
	outcome := "ok"
	switch {
	case err == nil:
	case isRejection(err):
		outcome = "rejected"
	default:
		outcome = "error"
	}

	s.monitor.TrackOperation(operation, outcome, started)
}

func normalizePaymentMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return domain.DefaultPaymentMethod, nil
	}

	if utf8.RuneCountInString(method) > domain.MaxPaymentMethodLength {
		return "", fmt.Errorf("%w: at most %d characters", domain.ErrInvalidPaymentMethod, domain.MaxPaymentMethodLength)
	}

	return method, nil
}

var rejections = []error{
	domain.ErrEventNotFound,
	domain.ErrTicketNotFound,
	domain.ErrEventInactive,
	domain.ErrInsufficientInventory,
	domain.ErrForbidden,
	domain.ErrTicketAlreadyCancelled,
	domain.ErrTicketAlreadyUsed,
	domain.ErrTicketCancelled,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidPaymentMethod,
}

// isRejection reports whether err is an expected business outcome rather than a failure.
func isRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
