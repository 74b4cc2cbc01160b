package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/ports"
)

// Store keeps inventory in process memory with the same locking contract as the
// postgres adapter: rows locked inside WithinTx stay locked until it returns, and
// writes become visible to others only on commit.
type Store struct {
	mu      sync.Mutex
	events  map[uuid.UUID]domain.Event
	tickets map[uuid.UUID]domain.Ticket
	codes   map[string]uuid.UUID
	txns    map[uuid.UUID]domain.Transaction // by ticket id
	locks   map[string]chan struct{}
}

func NewStore() *Store {
	return &Store{
		events:  make(map[uuid.UUID]domain.Event),
		tickets: make(map[uuid.UUID]domain.Ticket),
		codes:   make(map[string]uuid.UUID),
		txns:    make(map[uuid.UUID]domain.Transaction),
		locks:   make(map[string]chan struct{}),
	}
}

func (s *Store) AddEvent(event domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
}

func (s *Store) Event(id uuid.UUID) (domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e, ok
}

func (s *Store) Ticket(id uuid.UUID) (domain.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	return t, ok
}

func (s *Store) TransactionFor(ticketID uuid.UUID) (domain.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[ticketID]
	return t, ok
}

func (s *Store) rowLock(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[key] = l
	}
	return l
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.InventoryTx) error) error {
	tx := &memTx{
		s:       s,
		held:    make(map[string]chan struct{}),
		events:  make(map[uuid.UUID]domain.Event),
		tickets: make(map[uuid.UUID]domain.Ticket),
		txns:    make(map[uuid.UUID]domain.Transaction),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.commit()
}

type memTx struct {
	s    *Store
	held map[string]chan struct{}

	// uncommitted writes
	events  map[uuid.UUID]domain.Event
	tickets map[uuid.UUID]domain.Ticket
	txns    map[uuid.UUID]domain.Transaction
}

func (t *memTx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}

	l := t.s.rowLock(key)
	select {
	case l <- struct{}{}:
		t.held[key] = l
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for row lock %s: %w", key, ctx.Err())
	}
}

func (t *memTx) release() {
	for key, l := range t.held {
		<-l
		delete(t.held, key)
	}
}

func (t *memTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for id, e := range t.events {
		t.s.events[id] = e
	}
	for id, tk := range t.tickets {
		t.s.tickets[id] = tk
		t.s.codes[tk.Code] = id
	}
	for id, txn := range t.txns {
		t.s.txns[id] = txn
	}

	return nil
}

func (t *memTx) event(id uuid.UUID) (domain.Event, bool) {
	if e, ok := t.events[id]; ok {
		return e, true
	}
	return t.s.Event(id)
}

func (t *memTx) ticket(id uuid.UUID) (domain.Ticket, bool) {
	if tk, ok := t.tickets[id]; ok {
		return tk, true
	}
	return t.s.Ticket(id)
}

func (t *memTx) LockEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	if _, ok := t.event(eventID); !ok {
		return nil, domain.ErrEventNotFound
	}

	if err := t.lock(ctx, eventKey(eventID)); err != nil {
		return nil, err
	}

	e, _ := t.event(eventID)
	return &e, nil
}

func (t *memTx) LockTicket(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	if _, ok := t.ticket(ticketID); !ok {
		return nil, domain.ErrTicketNotFound
	}

	if err := t.lock(ctx, ticketKey(ticketID)); err != nil {
		return nil, err
	}

	tk, _ := t.ticket(ticketID)
	return &tk, nil
}

func (t *memTx) InsertTicket(ctx context.Context, ticket *domain.Ticket) error {
	if _, ok := t.event(ticket.EventID); !ok {
		return fmt.Errorf("insert ticket: event %s does not exist", ticket.EventID)
	}

	if _, ok := t.ticket(ticket.ID); ok {
		return fmt.Errorf("insert ticket: id %s already exists", ticket.ID)
	}

	t.s.mu.Lock()
	_, taken := t.s.codes[ticket.Code]
	t.s.mu.Unlock()
	for _, pending := range t.tickets {
		taken = taken || pending.Code == ticket.Code
	}
	if taken {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTicketCode, ticket.Code)
	}

	t.tickets[ticket.ID] = *ticket
	return nil
}

func (t *memTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	if _, ok := t.ticket(txn.TicketID); !ok {
		return fmt.Errorf("insert transaction: ticket %s does not exist", txn.TicketID)
	}

	if _, ok := t.transaction(txn.TicketID); ok {
		return fmt.Errorf("insert transaction: ticket %s already has one", txn.TicketID)
	}

	t.txns[txn.TicketID] = *txn
	return nil
}

func (t *memTx) transaction(ticketID uuid.UUID) (domain.Transaction, bool) {
	if txn, ok := t.txns[ticketID]; ok {
		return txn, true
	}
	return t.s.TransactionFor(ticketID)
}

func (t *memTx) AdjustTicketsAvailable(ctx context.Context, eventID uuid.UUID, delta int) error {
	if _, ok := t.event(eventID); !ok {
		return domain.ErrEventNotFound
	}

	if err := t.lock(ctx, eventKey(eventID)); err != nil {
		return err
	}

	e, _ := t.event(eventID)
	next := e.TicketsAvailable + delta
	if next < 0 || next > e.TotalCapacity {
		return fmt.Errorf("event %s: tickets_available %d outside [0, %d]", eventID, next, e.TotalCapacity)
	}

	e.TicketsAvailable = next
	t.events[eventID] = e
	return nil
}

func (t *memTx) UpdateTicketState(ctx context.Context, ticketID uuid.UUID, state domain.TicketState) error {
	if _, ok := t.ticket(ticketID); !ok {
		return domain.ErrTicketNotFound
	}

	if err := t.lock(ctx, ticketKey(ticketID)); err != nil {
		return err
	}

	tk, _ := t.ticket(ticketID)
	tk.State = state
	t.tickets[ticketID] = tk
	return nil
}

func (t *memTx) UpdateTransactionState(ctx context.Context, ticketID uuid.UUID, state domain.TransactionState) error {
	if _, ok := t.transaction(ticketID); !ok {
		return domain.ErrTransactionNotFound
	}

	if err := t.lock(ctx, transactionKey(ticketID)); err != nil {
		return err
	}

	txn, _ := t.transaction(ticketID)
	txn.State = state
	t.txns[ticketID] = txn
	return nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.codes[code]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}

	tk := s.tickets[id]
	return &tk, nil
}

func (s *Store) MarkUsed(ctx context.Context, ticketID uuid.UUID, usedAt time.Time) (bool, error) {
	var updated bool

	// a single-statement update still waits for row locks held by open transactions
	err := s.WithinTx(ctx, func(ctx context.Context, tx ports.InventoryTx) error {
		tk, err := tx.LockTicket(ctx, ticketID)
		if err != nil {
			return err
		}
		if tk.State != domain.TicketPaid {
			return nil
		}

		mt := tx.(*memTx)
		tk.State = domain.TicketUsed
		tk.UsedAt = &usedAt
		mt.tickets[ticketID] = *tk
		updated = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return false, nil
		}
		return false, err
	}

	return updated, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.TicketPage, error) {
	s.mu.Lock()
	var owned []domain.TicketDetails
	for _, tk := range s.tickets {
		if tk.OwnerID == ownerID {
			owned = append(owned, domain.TicketDetails{Ticket: tk, EventTitle: s.events[tk.EventID].Title})
		}
	}
	s.mu.Unlock()

	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].PurchasedAt.Equal(owned[j].PurchasedAt) {
			return owned[i].PurchasedAt.After(owned[j].PurchasedAt)
		}
		return owned[i].ID.String() > owned[j].ID.String()
	})

	total := len(owned)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return &domain.TicketPage{
		Tickets:    owned[start:end],
		Total:      int64(total),
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *Store) GetDetailsByCode(ctx context.Context, code string) (*domain.TicketDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.codes[code]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}

	tk := s.tickets[id]
	return &domain.TicketDetails{Ticket: tk, EventTitle: s.events[tk.EventID].Title}, nil
}

func (s *Store) GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error) {
	e, ok := s.Event(eventID)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	return &domain.Availability{
		EventID:          e.ID,
		TotalCapacity:    e.TotalCapacity,
		TicketsAvailable: e.TicketsAvailable,
		Active:           e.Active,
	}, nil
}

func (s *Store) FindInventoryDrift(ctx context.Context) ([]domain.InventoryDrift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make(map[uuid.UUID]int, len(s.events))
	for _, tk := range s.tickets {
		if tk.State.Live() {
			live[tk.EventID]++
		}
	}

	var drifts []domain.InventoryDrift
	for id, e := range s.events {
		d := domain.InventoryDrift{
			EventID:          id,
			TotalCapacity:    e.TotalCapacity,
			TicketsAvailable: e.TicketsAvailable,
			LiveTickets:      live[id],
		}
		if d.Delta() != 0 {
			drifts = append(drifts, d)
		}
	}

	return drifts, nil
}

func eventKey(id uuid.UUID) string       { return "event:" + id.String() }
func ticketKey(id uuid.UUID) string      { return "ticket:" + id.String() }
func transactionKey(id uuid.UUID) string { return "transaction:" + id.String() }
