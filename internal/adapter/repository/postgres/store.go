package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/ports"
)

const (
	pqUniqueViolation = "23505"
	ticketCodeIndex   = "idx_tickets_code"
)

// Store is the transactional side of the inventory: every call to WithinTx runs on a
// single connection checked out of the pool and returned on every exit path.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.InventoryTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if err := fn(ctx, &inventoryTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type inventoryTx struct {
	tx *sql.Tx
}

func (t *inventoryTx) LockEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	query := `
	SELECT id, organizer_id, title, price, total_capacity, tickets_available, active
	FROM events
	WHERE id = $1
	FOR UPDATE
	`

	var event domain.Event
	err := t.tx.QueryRowContext(ctx, query, eventID).Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Price,
		&event.TotalCapacity,
		&event.TicketsAvailable,
		&event.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event %s: %w", eventID, err)
	}

	return &event, nil
}

func (t *inventoryTx) LockTicket(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	query := `
	SELECT id, code, event_id, owner_id, price_paid, state, purchased_at, used_at
	FROM tickets
	WHERE id = $1
	FOR UPDATE
	`

	ticket, err := scanTicket(t.tx.QueryRowContext(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("lock ticket %s: %w", ticketID, err)
	}

	return ticket, nil
}

func (t *inventoryTx) InsertTicket(ctx context.Context, ticket *domain.Ticket) error {
	query := `
	INSERT INTO tickets (id, code, event_id, owner_id, price_paid, state, purchased_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := t.tx.ExecContext(ctx, query,
		ticket.ID, ticket.Code, ticket.EventID, ticket.OwnerID, ticket.PricePaid, ticket.State, ticket.PurchasedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == ticketCodeIndex {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTicketCode, ticket.Code)
		}
		return err
	}

	return nil
}

func (t *inventoryTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
	INSERT INTO transactions (id, ticket_id, amount, payment_method, state, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6)
	`

	_, err := t.tx.ExecContext(ctx, query, txn.ID, txn.TicketID, txn.Amount, txn.PaymentMethod, txn.State, txn.CreatedAt)

	return err
}

func (t *inventoryTx) AdjustTicketsAvailable(ctx context.Context, eventID uuid.UUID, delta int) error {
	query := `
	UPDATE events
	SET tickets_available = tickets_available + $1,
		updated_at = NOW()
	WHERE id = $2
	`

	return execOne(ctx, t.tx, domain.ErrEventNotFound, query, delta, eventID)
}

func (t *inventoryTx) UpdateTicketState(ctx context.Context, ticketID uuid.UUID, state domain.TicketState) error {
	return execOne(ctx, t.tx, domain.ErrTicketNotFound, `UPDATE tickets SET state = $1 WHERE id = $2`, state, ticketID)
}

func (t *inventoryTx) UpdateTransactionState(ctx context.Context, ticketID uuid.UUID, state domain.TransactionState) error {
	query := `
	UPDATE transactions
	SET state = $1,
		updated_at = NOW()
	WHERE ticket_id = $2
	`

	return execOne(ctx, t.tx, domain.ErrTransactionNotFound, query, state, ticketID)
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, tx *sql.Tx, notFound error, query string, args ...any) error {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var usedAt sql.NullTime

	err := row.Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.EventID,
		&ticket.OwnerID,
		&ticket.PricePaid,
		&ticket.State,
		&ticket.PurchasedAt,
		&usedAt,
	)
	if err != nil {
		return nil, err
	}

	if usedAt.Valid {
		ticket.UsedAt = &usedAt.Time
	}

	return &ticket, nil
}
