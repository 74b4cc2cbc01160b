package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	query := `
	SELECT id, code, event_id, owner_id, price_paid, state, purchased_at, used_at
	FROM tickets
	WHERE code = $1
	`

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

// MarkUsed only transitions tickets that are still paid, so a concurrent use or
// cancellation makes it report false instead of overwriting the other outcome.
func (r *TicketRepository) MarkUsed(ctx context.Context, ticketID uuid.UUID, usedAt time.Time) (bool, error) {
	query := `
	UPDATE tickets
	SET state = $1,
		used_at = $2
	WHERE id = $3 AND state = $4
	`

	result, err := r.db.ExecContext(ctx, query, domain.TicketUsed, usedAt, ticketID, domain.TicketPaid)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}
