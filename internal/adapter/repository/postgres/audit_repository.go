package postgres

import (
	"context"
	"database/sql"

	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// FindInventoryDrift returns every drifting event; callers report the count as-is.
func (r *AuditRepository) FindInventoryDrift(ctx context.Context) ([]domain.InventoryDrift, error) {
	query := `
	SELECT e.id, e.total_capacity, e.tickets_available, COUNT(t.id)
	FROM events e
	LEFT JOIN tickets t ON t.event_id = e.id AND t.state IN ('paid', 'used')
	GROUP BY e.id, e.total_capacity, e.tickets_available
	HAVING e.tickets_available <> e.total_capacity - COUNT(t.id)
	ORDER BY e.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var drifts []domain.InventoryDrift
	for rows.Next() {
		var d domain.InventoryDrift
		if err := rows.Scan(&d.EventID, &d.TotalCapacity, &d.TicketsAvailable, &d.LiveTickets); err != nil {
			return nil, err
		}

		drifts = append(drifts, d)
	}

	return drifts, rows.Err()
}
