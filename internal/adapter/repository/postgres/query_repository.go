package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"gorm.io/gorm"
)

// QueryRepository serves the read side. It never takes locks.
type QueryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

func (r *QueryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.TicketPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&TicketRecord{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var records []TicketRecord
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("owner_id = ?", ownerID).
		Order("purchased_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	tickets := make([]domain.TicketDetails, len(records))
	for i := range records {
		tickets[i] = toTicketDetails(&records[i])
	}

	return &domain.TicketPage{
		Tickets:    tickets,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (r *QueryRepository) GetDetailsByCode(ctx context.Context, code string) (*domain.TicketDetails, error) {
	var record TicketRecord
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("code = ?", code).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	details := toTicketDetails(&record)
	return &details, nil
}

func (r *QueryRepository) GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error) {
	var event EventRecord
	err := r.db.WithContext(ctx).
		Select("id", "total_capacity", "tickets_available", "active").
		First(&event, "id = ?", eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	return &domain.Availability{
		EventID:          event.ID,
		TotalCapacity:    event.TotalCapacity,
		TicketsAvailable: event.TicketsAvailable,
		Active:           event.Active,
	}, nil
}

func toTicketDetails(r *TicketRecord) domain.TicketDetails {
	return domain.TicketDetails{
		Ticket: domain.Ticket{
			ID:          r.ID,
			Code:        r.Code,
			EventID:     r.EventID,
			OwnerID:     r.OwnerID,
			PricePaid:   r.PricePaid,
			State:       domain.TicketState(r.State),
			PurchasedAt: r.PurchasedAt,
			UsedAt:      r.UsedAt,
		},
		EventTitle: r.Event.Title,
	}
}
