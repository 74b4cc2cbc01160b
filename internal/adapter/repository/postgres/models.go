package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventRecord struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title            string          `gorm:"type:varchar(200);not null"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalCapacity    int             `gorm:"not null"`
	TicketsAvailable int             `gorm:"not null"`
	Active           bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (EventRecord) TableName() string { return "events" }

type TicketRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"type:varchar(40);not null;uniqueIndex:idx_tickets_code"`
	EventID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_tickets_owner_purchased,priority:1"`
	PricePaid   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	State       string          `gorm:"type:varchar(20);not null"`
	PurchasedAt time.Time       `gorm:"not null;index:idx_tickets_owner_purchased,priority:2,sort:desc"`
	UsedAt      *time.Time

	Event EventRecord `gorm:"foreignKey:EventID"`
}

func (TicketRecord) TableName() string { return "tickets" }

type TransactionRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TicketID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	State         string          `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ticket TicketRecord `gorm:"foreignKey:TicketID"`
}

func (TransactionRecord) TableName() string { return "transactions" }
