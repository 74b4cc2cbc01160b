package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionState string

const (
	TransactionCompleted TransactionState = "completed"
	TransactionRefunded  TransactionState = "refunded"
)

const DefaultPaymentMethod = "cash"

const MaxPaymentMethodLength = 50

type Transaction struct {
	ID            uuid.UUID
	TicketID      uuid.UUID
	Amount        decimal.Decimal
	PaymentMethod string
	State         TransactionState
	CreatedAt     time.Time
}
