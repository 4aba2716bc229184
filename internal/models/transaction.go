package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TxSuccess TransactionStatus = "success"
	TxFailed  TransactionStatus = "failed"
	TxRefund  TransactionStatus = "refund"
)

// Transaction is an append-only settlement record. A refund is a new row
// referencing the same booking, never an edit of the original.
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	BookingID     uint              `gorm:"not null;index" json:"booking_id"`
	Amount        decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod string            `gorm:"type:varchar(30);not null;default:'qr'" json:"payment_method"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null;default:'success';index" json:"status"`
	PaymentDate   time.Time         `json:"payment_date"`
	ProofPath     *string           `gorm:"type:varchar(500)" json:"proof_path,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
