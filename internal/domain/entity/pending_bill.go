package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PendingBill is a vendor bill awaiting payment. Bills are tracked separately
// from the cash-flow ledger; marking one paid does not create an expense.
type PendingBill struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	VendorName string          `gorm:"size:255;not null" json:"vendor_name"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDate    string          `gorm:"size:10;not null;index" json:"due_date"`
	Status     enum.BillStatus `gorm:"size:20;default:'Pending'" json:"status"`
	Notes      *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *PendingBill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PendingBill model
func (PendingBill) TableName() string {
	return "pending_bills"
}
