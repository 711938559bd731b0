package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Expense is a single outgoing amount on a calendar date. Salary payments get
// a shadow expense so they show up in the day's cash flow; those rows carry
// IsSalaryPayment plus a back-reference to the salary payment they mirror.
type Expense struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Date            string             `gorm:"size:10;not null;index" json:"date"`
	ExpenseType     string             `gorm:"size:100;not null" json:"expense_type"`
	Amount          decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	VendorName      *string            `gorm:"size:255" json:"vendor_name,omitempty"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	IsSalaryPayment bool               `gorm:"default:false" json:"is_salary_payment"`
	EmployeeID      *uuid.UUID         `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	// SalaryPaymentID links a shadow expense to its salary payment. Rows
	// created before the back-reference existed have it unset and fall back
	// to heuristic matching on cascade delete.
	SalaryPaymentID *uuid.UUID `gorm:"type:uuid;index" json:"salary_payment_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
