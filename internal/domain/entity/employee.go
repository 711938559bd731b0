package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Employee is a shop worker on the salary ledger. AdvanceGiven is the running
// outstanding advance balance and is never allowed below zero.
type Employee struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Role          string          `gorm:"size:100" json:"role"`
	MonthlySalary decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"monthly_salary"`
	AdvanceGiven  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"advance_given"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Payments []SalaryPayment `gorm:"foreignKey:EmployeeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// SalaryPayment records one salary or advance payout to an employee. Each
// payment has a shadow Expense row dated the day the payment was made.
type SalaryPayment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"employee_id"`
	Amount        decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentType   enum.PaymentType   `gorm:"size:20;not null" json:"payment_type"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Month         string             `gorm:"size:20;not null" json:"month"`
	Year          int                `gorm:"not null" json:"year"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new salary payment
func (p *SalaryPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalaryPayment model
func (SalaryPayment) TableName() string {
	return "salary_payments"
}
