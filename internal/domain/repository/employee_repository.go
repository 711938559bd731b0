package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/entity"
)

// EmployeeRepository defines data operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	// GetByID returns nil, nil when the employee does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	// List returns employees ordered by name. Inactive employees are
	// included; soft deletion is an is_active flip, not a row removal.
	List(ctx context.Context) ([]entity.Employee, error)
}

// SalaryPaymentFilterParams contains filtering parameters for salary payment
// queries. Nil fields are ignored.
type SalaryPaymentFilterParams struct {
	EmployeeID *uuid.UUID
	Month      *string
	Year       *int
}

// SalaryPaymentRepository defines data operations for salary payments.
type SalaryPaymentRepository interface {
	Create(ctx context.Context, payment *entity.SalaryPayment) error
	// GetByID returns nil, nil when the payment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryPayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns payments newest first.
	List(ctx context.Context, params *SalaryPaymentFilterParams) ([]entity.SalaryPayment, error)
	// ListRecentByEmployeeAmount returns up to limit payments for the
	// employee with the exact amount, newest first. Used by the legacy
	// heuristic cascade match for shadow expenses without a back-reference.
	ListRecentByEmployeeAmount(ctx context.Context, employeeID uuid.UUID, amount decimal.Decimal, limit int) ([]entity.SalaryPayment, error)
}
