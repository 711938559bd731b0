package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/pkg/apperror"
)

// PayrollService handles employees and their salary payments
type PayrollService struct {
	employeeRepo   repository.EmployeeRepository
	salaryRepo     repository.SalaryPaymentRepository
	expenseService *ExpenseService
	log            *logrus.Logger
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	employeeRepo repository.EmployeeRepository,
	salaryRepo repository.SalaryPaymentRepository,
	expenseService *ExpenseService,
	log *logrus.Logger,
) *PayrollService {
	return &PayrollService{
		employeeRepo:   employeeRepo,
		salaryRepo:     salaryRepo,
		expenseService: expenseService,
		log:            log,
	}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	Name          string
	Role          string
	MonthlySalary decimal.Decimal
}

// CreateEmployee creates a new employee
func (s *PayrollService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Name is required")
	}
	if input.MonthlySalary.IsNegative() {
		return nil, apperror.NewBadRequestError("Monthly salary cannot be negative")
	}
	employee := &entity.Employee{
		Name:          input.Name,
		Role:          input.Role,
		MonthlySalary: input.MonthlySalary,
		AdvanceGiven:  decimal.Zero,
		IsActive:      true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *PayrollService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// UpdateEmployeeInput represents the update employee input; nil fields are
// left unchanged.
type UpdateEmployeeInput struct {
	Name          *string
	Role          *string
	MonthlySalary *decimal.Decimal
}

// UpdateEmployee updates an employee's details
func (s *PayrollService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Name cannot be empty")
		}
		employee.Name = *input.Name
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}
	if input.MonthlySalary != nil {
		if input.MonthlySalary.IsNegative() {
			return nil, apperror.NewBadRequestError("Monthly salary cannot be negative")
		}
		employee.MonthlySalary = *input.MonthlySalary
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeactivateEmployee soft-deletes an employee. The row and its payment
// history stay; the employee just stops appearing payable.
func (s *PayrollService) DeactivateEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return s.setActive(ctx, id, false)
}

// ReactivateEmployee reverses a soft delete
func (s *PayrollService) ReactivateEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return s.setActive(ctx, id, true)
}

func (s *PayrollService) setActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.IsActive = active
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// ListEmployees returns all employees ordered by name, inactive included
func (s *PayrollService) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// PaySalaryInput represents the pay salary input
type PaySalaryInput struct {
	EmployeeID    uuid.UUID
	Amount        decimal.Decimal
	PaymentType   enum.PaymentType
	PaymentMethod enum.PaymentMethod
	Month         string
	Year          int
	Notes         *string
}

// PaySalary records a salary or advance payout: the payment row, its shadow
// expense in today's ledger (which recomputes today's aggregates), and for
// advances the bump to the employee's outstanding balance. The steps are
// independent writes; a failure mid-sequence leaves the earlier ones in
// place and the next mutation on the date heals the aggregates.
func (s *PayrollService) PaySalary(ctx context.Context, input *PaySalaryInput) (*entity.SalaryPayment, error) {
	if !input.PaymentType.IsValid() {
		return nil, apperror.NewBadRequestError("Payment type must be Salary or Advance")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Payment method must be Cash or Online")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if input.Month == "" || input.Year == 0 {
		return nil, apperror.NewBadRequestError("Month and year are required")
	}

	employee, err := s.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, apperror.NewBadRequestError("Employee is inactive")
	}

	payment := &entity.SalaryPayment{
		EmployeeID:    input.EmployeeID,
		Amount:        input.Amount,
		PaymentType:   input.PaymentType,
		PaymentMethod: input.PaymentMethod,
		Month:         input.Month,
		Year:          input.Year,
		Notes:         input.Notes,
	}
	if err := s.salaryRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if _, err := s.expenseService.AddSalaryShadow(ctx, payment); err != nil {
		return nil, err
	}

	if input.PaymentType == enum.PaymentTypeAdvance {
		employee.AdvanceGiven = employee.AdvanceGiven.Add(input.Amount)
		if err := s.employeeRepo.Update(ctx, employee); err != nil {
			return nil, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"employee_id":  employee.ID,
		"payment_type": payment.PaymentType,
		"amount":       payment.Amount,
	}).Info("salary payment recorded")
	return payment, nil
}

// ListPaymentsInput represents the list payments input; nil fields are
// ignored.
type ListPaymentsInput struct {
	EmployeeID *uuid.UUID
	Month      *string
	Year       *int
}

// ListPayments returns salary payments newest first, optionally filtered by
// employee, month and year.
func (s *PayrollService) ListPayments(ctx context.Context, input *ListPaymentsInput) ([]entity.SalaryPayment, error) {
	params := &repository.SalaryPaymentFilterParams{}
	if input != nil {
		params.EmployeeID = input.EmployeeID
		params.Month = input.Month
		params.Year = input.Year
	}
	return s.salaryRepo.List(ctx, params)
}
