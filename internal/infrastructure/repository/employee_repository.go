package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/entity"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := r.db.WithContext(ctx).Order("name ASC").Find(&employees).Error
	return employees, err
}

type salaryPaymentRepository struct {
	db *gorm.DB
}

// NewSalaryPaymentRepository creates a new salary payment repository
func NewSalaryPaymentRepository(db *gorm.DB) domainRepo.SalaryPaymentRepository {
	return &salaryPaymentRepository{db: db}
}

func (r *salaryPaymentRepository) Create(ctx context.Context, payment *entity.SalaryPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *salaryPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryPayment, error) {
	var payment entity.SalaryPayment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *salaryPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SalaryPayment{}, "id = ?", id).Error
}

func (r *salaryPaymentRepository) List(ctx context.Context, params *domainRepo.SalaryPaymentFilterParams) ([]entity.SalaryPayment, error) {
	var payments []entity.SalaryPayment

	query := r.db.WithContext(ctx).Model(&entity.SalaryPayment{})
	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}
	if params.Month != nil {
		query = query.Where("month = ?", *params.Month)
	}
	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}

	err := query.Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *salaryPaymentRepository) ListRecentByEmployeeAmount(ctx context.Context, employeeID uuid.UUID, amount decimal.Decimal, limit int) ([]entity.SalaryPayment, error) {
	var payments []entity.SalaryPayment
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND amount = ?", employeeID, amount).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}
