package request

import "github.com/google/uuid"

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Role          string  `json:"role" binding:"omitempty,max=100"`
	MonthlySalary float64 `json:"monthly_salary" binding:"min=0"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Role          *string  `json:"role" binding:"omitempty,max=100"`
	MonthlySalary *float64 `json:"monthly_salary" binding:"omitempty,min=0"`
}

// PaySalaryRequest represents a salary or advance payout request
type PaySalaryRequest struct {
	EmployeeID    uuid.UUID `json:"employee_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PaymentType   string    `json:"payment_type" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	Month         string    `json:"month" binding:"required,max=20"`
	Year          int       `json:"year" binding:"required,min=2000,max=2100"`
	Notes         *string   `json:"notes"`
}

// PaymentFilterRequest represents salary payment filter parameters
type PaymentFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Month      string `form:"month"`
	Year       int    `form:"year"`
}
