package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// PayrollHandler handles employee and salary HTTP requests
type PayrollHandler struct {
	payrollService *service.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// CreateEmployee handles creating an employee
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		Name:          req.Name,
		Role:          req.Role,
		MonthlySalary: decimal.NewFromFloat(req.MonthlySalary),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// GetEmployee handles retrieving an employee
func (h *PayrollHandler) GetEmployee(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.payrollService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// UpdateEmployee handles updating an employee's details
func (h *PayrollHandler) UpdateEmployee(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateEmployeeInput{
		Name: req.Name,
		Role: req.Role,
	}
	if req.MonthlySalary != nil {
		salary := decimal.NewFromFloat(*req.MonthlySalary)
		input.MonthlySalary = &salary
	}

	employee, err := h.payrollService.UpdateEmployee(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// DeactivateEmployee handles soft-deleting an employee
func (h *PayrollHandler) DeactivateEmployee(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.payrollService.DeactivateEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deactivated successfully", employee)
}

// ReactivateEmployee handles reversing a soft delete
func (h *PayrollHandler) ReactivateEmployee(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.payrollService.ReactivateEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee reactivated successfully", employee)
}

// ListEmployees handles listing all employees
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	employees, err := h.payrollService.ListEmployees(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employees retrieved successfully", employees)
}

// PaySalary handles recording a salary or advance payout
func (h *PayrollHandler) PaySalary(c *gin.Context) {
	var req request.PaySalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.payrollService.PaySalary(c.Request.Context(), &service.PaySalaryInput{
		EmployeeID:    req.EmployeeID,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentType:   enum.PaymentType(req.PaymentType),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Month:         req.Month,
		Year:          req.Year,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Salary payment recorded successfully", payment)
}

// ListPayments handles listing salary payments with optional filters
func (h *PayrollHandler) ListPayments(c *gin.Context) {
	var req request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.ListPaymentsInput{}
	if req.EmployeeID != "" {
		employeeID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			response.BadRequest(c, "Invalid employee ID")
			return
		}
		input.EmployeeID = &employeeID
	}
	if req.Month != "" {
		input.Month = &req.Month
	}
	if req.Year != 0 {
		input.Year = &req.Year
	}

	payments, err := h.payrollService.ListPayments(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salary payments retrieved successfully", payments)
}
