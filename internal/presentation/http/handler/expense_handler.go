package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
	"github.com/teabook/teabook-api/pkg/pagination"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Add handles creating an expense
func (h *ExpenseHandler) Add(c *gin.Context) {
	var req request.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), &service.AddExpenseInput{
		Date:          req.Date,
		ExpenseType:   req.ExpenseType,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		VendorName:    req.VendorName,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense added successfully", expense)
}

// Get handles retrieving a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// List handles listing expenses with an optional date range
func (h *ExpenseHandler) List(c *gin.Context) {
	var req request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), &service.ListExpensesInput{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Delete handles deleting an expense, cascading onto salary payments for
// shadow rows
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}

// Stats handles the expense statistics endpoint
func (h *ExpenseHandler) Stats(c *gin.Context) {
	p, ok := ParsePeriodQuery(c)
	if !ok {
		return
	}

	stats, err := h.expenseService.GetStats(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense stats retrieved successfully", stats)
}
