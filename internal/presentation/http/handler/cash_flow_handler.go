package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// CashFlowHandler handles daily ledger HTTP requests
type CashFlowHandler struct {
	cashFlowService *service.CashFlowService
}

// NewCashFlowHandler creates a new cash-flow handler
func NewCashFlowHandler(cashFlowService *service.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

// Save handles upserting the ledger entry for a date
func (h *CashFlowHandler) Save(c *gin.Context) {
	var req request.SaveDailyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	flow, err := h.cashFlowService.SaveDailyEntry(c.Request.Context(), &service.SaveDailyEntryInput{
		Date:          req.Date,
		YesterdayCash: decimal.NewFromFloat(req.YesterdayCash),
		CashSales:     decimal.NewFromFloat(req.CashSales),
		OnlineSales:   decimal.NewFromFloat(req.OnlineSales),
		ClosingCash:   decimal.NewFromFloat(req.ClosingCash),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily entry saved successfully", flow)
}

// Get handles retrieving the ledger entry for a date
func (h *CashFlowHandler) Get(c *gin.Context) {
	flow, err := h.cashFlowService.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily entry retrieved successfully", flow)
}

// List handles listing ledger entries for a date range
func (h *CashFlowHandler) List(c *gin.Context) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	flows, err := h.cashFlowService.GetRange(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily entries retrieved successfully", flows)
}

// Delete handles deleting the ledger entry for a date. The date's expenses
// are untouched.
func (h *CashFlowHandler) Delete(c *gin.Context) {
	if err := h.cashFlowService.DeleteEntry(c.Request.Context(), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily entry deleted successfully", nil)
}

// Dashboard handles the dashboard statistics endpoint
func (h *CashFlowHandler) Dashboard(c *gin.Context) {
	p, ok := ParsePeriodQuery(c)
	if !ok {
		return
	}

	stats, err := h.cashFlowService.GetDashboardStats(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
