package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// BillingHandler handles pending bill HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func billInput(req *request.BillRequest) *service.BillInput {
	return &service.BillInput{
		VendorName: req.VendorName,
		Amount:     decimal.NewFromFloat(req.Amount),
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	}
}

// Create handles recording a pending bill
func (h *BillingHandler) Create(c *gin.Context) {
	var req request.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), billInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles retrieving a bill
func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Update handles updating a bill's details
func (h *BillingHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var req request.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.UpdateBill(c.Request.Context(), id, billInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// MarkPaid handles settling a bill
func (h *BillingHandler) MarkPaid(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	bill, err := h.billingService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill marked as paid", bill)
}

// Delete handles removing a bill
func (h *BillingHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.billingService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// List handles listing all bills
func (h *BillingHandler) List(c *gin.Context) {
	bills, err := h.billingService.ListBills(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bills retrieved successfully", bills)
}

// Summary handles the outstanding bill summary endpoint
func (h *BillingHandler) Summary(c *gin.Context) {
	summary, err := h.billingService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill summary retrieved successfully", summary)
}
