package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// StockHandler handles inventory HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Add handles creating a stock item
func (h *StockHandler) Add(c *gin.Context) {
	var req request.AddStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.stockService.AddItem(c.Request.Context(), &service.AddItemInput{
		ProductName:       req.ProductName,
		Category:          req.Category,
		Vendor:            req.Vendor,
		SupplierID:        req.SupplierID,
		Unit:              req.Unit,
		OpeningStock:      req.OpeningStock,
		PurchasePrice:     decimal.NewFromFloat(req.PurchasePrice),
		SellingPrice:      decimal.NewFromFloat(req.SellingPrice),
		LowStockThreshold: req.LowStockThreshold,
		ExpiryDate:        req.ExpiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock item added successfully", item)
}

// Get handles retrieving a stock item
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	item, err := h.stockService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item retrieved successfully", item)
}

// Update handles updating a stock item's metadata and prices
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var req request.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateItemInput{
		ProductName:       req.ProductName,
		Category:          req.Category,
		Vendor:            req.Vendor,
		SupplierID:        req.SupplierID,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
		ExpiryDate:        req.ExpiryDate,
	}
	if req.PurchasePrice != nil {
		price := decimal.NewFromFloat(*req.PurchasePrice)
		input.PurchasePrice = &price
	}
	if req.SellingPrice != nil {
		price := decimal.NewFromFloat(*req.SellingPrice)
		input.SellingPrice = &price
	}

	item, err := h.stockService.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item updated successfully", item)
}

// Move handles applying a purchase or use movement to an item
func (h *StockHandler) Move(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var req request.StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.stockService.UpdateStock(c.Request.Context(), &service.UpdateStockInput{
		StockID:         id,
		TransactionType: enum.TransactionType(req.TransactionType),
		Quantity:        req.Quantity,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated successfully", item)
}

// List handles listing all stock items
func (h *StockHandler) List(c *gin.Context) {
	items, err := h.stockService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock items retrieved successfully", items)
}

// Delete handles removing a stock item and its movement log
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.stockService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item deleted successfully", nil)
}

// Transactions handles listing an item's movements
func (h *StockHandler) Transactions(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	txns, err := h.stockService.ListTransactions(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock transactions retrieved successfully", txns)
}

// Alerts handles the low-stock and expiring-soon alert endpoint
func (h *StockHandler) Alerts(c *gin.Context) {
	alerts, err := h.stockService.GetAlerts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock alerts retrieved successfully", alerts)
}

// UsageStats handles the usage analytics endpoint
func (h *StockHandler) UsageStats(c *gin.Context) {
	p, ok := ParsePeriodQuery(c)
	if !ok {
		return
	}

	stats, err := h.stockService.GetUsageStats(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Usage stats retrieved successfully", stats)
}

// Valuation handles the stock valuation endpoint
func (h *StockHandler) Valuation(c *gin.Context) {
	valuation, err := h.stockService.GetValuation(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock valuation retrieved successfully", valuation)
}

// ExpiryCheck handles the triggered expiry-check job endpoint
func (h *StockHandler) ExpiryCheck(c *gin.Context) {
	report, err := h.stockService.RunExpiryCheck(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expiry check completed", report)
}
