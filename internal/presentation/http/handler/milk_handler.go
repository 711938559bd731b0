package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// MilkHandler handles milk tally HTTP requests
type MilkHandler struct {
	milkService *service.MilkService
}

// NewMilkHandler creates a new milk handler
func NewMilkHandler(milkService *service.MilkService) *MilkHandler {
	return &MilkHandler{milkService: milkService}
}

// Record handles upserting a date's milk tally
func (h *MilkHandler) Record(c *gin.Context) {
	var req request.RecordMilkUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	usage, err := h.milkService.RecordUsage(c.Request.Context(), &service.RecordUsageInput{
		Date:      req.Date,
		Purchased: req.Purchased,
		Used:      req.Used,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Milk usage recorded successfully", usage)
}

// Get handles retrieving a date's milk tally
func (h *MilkHandler) Get(c *gin.Context) {
	usage, err := h.milkService.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Milk usage retrieved successfully", usage)
}

// List handles listing milk tallies for a period
func (h *MilkHandler) List(c *gin.Context) {
	p, ok := ParsePeriodQuery(c)
	if !ok {
		return
	}

	usages, err := h.milkService.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Milk usage retrieved successfully", usages)
}
