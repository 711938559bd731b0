package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CashFlow handles the JSON ledger report endpoint
func (h *ReportHandler) CashFlow(c *gin.Context) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.BuildCashFlowReport(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash-flow report generated successfully", report)
}

// CashFlowXLSX handles streaming the ledger report as a spreadsheet
func (h *ReportHandler) CashFlowXLSX(c *gin.Context) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=cash-flow-report.xlsx")

	if err := h.reportService.ExportCashFlowXLSX(c.Request.Context(), req.StartDate, req.EndDate, c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}
