package service

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService builds read-only ledger reports
type ReportService struct {
	cashFlowRepo repository.CashFlowRepository
}

// NewReportService creates a new report service
func NewReportService(cashFlowRepo repository.CashFlowRepository) *ReportService {
	return &ReportService{cashFlowRepo: cashFlowRepo}
}

// CashFlowReport is the ledger rows for a date range with their totals.
type CashFlowReport struct {
	StartDate     string                 `json:"start_date,omitempty"`
	EndDate       string                 `json:"end_date,omitempty"`
	Rows          []entity.DailyCashFlow `json:"rows"`
	TotalSales    decimal.Decimal        `json:"total_sales"`
	TotalExpenses decimal.Decimal        `json:"total_expenses"`
	TotalProfit   decimal.Decimal        `json:"total_profit"`
}

// BuildCashFlowReport collects ledger rows for the range (empty bounds open)
// with range totals.
func (s *ReportService) BuildCashFlowReport(ctx context.Context, start, end string) (*CashFlowReport, error) {
	var rows []entity.DailyCashFlow
	var err error
	if start == "" && end == "" {
		rows, err = s.cashFlowRepo.ListAll(ctx)
	} else {
		rows, err = s.cashFlowRepo.ListRange(ctx, start, end)
	}
	if err != nil {
		return nil, err
	}

	report := &CashFlowReport{
		StartDate:     start,
		EndDate:       end,
		Rows:          rows,
		TotalSales:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalProfit:   decimal.Zero,
	}
	for i := range rows {
		report.TotalSales = report.TotalSales.Add(rows[i].DailySales)
		report.TotalExpenses = report.TotalExpenses.Add(rows[i].TotalExpenses)
		report.TotalProfit = report.TotalProfit.Add(rows[i].DailyProfit)
	}
	return report, nil
}

// ExportCashFlowXLSX writes the range report as a spreadsheet, one ledger
// row per line plus a totals line.
func (s *ReportService) ExportCashFlowXLSX(ctx context.Context, start, end string, w io.Writer) error {
	report, err := s.BuildCashFlowReport(ctx, start, end)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{
		"Date", "Yesterday Cash", "Cash Sales", "Online Sales",
		"Cash Expenses", "Online Expenses", "Total Expenses",
		"Closing Cash", "Expected Closing", "Daily Sales", "Daily Profit",
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for i := range report.Rows {
		row := &report.Rows[i]
		values := []interface{}{
			row.Date,
			row.YesterdayCash.InexactFloat64(),
			row.CashSales.InexactFloat64(),
			row.OnlineSales.InexactFloat64(),
			row.CashExpenses.InexactFloat64(),
			row.OnlineExpenses.InexactFloat64(),
			row.TotalExpenses.InexactFloat64(),
			row.ClosingCash.InexactFloat64(),
			row.ExpectedClosingCash.InexactFloat64(),
			row.DailySales.InexactFloat64(),
			row.DailyProfit.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	totalsRow := len(report.Rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow), "Totals")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", totalsRow), report.TotalExpenses.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("J%d", totalsRow), report.TotalSales.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("K%d", totalsRow), report.TotalProfit.InexactFloat64())

	return f.Write(w)
}
