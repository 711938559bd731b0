package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/pkg/apperror"
	"github.com/teabook/teabook-api/pkg/period"
)

// CashFlowService handles the daily ledger rows
type CashFlowService struct {
	cashFlowRepo repository.CashFlowRepository
	expenseRepo  repository.ExpenseRepository
	log          *logrus.Logger
}

// NewCashFlowService creates a new cash-flow service
func NewCashFlowService(
	cashFlowRepo repository.CashFlowRepository,
	expenseRepo repository.ExpenseRepository,
	log *logrus.Logger,
) *CashFlowService {
	return &CashFlowService{
		cashFlowRepo: cashFlowRepo,
		expenseRepo:  expenseRepo,
		log:          log,
	}
}

// SaveDailyEntryInput represents the save daily entry input
type SaveDailyEntryInput struct {
	Date          string
	YesterdayCash decimal.Decimal
	CashSales     decimal.Decimal
	OnlineSales   decimal.Decimal
	ClosingCash   decimal.Decimal
	Notes         *string
}

// SaveDailyEntry upserts the user-entered fields for a date. The expense
// aggregates are re-derived from the date's expense rows rather than trusted
// from the existing row, then the formula fields are recomputed.
func (s *CashFlowService) SaveDailyEntry(ctx context.Context, input *SaveDailyEntryInput) (*entity.DailyCashFlow, error) {
	date := input.Date
	if date == "" {
		date = entity.Today()
	}
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	for _, amount := range []decimal.Decimal{input.YesterdayCash, input.CashSales, input.OnlineSales, input.ClosingCash} {
		if amount.IsNegative() {
			return nil, apperror.NewBadRequestError("Amounts cannot be negative")
		}
	}

	expenses, err := s.expenseRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	cash, online := decimal.Zero, decimal.Zero
	for i := range expenses {
		switch expenses[i].PaymentMethod {
		case enum.PaymentMethodCash:
			cash = cash.Add(expenses[i].Amount)
		case enum.PaymentMethodOnline:
			online = online.Add(expenses[i].Amount)
		}
	}

	flow, err := s.cashFlowRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	create := flow == nil
	if create {
		flow = &entity.DailyCashFlow{Date: date}
	}
	flow.YesterdayCash = input.YesterdayCash
	flow.CashSales = input.CashSales
	flow.OnlineSales = input.OnlineSales
	flow.ClosingCash = input.ClosingCash
	flow.Notes = input.Notes
	flow.CashExpenses = cash
	flow.OnlineExpenses = online
	flow.Recalculate()

	if flow.HasCashMismatch() {
		s.log.WithFields(logrus.Fields{
			"date":     date,
			"counted":  flow.ClosingCash,
			"expected": flow.ExpectedClosingCash,
		}).Warn("closing cash does not match expectation")
	}

	if create {
		err = s.cashFlowRepo.Create(ctx, flow)
	} else {
		err = s.cashFlowRepo.Update(ctx, flow)
	}
	if err != nil {
		return nil, err
	}
	return flow, nil
}

// GetByDate retrieves the ledger row for a date
func (s *CashFlowService) GetByDate(ctx context.Context, date string) (*entity.DailyCashFlow, error) {
	flow, err := s.cashFlowRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, apperror.NewNotFoundError("Cash-flow entry")
	}
	return flow, nil
}

// GetRange returns ledger rows with start <= date <= end, newest first.
// Empty bounds leave that side open.
func (s *CashFlowService) GetRange(ctx context.Context, start, end string) ([]entity.DailyCashFlow, error) {
	if start == "" && end == "" {
		return s.cashFlowRepo.ListAll(ctx)
	}
	return s.cashFlowRepo.ListRange(ctx, start, end)
}

// DeleteEntry removes only the ledger row for a date. The date's expense rows
// survive; saving an entry for the date later re-derives the same totals.
func (s *CashFlowService) DeleteEntry(ctx context.Context, date string) error {
	flow, err := s.cashFlowRepo.GetByDate(ctx, date)
	if err != nil {
		return err
	}
	if flow == nil {
		return apperror.NewNotFoundError("Cash-flow entry")
	}
	return s.cashFlowRepo.DeleteByDate(ctx, date)
}

// DashboardStats summarizes the ledger over a reporting period.
type DashboardStats struct {
	Period        period.Period   `json:"period"`
	StartDate     string          `json:"start_date,omitempty"`
	EndDate       string          `json:"end_date"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	CashInHand    decimal.Decimal `json:"cash_in_hand"`
	MismatchDays  int             `json:"mismatch_days"`
	EntryCount    int             `json:"entry_count"`
}

// GetDashboardStats sums sales, expenses and profit over the period. Cash in
// hand is the counted closing cash of the most recent entry in the period.
func (s *CashFlowService) GetDashboardStats(ctx context.Context, p period.Period) (*DashboardStats, error) {
	start, end := period.DateBounds(p, time.Now())
	flows, err := s.cashFlowRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Period:        p,
		StartDate:     start,
		EndDate:       end,
		TotalSales:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalProfit:   decimal.Zero,
		CashInHand:    decimal.Zero,
		EntryCount:    len(flows),
	}
	for i := range flows {
		f := &flows[i]
		stats.TotalSales = stats.TotalSales.Add(f.DailySales)
		stats.TotalExpenses = stats.TotalExpenses.Add(f.TotalExpenses)
		stats.TotalProfit = stats.TotalProfit.Add(f.DailyProfit)
		if f.HasCashMismatch() {
			stats.MismatchDays++
		}
	}
	if len(flows) > 0 {
		// Rows come back newest first.
		stats.CashInHand = flows[0].ClosingCash
	}
	return stats, nil
}
