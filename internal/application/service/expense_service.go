package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/pkg/apperror"
	"github.com/teabook/teabook-api/pkg/pagination"
	"github.com/teabook/teabook-api/pkg/period"
)

// cascadeMatchWindow bounds the creation-time distance between a shadow
// expense and its salary payment when no back-reference is stored.
const cascadeMatchWindow = 5 * time.Second

// cascadeMatchLimit caps how many recent payments the heuristic match scans.
const cascadeMatchLimit = 5

// ExpenseService handles expense mutations and keeps the per-date cash-flow
// aggregates reconciled with the expense rows.
type ExpenseService struct {
	expenseRepo  repository.ExpenseRepository
	cashFlowRepo repository.CashFlowRepository
	salaryRepo   repository.SalaryPaymentRepository
	employeeRepo repository.EmployeeRepository
	log          *logrus.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	cashFlowRepo repository.CashFlowRepository,
	salaryRepo repository.SalaryPaymentRepository,
	employeeRepo repository.EmployeeRepository,
	log *logrus.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		cashFlowRepo: cashFlowRepo,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		log:          log,
	}
}

// AddExpenseInput represents the add expense input
type AddExpenseInput struct {
	Date          string
	ExpenseType   string
	Amount        decimal.Decimal
	PaymentMethod enum.PaymentMethod
	VendorName    *string
	Notes         *string
}

// AddExpense inserts an expense row and recomputes the date's cash-flow
// aggregates, creating a zero-initialized cash-flow row when the date has
// none yet.
func (s *ExpenseService) AddExpense(ctx context.Context, input *AddExpenseInput) (*entity.Expense, error) {
	date := input.Date
	if date == "" {
		date = entity.Today()
	}
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Payment method must be Cash or Online")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if input.ExpenseType == "" {
		return nil, apperror.NewBadRequestError("Expense type is required")
	}

	expense := &entity.Expense{
		Date:          date,
		ExpenseType:   input.ExpenseType,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		VendorName:    input.VendorName,
		Notes:         input.Notes,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	if _, err := s.RecomputeDate(ctx, date); err != nil {
		return nil, err
	}
	return expense, nil
}

// AddSalaryShadow inserts the shadow expense that mirrors a salary payment in
// the day's ledger and recomputes today's aggregates. The payment ID is
// stored on the row so a later delete cascades without heuristics.
func (s *ExpenseService) AddSalaryShadow(ctx context.Context, payment *entity.SalaryPayment) (*entity.Expense, error) {
	employeeID := payment.EmployeeID
	paymentID := payment.ID
	expense := &entity.Expense{
		Date:            entity.Today(),
		ExpenseType:     "Salary",
		Amount:          payment.Amount,
		PaymentMethod:   payment.PaymentMethod,
		Notes:           payment.Notes,
		IsSalaryPayment: true,
		EmployeeID:      &employeeID,
		SalaryPaymentID: &paymentID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	if _, err := s.RecomputeDate(ctx, expense.Date); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense and recomputes its date's aggregates.
// Salary-shadow rows first cascade onto their salary payment; an unmatched
// payment is left orphaned rather than blocking the delete.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}

	if expense.IsSalaryPayment {
		if err := s.cascadeSalaryDelete(ctx, expense); err != nil {
			return err
		}
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	_, err = s.RecomputeDate(ctx, expense.Date)
	return err
}

// cascadeSalaryDelete removes the salary payment behind a shadow expense and
// unwinds an advance from the employee's balance. Rows without the stored
// back-reference fall back to matching the most recent payments of the same
// employee and amount within the time window.
func (s *ExpenseService) cascadeSalaryDelete(ctx context.Context, expense *entity.Expense) error {
	var payment *entity.SalaryPayment
	var err error

	switch {
	case expense.SalaryPaymentID != nil:
		payment, err = s.salaryRepo.GetByID(ctx, *expense.SalaryPaymentID)
		if err != nil {
			return err
		}
	case expense.EmployeeID != nil:
		candidates, err := s.salaryRepo.ListRecentByEmployeeAmount(ctx, *expense.EmployeeID, expense.Amount, cascadeMatchLimit)
		if err != nil {
			return err
		}
		for i := range candidates {
			delta := expense.CreatedAt.Sub(candidates[i].CreatedAt)
			if delta < 0 {
				delta = -delta
			}
			if delta < cascadeMatchWindow {
				payment = &candidates[i]
				break
			}
		}
	}

	if payment == nil {
		s.log.WithFields(logrus.Fields{
			"expense_id": expense.ID,
			"date":       expense.Date,
		}).Warn("no salary payment matched shadow expense, leaving payment orphaned")
		return nil
	}

	if err := s.salaryRepo.Delete(ctx, payment.ID); err != nil {
		return err
	}

	if payment.PaymentType == enum.PaymentTypeAdvance {
		employee, err := s.employeeRepo.GetByID(ctx, payment.EmployeeID)
		if err != nil {
			return err
		}
		if employee != nil {
			employee.AdvanceGiven = employee.AdvanceGiven.Sub(payment.Amount)
			if employee.AdvanceGiven.IsNegative() {
				employee.AdvanceGiven = decimal.Zero
			}
			if err := s.employeeRepo.Update(ctx, employee); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecomputeDate re-derives a date's expense aggregates from its expense rows
// and upserts them into the date's cash-flow row. The recompute is idempotent;
// aggregates left stale by a failed earlier sequence heal here.
func (s *ExpenseService) RecomputeDate(ctx context.Context, date string) (*entity.DailyCashFlow, error) {
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
	flow.CashExpenses = cash
	flow.OnlineExpenses = online
	flow.Recalculate()

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

// ListExpensesInput represents the list expenses input
type ListExpensesInput struct {
	Pagination *pagination.PaginationParams
	StartDate  string
	EndDate    string
}

// ListExpenses returns a page of expenses in the date range, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, input *ListExpensesInput) (*pagination.PaginatedResult[entity.Expense], error) {
	params := &repository.ExpenseFilterParams{
		Pagination: input.Pagination,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, page), nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ExpenseTypeTotal is one row of the by-type spending ranking.
type ExpenseTypeTotal struct {
	ExpenseType string          `json:"expense_type"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
}

// ExpenseStats summarizes spending over a reporting period.
type ExpenseStats struct {
	Period      period.Period      `json:"period"`
	StartDate   string             `json:"start_date,omitempty"`
	EndDate     string             `json:"end_date"`
	CashTotal   decimal.Decimal    `json:"cash_total"`
	OnlineTotal decimal.Decimal    `json:"online_total"`
	Total       decimal.Decimal    `json:"total"`
	ByType      []ExpenseTypeTotal `json:"by_type"`
}

// GetStats aggregates spending for the period: cash/online/total plus a
// per-type ranking ordered by amount spent.
func (s *ExpenseService) GetStats(ctx context.Context, p period.Period) (*ExpenseStats, error) {
	start, end := period.DateBounds(p, time.Now())
	expenses, err := s.expenseRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &ExpenseStats{
		Period:      p,
		StartDate:   start,
		EndDate:     end,
		CashTotal:   decimal.Zero,
		OnlineTotal: decimal.Zero,
		Total:       decimal.Zero,
	}
	byType := make(map[string]*ExpenseTypeTotal)
	for i := range expenses {
		e := &expenses[i]
		switch e.PaymentMethod {
		case enum.PaymentMethodCash:
			stats.CashTotal = stats.CashTotal.Add(e.Amount)
		case enum.PaymentMethodOnline:
			stats.OnlineTotal = stats.OnlineTotal.Add(e.Amount)
		}
		stats.Total = stats.Total.Add(e.Amount)

		row, ok := byType[e.ExpenseType]
		if !ok {
			row = &ExpenseTypeTotal{ExpenseType: e.ExpenseType, Total: decimal.Zero}
			byType[e.ExpenseType] = row
		}
		row.Total = row.Total.Add(e.Amount)
		row.Count++
	}

	stats.ByType = make([]ExpenseTypeTotal, 0, len(byType))
	for _, row := range byType {
		stats.ByType = append(stats.ByType, *row)
	}
	sort.Slice(stats.ByType, func(i, j int) bool {
		return stats.ByType[i].Total.GreaterThan(stats.ByType[j].Total)
	})
	return stats, nil
}
