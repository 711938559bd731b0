package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/pkg/period"
)

func newCashFlowFixture() (*service.CashFlowService, *service.ExpenseService, *fakeCashFlowRepo) {
	expenseRepo := newFakeExpenseRepo()
	cashFlowRepo := newFakeCashFlowRepo()
	log := testLogger()
	expenseSvc := service.NewExpenseService(expenseRepo, cashFlowRepo, newFakeSalaryRepo(), newFakeEmployeeRepo(), log)
	cashFlowSvc := service.NewCashFlowService(cashFlowRepo, expenseRepo, log)
	return cashFlowSvc, expenseSvc, cashFlowRepo
}

func TestSaveDailyEntryFormulas(t *testing.T) {
	cashFlowSvc, expenseSvc, _ := newCashFlowFixture()
	ctx := context.Background()

	if _, err := expenseSvc.AddExpense(ctx, &service.AddExpenseInput{
		Date: "2024-06-01", ExpenseType: "Milk",
		Amount: decimal.NewFromInt(40), PaymentMethod: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatal(err)
	}

	flow, err := cashFlowSvc.SaveDailyEntry(ctx, &service.SaveDailyEntryInput{
		Date:          "2024-06-01",
		YesterdayCash: decimal.NewFromInt(100),
		CashSales:     decimal.NewFromInt(50),
		OnlineSales:   decimal.NewFromInt(30),
		ClosingCash:   decimal.NewFromInt(120),
	})
	if err != nil {
		t.Fatalf("SaveDailyEntry returned error: %v", err)
	}

	// daily_sales = 120 + 30 + 40 - 100, profit = sales - expenses,
	// expected closing = 100 + 50 - 40.
	if !flow.TotalExpenses.Equal(decimal.NewFromInt(40)) {
		t.Errorf("total expenses = %s, want 40", flow.TotalExpenses)
	}
	if !flow.DailySales.Equal(decimal.NewFromInt(90)) {
		t.Errorf("daily sales = %s, want 90", flow.DailySales)
	}
	if !flow.DailyProfit.Equal(decimal.NewFromInt(50)) {
		t.Errorf("daily profit = %s, want 50", flow.DailyProfit)
	}
	if !flow.ExpectedClosingCash.Equal(decimal.NewFromInt(110)) {
		t.Errorf("expected closing cash = %s, want 110", flow.ExpectedClosingCash)
	}
	if !flow.HasCashMismatch() {
		t.Error("counted 120 against expected 110 should report a mismatch")
	}
}

func TestSaveDailyEntryValidation(t *testing.T) {
	cashFlowSvc, _, _ := newCashFlowFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input service.SaveDailyEntryInput
	}{
		{
			name:  "bad date",
			input: service.SaveDailyEntryInput{Date: "June 1st"},
		},
		{
			name: "negative closing cash",
			input: service.SaveDailyEntryInput{
				Date: "2024-06-01", ClosingCash: decimal.NewFromInt(-5),
			},
		},
		{
			name: "negative sales",
			input: service.SaveDailyEntryInput{
				Date: "2024-06-01", CashSales: decimal.NewFromInt(-1),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cashFlowSvc.SaveDailyEntry(ctx, &tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// The entry delete removes only the ledger row. Expense rows survive, so
// re-saving the entry re-derives the same aggregates.
func TestDeleteEntryLeavesExpenses(t *testing.T) {
	cashFlowSvc, expenseSvc, _ := newCashFlowFixture()
	ctx := context.Background()

	if _, err := expenseSvc.AddExpense(ctx, &service.AddExpenseInput{
		Date: "2024-06-05", ExpenseType: "Gas",
		Amount: decimal.NewFromInt(80), PaymentMethod: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := cashFlowSvc.SaveDailyEntry(ctx, &service.SaveDailyEntryInput{
		Date: "2024-06-05", CashSales: decimal.NewFromInt(300),
	}); err != nil {
		t.Fatal(err)
	}

	if err := cashFlowSvc.DeleteEntry(ctx, "2024-06-05"); err != nil {
		t.Fatalf("DeleteEntry returned error: %v", err)
	}
	if _, err := cashFlowSvc.GetByDate(ctx, "2024-06-05"); err == nil {
		t.Fatal("expected entry to be gone after delete")
	}

	flow, err := cashFlowSvc.SaveDailyEntry(ctx, &service.SaveDailyEntryInput{
		Date: "2024-06-05", CashSales: decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("re-save returned error: %v", err)
	}
	if !flow.CashExpenses.Equal(decimal.NewFromInt(80)) {
		t.Errorf("cash expenses = %s, want 80 re-derived from surviving rows", flow.CashExpenses)
	}
}

// Expense mutations and entry saves reconcile against the same rows end to
// end: adding an expense updates the expectation, deleting it heals the
// aggregates back.
func TestLedgerReconciliation(t *testing.T) {
	cashFlowSvc, expenseSvc, cashFlowRepo := newCashFlowFixture()
	ctx := context.Background()

	expense, err := expenseSvc.AddExpense(ctx, &service.AddExpenseInput{
		Date: "2024-06-01", ExpenseType: "Tea Leaves",
		Amount: decimal.NewFromInt(100), PaymentMethod: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatal(err)
	}

	flow, err := cashFlowSvc.SaveDailyEntry(ctx, &service.SaveDailyEntryInput{
		Date:        "2024-06-01",
		CashSales:   decimal.NewFromInt(200),
		ClosingCash: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !flow.ExpectedClosingCash.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected closing cash = %s, want 100", flow.ExpectedClosingCash)
	}
	if flow.HasCashMismatch() {
		t.Error("counted cash matches expectation, no mismatch expected")
	}

	if err := expenseSvc.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatal(err)
	}

	flow, _ = cashFlowRepo.GetByDate(ctx, "2024-06-01")
	if !flow.CashExpenses.Equal(decimal.Zero) {
		t.Errorf("cash expenses = %s, want 0 after delete", flow.CashExpenses)
	}
	if !flow.ExpectedClosingCash.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected closing cash = %s, want 200 after delete", flow.ExpectedClosingCash)
	}
	if !flow.HasCashMismatch() {
		t.Error("counted 100 against expected 200 should report a mismatch")
	}
}

func TestGetByDateNotFound(t *testing.T) {
	cashFlowSvc, _, _ := newCashFlowFixture()
	if _, err := cashFlowSvc.GetByDate(context.Background(), "2024-01-01"); err == nil {
		t.Error("expected not found error, got nil")
	}
}

func TestGetDashboardStats(t *testing.T) {
	cashFlowSvc, _, _ := newCashFlowFixture()
	ctx := context.Background()

	entries := []service.SaveDailyEntryInput{
		{
			Date:        "2024-06-01",
			CashSales:   decimal.NewFromInt(100),
			ClosingCash: decimal.NewFromInt(100),
		},
		{
			Date:          "2024-06-02",
			YesterdayCash: decimal.NewFromInt(100),
			CashSales:     decimal.NewFromInt(150),
			ClosingCash:   decimal.NewFromInt(240),
		},
	}
	for i := range entries {
		if _, err := cashFlowSvc.SaveDailyEntry(ctx, &entries[i]); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := cashFlowSvc.GetDashboardStats(ctx, period.PeriodOverall)
	if err != nil {
		t.Fatalf("GetDashboardStats returned error: %v", err)
	}
	if stats.EntryCount != 2 {
		t.Errorf("entry count = %d, want 2", stats.EntryCount)
	}
	// 2024-06-01: sales 100, 2024-06-02: 240 - 100 = 140.
	if !stats.TotalSales.Equal(decimal.NewFromInt(240)) {
		t.Errorf("total sales = %s, want 240", stats.TotalSales)
	}
	if !stats.TotalProfit.Equal(decimal.NewFromInt(240)) {
		t.Errorf("total profit = %s, want 240 with no expenses", stats.TotalProfit)
	}
	// Newest entry's counted closing cash.
	if !stats.CashInHand.Equal(decimal.NewFromInt(240)) {
		t.Errorf("cash in hand = %s, want 240", stats.CashInHand)
	}
	// 06-02 counted 240 against expected 100 + 150 = 250.
	if stats.MismatchDays != 1 {
		t.Errorf("mismatch days = %d, want 1", stats.MismatchDays)
	}
}
