package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/pkg/period"
)

func newExpenseFixture() (*service.ExpenseService, *fakeExpenseRepo, *fakeCashFlowRepo, *fakeSalaryRepo, *fakeEmployeeRepo) {
	expenseRepo := newFakeExpenseRepo()
	cashFlowRepo := newFakeCashFlowRepo()
	salaryRepo := newFakeSalaryRepo()
	employeeRepo := newFakeEmployeeRepo()
	svc := service.NewExpenseService(expenseRepo, cashFlowRepo, salaryRepo, employeeRepo, testLogger())
	return svc, expenseRepo, cashFlowRepo, salaryRepo, employeeRepo
}

func TestAddExpenseCreatesLedgerRow(t *testing.T) {
	svc, _, cashFlowRepo, _, _ := newExpenseFixture()
	ctx := context.Background()

	expense, err := svc.AddExpense(ctx, &service.AddExpenseInput{
		Date:          "2024-06-01",
		ExpenseType:   "Tea Leaves",
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("AddExpense returned error: %v", err)
	}
	if expense.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected expense ID to be assigned")
	}

	flow, err := cashFlowRepo.GetByDate(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("GetByDate returned error: %v", err)
	}
	if flow == nil {
		t.Fatal("expected a cash-flow row to be created for the date")
	}
	if !flow.CashExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("cash expenses = %s, want 100", flow.CashExpenses)
	}
	if !flow.OnlineExpenses.Equal(decimal.Zero) {
		t.Errorf("online expenses = %s, want 0", flow.OnlineExpenses)
	}
	if !flow.TotalExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("total expenses = %s, want 100", flow.TotalExpenses)
	}
}

func TestAddExpenseSplitsByPaymentMethod(t *testing.T) {
	svc, _, cashFlowRepo, _, _ := newExpenseFixture()
	ctx := context.Background()

	inputs := []service.AddExpenseInput{
		{Date: "2024-06-01", ExpenseType: "Milk", Amount: decimal.NewFromInt(60), PaymentMethod: enum.PaymentMethodCash},
		{Date: "2024-06-01", ExpenseType: "Sugar", Amount: decimal.NewFromInt(40), PaymentMethod: enum.PaymentMethodCash},
		{Date: "2024-06-01", ExpenseType: "Gas", Amount: decimal.NewFromInt(75), PaymentMethod: enum.PaymentMethodOnline},
	}
	for i := range inputs {
		if _, err := svc.AddExpense(ctx, &inputs[i]); err != nil {
			t.Fatalf("AddExpense(%s) returned error: %v", inputs[i].ExpenseType, err)
		}
	}

	flow, _ := cashFlowRepo.GetByDate(ctx, "2024-06-01")
	if !flow.CashExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("cash expenses = %s, want 100", flow.CashExpenses)
	}
	if !flow.OnlineExpenses.Equal(decimal.NewFromInt(75)) {
		t.Errorf("online expenses = %s, want 75", flow.OnlineExpenses)
	}
	if !flow.TotalExpenses.Equal(decimal.NewFromInt(175)) {
		t.Errorf("total expenses = %s, want 175", flow.TotalExpenses)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	svc, _, _, _, _ := newExpenseFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input service.AddExpenseInput
	}{
		{
			name: "bad date",
			input: service.AddExpenseInput{
				Date: "01-06-2024", ExpenseType: "Milk",
				Amount: decimal.NewFromInt(50), PaymentMethod: enum.PaymentMethodCash,
			},
		},
		{
			name: "bad payment method",
			input: service.AddExpenseInput{
				Date: "2024-06-01", ExpenseType: "Milk",
				Amount: decimal.NewFromInt(50), PaymentMethod: "Cheque",
			},
		},
		{
			name: "zero amount",
			input: service.AddExpenseInput{
				Date: "2024-06-01", ExpenseType: "Milk",
				Amount: decimal.Zero, PaymentMethod: enum.PaymentMethodCash,
			},
		},
		{
			name: "negative amount",
			input: service.AddExpenseInput{
				Date: "2024-06-01", ExpenseType: "Milk",
				Amount: decimal.NewFromInt(-10), PaymentMethod: enum.PaymentMethodCash,
			},
		},
		{
			name: "missing type",
			input: service.AddExpenseInput{
				Date:   "2024-06-01",
				Amount: decimal.NewFromInt(50), PaymentMethod: enum.PaymentMethodCash,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddExpense(ctx, &tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDeleteExpenseRecomputesAggregates(t *testing.T) {
	svc, _, cashFlowRepo, _, _ := newExpenseFixture()
	ctx := context.Background()

	kept, err := svc.AddExpense(ctx, &service.AddExpenseInput{
		Date: "2024-06-02", ExpenseType: "Milk",
		Amount: decimal.NewFromInt(30), PaymentMethod: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("AddExpense returned error: %v", err)
	}
	doomed, err := svc.AddExpense(ctx, &service.AddExpenseInput{
		Date: "2024-06-02", ExpenseType: "Gas",
		Amount: decimal.NewFromInt(70), PaymentMethod: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("AddExpense returned error: %v", err)
	}

	if err := svc.DeleteExpense(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteExpense returned error: %v", err)
	}

	flow, _ := cashFlowRepo.GetByDate(ctx, "2024-06-02")
	if !flow.CashExpenses.Equal(decimal.NewFromInt(30)) {
		t.Errorf("cash expenses = %s, want 30 after delete", flow.CashExpenses)
	}
	if _, err := svc.GetExpense(ctx, kept.ID); err != nil {
		t.Errorf("kept expense should still exist, got %v", err)
	}
	if _, err := svc.GetExpense(ctx, doomed.ID); err == nil {
		t.Error("expected not found for deleted expense")
	}
}

func TestDeleteSalaryShadowCascadesByBackReference(t *testing.T) {
	svc, expenseRepo, _, salaryRepo, employeeRepo := newExpenseFixture()
	ctx := context.Background()

	employee := &entity.Employee{Name: "Ravi", AdvanceGiven: decimal.NewFromInt(150), IsActive: true}
	if err := employeeRepo.Create(ctx, employee); err != nil {
		t.Fatal(err)
	}
	payment := &entity.SalaryPayment{
		EmployeeID:    employee.ID,
		Amount:        decimal.NewFromInt(200),
		PaymentType:   enum.PaymentTypeAdvance,
		PaymentMethod: enum.PaymentMethodCash,
		Month:         "June",
		Year:          2024,
	}
	if err := salaryRepo.Create(ctx, payment); err != nil {
		t.Fatal(err)
	}
	shadow, err := svc.AddSalaryShadow(ctx, payment)
	if err != nil {
		t.Fatalf("AddSalaryShadow returned error: %v", err)
	}
	if shadow.SalaryPaymentID == nil || *shadow.SalaryPaymentID != payment.ID {
		t.Fatal("shadow expense should carry the payment back-reference")
	}

	if err := svc.DeleteExpense(ctx, shadow.ID); err != nil {
		t.Fatalf("DeleteExpense returned error: %v", err)
	}

	if got, _ := salaryRepo.GetByID(ctx, payment.ID); got != nil {
		t.Error("expected salary payment to be cascade-deleted")
	}
	if got, _ := expenseRepo.GetByID(ctx, shadow.ID); got != nil {
		t.Error("expected shadow expense to be deleted")
	}
	// Unwinding a 200 advance from a 150 balance floors at zero.
	updated, _ := employeeRepo.GetByID(ctx, employee.ID)
	if !updated.AdvanceGiven.Equal(decimal.Zero) {
		t.Errorf("advance given = %s, want 0", updated.AdvanceGiven)
	}
}

func TestDeleteSalaryShadowHeuristicMatch(t *testing.T) {
	tests := []struct {
		name        string
		gap         time.Duration
		wantDeleted bool
	}{
		{name: "within window", gap: 4 * time.Second, wantDeleted: true},
		{name: "outside window", gap: 6 * time.Second, wantDeleted: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, expenseRepo, _, salaryRepo, employeeRepo := newExpenseFixture()
			ctx := context.Background()

			employee := &entity.Employee{Name: "Meena", IsActive: true}
			if err := employeeRepo.Create(ctx, employee); err != nil {
				t.Fatal(err)
			}
			base := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
			payment := &entity.SalaryPayment{
				EmployeeID:    employee.ID,
				Amount:        decimal.NewFromInt(4000),
				PaymentType:   enum.PaymentTypeSalary,
				PaymentMethod: enum.PaymentMethodCash,
				Month:         "June",
				Year:          2024,
				CreatedAt:     base,
			}
			if err := salaryRepo.Create(ctx, payment); err != nil {
				t.Fatal(err)
			}

			// A legacy shadow row: employee reference only, no payment ID.
			employeeID := employee.ID
			shadow := &entity.Expense{
				Date:            "2024-06-03",
				ExpenseType:     "Salary",
				Amount:          decimal.NewFromInt(4000),
				PaymentMethod:   enum.PaymentMethodCash,
				IsSalaryPayment: true,
				EmployeeID:      &employeeID,
				CreatedAt:       base.Add(tt.gap),
			}
			if err := expenseRepo.Create(ctx, shadow); err != nil {
				t.Fatal(err)
			}

			if err := svc.DeleteExpense(ctx, shadow.ID); err != nil {
				t.Fatalf("DeleteExpense returned error: %v", err)
			}

			got, _ := salaryRepo.GetByID(ctx, payment.ID)
			if tt.wantDeleted && got != nil {
				t.Error("expected payment matched within the window to be deleted")
			}
			if !tt.wantDeleted && got == nil {
				t.Error("expected payment outside the window to be left orphaned")
			}
			// The expense row goes away either way.
			if row, _ := expenseRepo.GetByID(ctx, shadow.ID); row != nil {
				t.Error("expected shadow expense to be deleted")
			}
		})
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	svc, _, _, _, _ := newExpenseFixture()
	if err := svc.DeleteExpense(context.Background(), uuid.New()); err == nil {
		t.Error("expected not found error, got nil")
	}
}

func TestGetStatsRanksByType(t *testing.T) {
	svc, _, _, _, _ := newExpenseFixture()
	ctx := context.Background()

	inputs := []service.AddExpenseInput{
		{Date: "2024-06-01", ExpenseType: "Milk", Amount: decimal.NewFromInt(60), PaymentMethod: enum.PaymentMethodCash},
		{Date: "2024-06-02", ExpenseType: "Milk", Amount: decimal.NewFromInt(50), PaymentMethod: enum.PaymentMethodCash},
		{Date: "2024-06-03", ExpenseType: "Gas", Amount: decimal.NewFromInt(200), PaymentMethod: enum.PaymentMethodOnline},
	}
	for i := range inputs {
		if _, err := svc.AddExpense(ctx, &inputs[i]); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.GetStats(ctx, period.PeriodOverall)
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}
	if !stats.CashTotal.Equal(decimal.NewFromInt(110)) {
		t.Errorf("cash total = %s, want 110", stats.CashTotal)
	}
	if !stats.OnlineTotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("online total = %s, want 200", stats.OnlineTotal)
	}
	if !stats.Total.Equal(decimal.NewFromInt(310)) {
		t.Errorf("total = %s, want 310", stats.Total)
	}
	if len(stats.ByType) != 2 {
		t.Fatalf("by-type rows = %d, want 2", len(stats.ByType))
	}
	if stats.ByType[0].ExpenseType != "Gas" {
		t.Errorf("top spending type = %s, want Gas", stats.ByType[0].ExpenseType)
	}
	if stats.ByType[1].Count != 2 {
		t.Errorf("Milk count = %d, want 2", stats.ByType[1].Count)
	}
}

func TestListExpensesPaginates(t *testing.T) {
	svc, _, _, _, _ := newExpenseFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.AddExpense(ctx, &service.AddExpenseInput{
			Date: "2024-06-01", ExpenseType: "Milk",
			Amount: decimal.NewFromInt(10), PaymentMethod: enum.PaymentMethodCash,
		}); err != nil {
			t.Fatal(err)
		}
	}

	result, err := svc.ListExpenses(ctx, &service.ListExpensesInput{})
	if err != nil {
		t.Fatalf("ListExpenses returned error: %v", err)
	}
	if len(result.Items) != 3 {
		t.Errorf("items = %d, want 3", len(result.Items))
	}
	if result.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", result.Pagination.Total)
	}
}
