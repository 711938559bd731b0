package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
)

func TestCreateBillValidation(t *testing.T) {
	svc := service.NewBillingService(newFakeBillRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input service.BillInput
	}{
		{name: "missing vendor", input: service.BillInput{Amount: decimal.NewFromInt(100), DueDate: "2024-06-15"}},
		{name: "zero amount", input: service.BillInput{VendorName: "Dairy Co", DueDate: "2024-06-15"}},
		{name: "bad due date", input: service.BillInput{VendorName: "Dairy Co", Amount: decimal.NewFromInt(100), DueDate: "mid June"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateBill(ctx, &tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMarkPaidIsFinal(t *testing.T) {
	svc := service.NewBillingService(newFakeBillRepo())
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, &service.BillInput{
		VendorName: "Dairy Co",
		Amount:     decimal.NewFromInt(500),
		DueDate:    "2024-06-15",
	})
	if err != nil {
		t.Fatalf("CreateBill returned error: %v", err)
	}
	if bill.Status != enum.BillStatusPending {
		t.Errorf("new bill status = %s, want Pending", bill.Status)
	}

	paid, err := svc.MarkPaid(ctx, bill.ID)
	if err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if paid.Status != enum.BillStatusPaid {
		t.Errorf("status = %s, want Paid", paid.Status)
	}

	if _, err := svc.MarkPaid(ctx, bill.ID); err == nil {
		t.Error("expected conflict on paying an already paid bill")
	}
}

func TestUpdateBillKeepsStatus(t *testing.T) {
	svc := service.NewBillingService(newFakeBillRepo())
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, &service.BillInput{
		VendorName: "Dairy Co",
		Amount:     decimal.NewFromInt(500),
		DueDate:    "2024-06-15",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.MarkPaid(ctx, bill.ID); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateBill(ctx, bill.ID, &service.BillInput{
		VendorName: "Dairy Co",
		Amount:     decimal.NewFromInt(650),
		DueDate:    "2024-06-20",
	})
	if err != nil {
		t.Fatalf("UpdateBill returned error: %v", err)
	}
	if updated.Status != enum.BillStatusPaid {
		t.Errorf("status = %s, want Paid preserved through update", updated.Status)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(650)) {
		t.Errorf("amount = %s, want 650", updated.Amount)
	}
}

func TestGetSummary(t *testing.T) {
	svc := service.NewBillingService(newFakeBillRepo())
	ctx := context.Background()

	overdue := "2020-01-01"
	future := "2099-01-01"
	bills := []service.BillInput{
		{VendorName: "Dairy Co", Amount: decimal.NewFromInt(500), DueDate: overdue},
		{VendorName: "Gas Agency", Amount: decimal.NewFromInt(900), DueDate: future},
		{VendorName: "Tea Estate", Amount: decimal.NewFromInt(300), DueDate: future},
	}
	var created []*entity.PendingBill
	for i := range bills {
		bill, err := svc.CreateBill(ctx, &bills[i])
		if err != nil {
			t.Fatal(err)
		}
		created = append(created, bill)
	}
	// Paid bills drop out of the summary entirely.
	if _, err := svc.MarkPaid(ctx, created[2].ID); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if summary.PendingCount != 2 {
		t.Errorf("pending count = %d, want 2", summary.PendingCount)
	}
	if !summary.PendingTotal.Equal(decimal.NewFromInt(1400)) {
		t.Errorf("pending total = %s, want 1400", summary.PendingTotal)
	}
	if summary.OverdueCount != 1 {
		t.Errorf("overdue count = %d, want 1", summary.OverdueCount)
	}
}
