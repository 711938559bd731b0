package service_test

import (
	"context"
	"testing"

	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/pkg/period"
)

func TestRecordUsageCarriesRemainingForward(t *testing.T) {
	svc := service.NewMilkService(newFakeMilkRepo())
	ctx := context.Background()

	day1, err := svc.RecordUsage(ctx, &service.RecordUsageInput{
		Date: "2024-06-01", Purchased: 10, Used: 4,
	})
	if err != nil {
		t.Fatalf("RecordUsage returned error: %v", err)
	}
	if day1.Remaining != 6 {
		t.Errorf("day 1 remaining = %v, want 6", day1.Remaining)
	}

	day2, err := svc.RecordUsage(ctx, &service.RecordUsageInput{
		Date: "2024-06-02", Purchased: 5, Used: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if day2.Remaining != 8 {
		t.Errorf("day 2 remaining = %v, want 6 + 5 - 3 = 8", day2.Remaining)
	}

	// Gaps are fine: the carry-over comes from the latest earlier date.
	day5, err := svc.RecordUsage(ctx, &service.RecordUsageInput{
		Date: "2024-06-05", Purchased: 2, Used: 7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if day5.Remaining != 3 {
		t.Errorf("day 5 remaining = %v, want 8 + 2 - 7 = 3", day5.Remaining)
	}
}

func TestRecordUsageReplacesDate(t *testing.T) {
	svc := service.NewMilkService(newFakeMilkRepo())
	ctx := context.Background()

	if _, err := svc.RecordUsage(ctx, &service.RecordUsageInput{
		Date: "2024-06-01", Purchased: 10, Used: 4,
	}); err != nil {
		t.Fatal(err)
	}
	replaced, err := svc.RecordUsage(ctx, &service.RecordUsageInput{
		Date: "2024-06-01", Purchased: 12, Used: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if replaced.Remaining != 7 {
		t.Errorf("remaining = %v, want re-derived 12 - 5 = 7", replaced.Remaining)
	}

	rows, err := svc.List(ctx, period.PeriodOverall)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1 (date was replaced, not duplicated)", len(rows))
	}
}

func TestRecordUsageValidation(t *testing.T) {
	svc := service.NewMilkService(newFakeMilkRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input service.RecordUsageInput
	}{
		{name: "bad date", input: service.RecordUsageInput{Date: "yesterday"}},
		{name: "negative purchased", input: service.RecordUsageInput{Date: "2024-06-01", Purchased: -1}},
		{name: "negative used", input: service.RecordUsageInput{Date: "2024-06-01", Used: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RecordUsage(ctx, &tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMilkGetByDateNotFound(t *testing.T) {
	svc := service.NewMilkService(newFakeMilkRepo())
	if _, err := svc.GetByDate(context.Background(), "2024-01-01"); err == nil {
		t.Error("expected not found error, got nil")
	}
}
