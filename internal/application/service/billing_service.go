package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/pkg/apperror"
)

// BillingService handles pending vendor bills. Bills live outside the
// cash-flow ledger; settling one does not create an expense row.
type BillingService struct {
	billRepo repository.PendingBillRepository
}

// NewBillingService creates a new billing service
func NewBillingService(billRepo repository.PendingBillRepository) *BillingService {
	return &BillingService{billRepo: billRepo}
}

// BillInput represents the create/update bill input
type BillInput struct {
	VendorName string
	Amount     decimal.Decimal
	DueDate    string
	Notes      *string
}

func (s *BillingService) validate(input *BillInput) error {
	if input.VendorName == "" {
		return apperror.NewBadRequestError("Vendor name is required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return apperror.NewBadRequestError("Amount must be positive")
	}
	if _, err := time.Parse(entity.DateLayout, input.DueDate); err != nil {
		return apperror.NewBadRequestError("Invalid due date, expected YYYY-MM-DD")
	}
	return nil
}

// CreateBill records a new pending bill
func (s *BillingService) CreateBill(ctx context.Context, input *BillInput) (*entity.PendingBill, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	bill := &entity.PendingBill{
		VendorName: input.VendorName,
		Amount:     input.Amount,
		DueDate:    input.DueDate,
		Status:     enum.BillStatusPending,
		Notes:      input.Notes,
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill retrieves a bill by ID
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// UpdateBill replaces a bill's details, leaving its status untouched
func (s *BillingService) UpdateBill(ctx context.Context, id uuid.UUID, input *BillInput) (*entity.PendingBill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	bill.VendorName = input.VendorName
	bill.Amount = input.Amount
	bill.DueDate = input.DueDate
	bill.Notes = input.Notes
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// MarkPaid settles a bill
func (s *BillingService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Status == enum.BillStatusPaid {
		return nil, apperror.NewConflictError("Bill is already paid")
	}
	bill.Status = enum.BillStatusPaid
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// DeleteBill removes a bill
func (s *BillingService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBill(ctx, id); err != nil {
		return err
	}
	return s.billRepo.Delete(ctx, id)
}

// ListBills returns all bills ordered by due date
func (s *BillingService) ListBills(ctx context.Context) ([]entity.PendingBill, error) {
	return s.billRepo.List(ctx)
}

// BillSummary totals the outstanding bills.
type BillSummary struct {
	PendingCount int             `json:"pending_count"`
	PendingTotal decimal.Decimal `json:"pending_total"`
	OverdueCount int             `json:"overdue_count"`
}

// GetSummary counts and totals pending bills; a bill is overdue when its due
// date is before today.
func (s *BillingService) GetSummary(ctx context.Context) (*BillSummary, error) {
	bills, err := s.billRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := entity.Today()
	summary := &BillSummary{PendingTotal: decimal.Zero}
	for i := range bills {
		if bills[i].Status != enum.BillStatusPending {
			continue
		}
		summary.PendingCount++
		summary.PendingTotal = summary.PendingTotal.Add(bills[i].Amount)
		if bills[i].DueDate < today {
			summary.OverdueCount++
		}
	}
	return summary, nil
}
