package service

import (
	"context"
	"time"

	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/pkg/apperror"
	"github.com/teabook/teabook-api/pkg/period"
)

// MilkService handles the per-date milk tally
type MilkService struct {
	milkRepo repository.MilkUsageRepository
}

// NewMilkService creates a new milk service
func NewMilkService(milkRepo repository.MilkUsageRepository) *MilkService {
	return &MilkService{milkRepo: milkRepo}
}

// RecordUsageInput represents the record milk usage input
type RecordUsageInput struct {
	Date      string
	Purchased float64
	Used      float64
}

// RecordUsage upserts the tally for a date. The remaining balance carries
// over from the most recent earlier date: previous remaining + purchased -
// used. Re-recording a date replaces its row and re-derives the balance.
func (s *MilkService) RecordUsage(ctx context.Context, input *RecordUsageInput) (*entity.MilkUsage, error) {
	date := input.Date
	if date == "" {
		date = entity.Today()
	}
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	if input.Purchased < 0 || input.Used < 0 {
		return nil, apperror.NewBadRequestError("Quantities cannot be negative")
	}

	carried := 0.0
	previous, err := s.milkRepo.GetLatestBefore(ctx, date)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		carried = previous.Remaining
	}

	usage, err := s.milkRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		usage = &entity.MilkUsage{Date: date}
	}
	usage.Purchased = input.Purchased
	usage.Used = input.Used
	usage.Remaining = carried + input.Purchased - input.Used

	if err := s.milkRepo.Upsert(ctx, usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// GetByDate retrieves the tally for a date
func (s *MilkService) GetByDate(ctx context.Context, date string) (*entity.MilkUsage, error) {
	usage, err := s.milkRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		return nil, apperror.NewNotFoundError("Milk usage")
	}
	return usage, nil
}

// List returns tallies for the period, newest date first
func (s *MilkService) List(ctx context.Context, p period.Period) ([]entity.MilkUsage, error) {
	if p == period.PeriodOverall {
		return s.milkRepo.List(ctx)
	}
	start, end := period.DateBounds(p, time.Now())
	return s.milkRepo.ListRange(ctx, start, end)
}
