package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/teabook/teabook-api/internal/domain/entity"
)

// PendingBillRepository defines data operations for pending vendor bills.
type PendingBillRepository interface {
	Create(ctx context.Context, bill *entity.PendingBill) error
	// GetByID returns nil, nil when the bill does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error)
	Update(ctx context.Context, bill *entity.PendingBill) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns bills ordered by due date ascending.
	List(ctx context.Context) ([]entity.PendingBill, error)
}

// MilkUsageRepository defines data operations for the per-date milk tally.
type MilkUsageRepository interface {
	// Upsert inserts or replaces the row for usage.Date.
	Upsert(ctx context.Context, usage *entity.MilkUsage) error
	// GetByDate returns nil, nil when no row exists for the date.
	GetByDate(ctx context.Context, date string) (*entity.MilkUsage, error)
	// GetLatestBefore returns the most recent row with date < the given date,
	// or nil, nil when none exists. Supplies the carried-over remaining.
	GetLatestBefore(ctx context.Context, date string) (*entity.MilkUsage, error)
	// List returns rows newest date first.
	List(ctx context.Context) ([]entity.MilkUsage, error)
	// ListRange returns rows with start <= date <= end, newest first.
	ListRange(ctx context.Context, start, end string) ([]entity.MilkUsage, error)
}

// IdempotencyRepository defines data operations for idempotency keys.
type IdempotencyRepository interface {
	// Get returns nil, nil when the key is unknown or expired.
	Get(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Save(ctx context.Context, record *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
