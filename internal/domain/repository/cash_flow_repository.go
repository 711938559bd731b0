package repository

import (
	"context"

	"github.com/teabook/teabook-api/internal/domain/entity"
)

// CashFlowRepository defines data operations for daily cash-flow rows.
// Rows are keyed by calendar date; at most one row exists per date.
type CashFlowRepository interface {
	Create(ctx context.Context, flow *entity.DailyCashFlow) error
	Update(ctx context.Context, flow *entity.DailyCashFlow) error
	// GetByDate returns nil, nil when no row exists for the date.
	GetByDate(ctx context.Context, date string) (*entity.DailyCashFlow, error)
	// ListRange returns rows with start <= date <= end, newest first.
	ListRange(ctx context.Context, start, end string) ([]entity.DailyCashFlow, error)
	ListAll(ctx context.Context) ([]entity.DailyCashFlow, error)
	// DeleteByDate removes only the cash-flow row. Expense rows for the date
	// are left untouched.
	DeleteByDate(ctx context.Context, date string) error
}
