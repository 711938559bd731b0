package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/pkg/pagination"
)

// ExpenseFilterParams contains filtering parameters for expense queries.
// Empty bounds leave that side of the range open.
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  string
	EndDate    string
}

// ExpenseRepository defines data operations for expense rows.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	// GetByID returns nil, nil when the expense does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByDate returns all expenses with the exact date key, used by the
	// aggregate recompute after every mutation.
	ListByDate(ctx context.Context, date string) ([]entity.Expense, error)
	// List returns a page of expenses in the filter range, newest date
	// first, along with the total row count for the filter.
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	// ListRange returns all expenses with start <= date <= end, unpaged.
	// Empty bounds leave that side of the range open.
	ListRange(ctx context.Context, start, end string) ([]entity.Expense, error)
}
