package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teabook/teabook-api/internal/domain/entity"
)

// StockRepository defines data operations for stock items and their
// append-only transaction log.
type StockRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	// GetByID returns nil, nil when the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	// List returns items ordered by category then product name.
	List(ctx context.Context) ([]entity.StockItem, error)
	// ApplyTransaction atomically applies a stock movement: it reads the
	// item's running sums, increments the counter matching the transaction
	// type, re-derives the closing balance, writes the item back and appends
	// the transaction row — all in one store transaction where the backend
	// supports it, so a movement is never lost or double-applied. Returns
	// the updated item, or nil, nil when the stock item does not exist.
	ApplyTransaction(ctx context.Context, txn *entity.StockTransaction) (*entity.StockItem, error)
	// DeleteWithTransactions removes the item and its whole transaction log.
	DeleteWithTransactions(ctx context.Context, id uuid.UUID) error
	// ListTransactions returns the item's movements newest first.
	ListTransactions(ctx context.Context, stockID uuid.UUID, limit int) ([]entity.StockTransaction, error)
	// ListTransactionsBetween returns all movements created in [start, end),
	// across items, for usage analytics.
	ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error)
}

// SupplierRepository defines data operations for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	// GetByID returns nil, nil when the supplier does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns suppliers ordered by name.
	List(ctx context.Context) ([]entity.Supplier, error)
}
