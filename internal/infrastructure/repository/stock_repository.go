package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, item *entity.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.db.WithContext(ctx).Preload("Supplier").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) Update(ctx context.Context, item *entity.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *stockRepository) List(ctx context.Context) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Order("category ASC, product_name ASC").
		Find(&items).Error
	return items, err
}

// ApplyTransaction applies a stock movement in one database transaction,
// locking the item row so concurrent movements against the same item cannot
// lose an update.
func (r *stockRepository) ApplyTransaction(ctx context.Context, txn *entity.StockTransaction) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", txn.StockID).Error; err != nil {
			return err
		}

		switch txn.TransactionType {
		case enum.TransactionTypePurchase:
			item.PurchasedQty += txn.Quantity
		case enum.TransactionTypeUse:
			item.UsedSoldQty += txn.Quantity
		}
		item.RecalculateClosing()

		if err := tx.Model(&entity.StockItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"purchased_qty": item.PurchasedQty,
				"used_sold_qty": item.UsedSoldQty,
				"closing_stock": item.ClosingStock,
			}).Error; err != nil {
			return err
		}
		return tx.Create(txn).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) DeleteWithTransactions(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.StockTransaction{}, "stock_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.StockItem{}, "id = ?", id).Error
	})
}

func (r *stockRepository) ListTransactions(ctx context.Context, stockID uuid.UUID, limit int) ([]entity.StockTransaction, error) {
	var txns []entity.StockTransaction
	query := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&txns).Error
	return txns, err
}

func (r *stockRepository) ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error) {
	var txns []entity.StockTransaction
	query := r.db.WithContext(ctx).Model(&entity.StockTransaction{})
	if !start.IsZero() {
		query = query.Where("created_at >= ?", start)
	}
	err := query.Where("created_at < ?", end).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}
