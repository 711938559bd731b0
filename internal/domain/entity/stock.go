package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockItem is one tracked inventory product. PurchasedQty and UsedSoldQty are
// running sums over the item's transaction log; ClosingStock is always
// opening + purchased - used and is only written by a transaction recompute.
type StockItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductName       string          `gorm:"size:255;not null" json:"product_name"`
	Category          string          `gorm:"size:100;not null;index" json:"category"`
	Vendor            *string         `gorm:"size:255" json:"vendor,omitempty"`
	SupplierID        *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Unit              string          `gorm:"size:50;not null" json:"unit"`
	OpeningStock      float64         `gorm:"default:0" json:"opening_stock"`
	PurchasedQty      float64         `gorm:"default:0" json:"purchased_qty"`
	UsedSoldQty       float64         `gorm:"default:0" json:"used_sold_qty"`
	ClosingStock      float64         `gorm:"default:0" json:"closing_stock"`
	PurchasePrice     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"purchase_price"`
	SellingPrice      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"selling_price"`
	LowStockThreshold float64         `gorm:"default:10" json:"low_stock_threshold"`
	ExpiryDate        *string         `gorm:"size:10" json:"expiry_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	Supplier     *Supplier          `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Transactions []StockTransaction `gorm:"foreignKey:StockID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock item
func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockItem model
func (StockItem) TableName() string {
	return "stock"
}

// RecalculateClosing re-derives the closing balance from the running sums.
func (s *StockItem) RecalculateClosing() {
	s.ClosingStock = s.OpeningStock + s.PurchasedQty - s.UsedSoldQty
}

// IsLowStock reports whether the closing balance is at or below the
// configured threshold.
func (s *StockItem) IsLowStock() bool {
	return s.ClosingStock <= s.LowStockThreshold
}

// IsExpiringWithin reports whether the item expires before now+window.
// Items without an expiry date never expire.
func (s *StockItem) IsExpiringWithin(now time.Time, window time.Duration) bool {
	if s.ExpiryDate == nil || *s.ExpiryDate == "" {
		return false
	}
	expiry, err := time.Parse(DateLayout, *s.ExpiryDate)
	if err != nil {
		return false
	}
	return expiry.Before(now.Add(window))
}

// StockTransaction is one append-only stock movement. Rows are never edited
// or individually deleted; the running sums on StockItem are maintained in
// the same store transaction that appends the row.
type StockTransaction struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	StockID         uuid.UUID            `gorm:"type:uuid;not null;index" json:"stock_id"`
	TransactionType enum.TransactionType `gorm:"size:20;not null" json:"transaction_type"`
	Quantity        float64              `gorm:"not null" json:"quantity"`
	Notes           *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`

	// Relationships
	Stock StockItem `gorm:"foreignKey:StockID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock transaction
func (t *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransaction model
func (StockTransaction) TableName() string {
	return "stock_transactions"
}
