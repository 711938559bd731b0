package request

import "github.com/google/uuid"

// AddStockItemRequest represents a stock item creation request
type AddStockItemRequest struct {
	ProductName       string     `json:"product_name" binding:"required,min=2,max=255"`
	Category          string     `json:"category" binding:"required,max=100"`
	Vendor            *string    `json:"vendor"`
	SupplierID        *uuid.UUID `json:"supplier_id"`
	Unit              string     `json:"unit" binding:"required,max=50"`
	OpeningStock      float64    `json:"opening_stock" binding:"min=0"`
	PurchasePrice     float64    `json:"purchase_price" binding:"min=0"`
	SellingPrice      float64    `json:"selling_price" binding:"min=0"`
	LowStockThreshold float64    `json:"low_stock_threshold" binding:"min=0"`
	ExpiryDate        *string    `json:"expiry_date"`
}

// UpdateStockItemRequest represents a stock item metadata update request.
// Quantities are only changed through movements.
type UpdateStockItemRequest struct {
	ProductName       *string    `json:"product_name" binding:"omitempty,min=2,max=255"`
	Category          *string    `json:"category" binding:"omitempty,max=100"`
	Vendor            *string    `json:"vendor"`
	SupplierID        *uuid.UUID `json:"supplier_id"`
	Unit              *string    `json:"unit" binding:"omitempty,max=50"`
	PurchasePrice     *float64   `json:"purchase_price" binding:"omitempty,min=0"`
	SellingPrice      *float64   `json:"selling_price" binding:"omitempty,min=0"`
	LowStockThreshold *float64   `json:"low_stock_threshold" binding:"omitempty,min=0"`
	ExpiryDate        *string    `json:"expiry_date"`
}

// StockMovementRequest represents a purchase or use movement request
type StockMovementRequest struct {
	TransactionType string  `json:"transaction_type" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required,gt=0"`
	Notes           *string `json:"notes"`
}
