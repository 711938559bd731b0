package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/pkg/apperror"
	"github.com/teabook/teabook-api/pkg/period"
)

// expiryWindow is how far ahead the expiring-soon alert and the expiry-check
// job look.
const expiryWindow = 7 * 24 * time.Hour

// StockService handles inventory items and their movement log
type StockService struct {
	stockRepo    repository.StockRepository
	supplierRepo repository.SupplierRepository
	log          *logrus.Logger
}

// NewStockService creates a new stock service
func NewStockService(
	stockRepo repository.StockRepository,
	supplierRepo repository.SupplierRepository,
	log *logrus.Logger,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

// AddItemInput represents the add stock item input
type AddItemInput struct {
	ProductName       string
	Category          string
	Vendor            *string
	SupplierID        *uuid.UUID
	Unit              string
	OpeningStock      float64
	PurchasePrice     decimal.Decimal
	SellingPrice      decimal.Decimal
	LowStockThreshold float64
	ExpiryDate        *string
}

// AddItem creates a new stock item with its closing balance seeded from the
// opening stock.
func (s *StockService) AddItem(ctx context.Context, input *AddItemInput) (*entity.StockItem, error) {
	if input.ProductName == "" || input.Category == "" || input.Unit == "" {
		return nil, apperror.NewBadRequestError("Product name, category and unit are required")
	}
	if input.OpeningStock < 0 {
		return nil, apperror.NewBadRequestError("Opening stock cannot be negative")
	}
	if input.ExpiryDate != nil && *input.ExpiryDate != "" {
		if _, err := time.Parse(entity.DateLayout, *input.ExpiryDate); err != nil {
			return nil, apperror.NewBadRequestError("Invalid expiry date, expected YYYY-MM-DD")
		}
	}
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	item := &entity.StockItem{
		ProductName:       input.ProductName,
		Category:          input.Category,
		Vendor:            input.Vendor,
		SupplierID:        input.SupplierID,
		Unit:              input.Unit,
		OpeningStock:      input.OpeningStock,
		PurchasePrice:     input.PurchasePrice,
		SellingPrice:      input.SellingPrice,
		LowStockThreshold: input.LowStockThreshold,
		ExpiryDate:        input.ExpiryDate,
	}
	if item.LowStockThreshold == 0 {
		item.LowStockThreshold = 10
	}
	item.RecalculateClosing()
	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput represents the update stock item input; nil fields are
// left unchanged. Quantities are not editable here, only through movements.
type UpdateItemInput struct {
	ProductName       *string
	Category          *string
	Vendor            *string
	SupplierID        *uuid.UUID
	Unit              *string
	PurchasePrice     *decimal.Decimal
	SellingPrice      *decimal.Decimal
	LowStockThreshold *float64
	ExpiryDate        *string
}

// UpdateItem updates a stock item's metadata and prices
func (s *StockService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.StockItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ProductName != nil {
		item.ProductName = *input.ProductName
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Vendor != nil {
		item.Vendor = input.Vendor
	}
	if input.SupplierID != nil {
		item.SupplierID = input.SupplierID
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.PurchasePrice != nil {
		item.PurchasePrice = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		item.SellingPrice = *input.SellingPrice
	}
	if input.LowStockThreshold != nil {
		item.LowStockThreshold = *input.LowStockThreshold
	}
	if input.ExpiryDate != nil {
		if *input.ExpiryDate != "" {
			if _, err := time.Parse(entity.DateLayout, *input.ExpiryDate); err != nil {
				return nil, apperror.NewBadRequestError("Invalid expiry date, expected YYYY-MM-DD")
			}
		}
		item.ExpiryDate = input.ExpiryDate
	}
	if err := s.stockRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateStockInput represents a stock movement input
type UpdateStockInput struct {
	StockID         uuid.UUID
	TransactionType enum.TransactionType
	Quantity        float64
	Notes           *string
}

// UpdateStock applies a purchase or use movement to an item. The counter
// increment, closing recompute and log append happen in one store
// transaction so concurrent movements on the same item never lose an update.
func (s *StockService) UpdateStock(ctx context.Context, input *UpdateStockInput) (*entity.StockItem, error) {
	if !input.TransactionType.IsValid() {
		return nil, apperror.NewBadRequestError("Transaction type must be purchase or use")
	}
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	txn := &entity.StockTransaction{
		StockID:         input.StockID,
		TransactionType: input.TransactionType,
		Quantity:        input.Quantity,
		Notes:           input.Notes,
	}
	item, err := s.stockRepo.ApplyTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}
	return item, nil
}

// GetItem retrieves a stock item by ID
func (s *StockService) GetItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	item, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}
	return item, nil
}

// ListItems returns all stock items ordered by category then product name
func (s *StockService) ListItems(ctx context.Context) ([]entity.StockItem, error) {
	return s.stockRepo.List(ctx)
}

// DeleteItem removes a stock item and its whole movement log. Expenses and
// cash flow are unaffected.
func (s *StockService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.stockRepo.DeleteWithTransactions(ctx, id)
}

// ListTransactions returns an item's movements newest first, capped at limit
// (0 means all).
func (s *StockService) ListTransactions(ctx context.Context, stockID uuid.UUID, limit int) ([]entity.StockTransaction, error) {
	if _, err := s.GetItem(ctx, stockID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListTransactions(ctx, stockID, limit)
}

// StockAlerts carries the derived alert states, computed at read time.
type StockAlerts struct {
	LowStock     []entity.StockItem `json:"low_stock"`
	ExpiringSoon []entity.StockItem `json:"expiring_soon"`
}

// GetAlerts lists items at or below their low-stock threshold and items
// expiring within the next seven days.
func (s *StockService) GetAlerts(ctx context.Context) (*StockAlerts, error) {
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	alerts := &StockAlerts{
		LowStock:     []entity.StockItem{},
		ExpiringSoon: []entity.StockItem{},
	}
	for i := range items {
		if items[i].IsLowStock() {
			alerts.LowStock = append(alerts.LowStock, items[i])
		}
		if items[i].IsExpiringWithin(now, expiryWindow) {
			alerts.ExpiringSoon = append(alerts.ExpiringSoon, items[i])
		}
	}
	return alerts, nil
}

// ExpiringItem is one row of the expiry-check report.
type ExpiringItem struct {
	Item     entity.StockItem `json:"item"`
	DaysLeft int              `json:"days_left"`
}

// RunExpiryCheck is the triggered expiry job: it reports items already
// expired or expiring within the window, with negative days for expired
// ones. Invoked by an external scheduler, never implicitly at startup.
func (s *StockService) RunExpiryCheck(ctx context.Context) ([]ExpiringItem, error) {
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	report := []ExpiringItem{}
	for i := range items {
		if !items[i].IsExpiringWithin(now, expiryWindow) {
			continue
		}
		expiry, err := time.Parse(entity.DateLayout, *items[i].ExpiryDate)
		if err != nil {
			continue
		}
		daysLeft := int(expiry.Sub(now).Hours() / 24)
		report = append(report, ExpiringItem{Item: items[i], DaysLeft: daysLeft})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].DaysLeft < report[j].DaysLeft })
	s.log.WithField("expiring_items", len(report)).Info("expiry check completed")
	return report, nil
}

// ProductUsage is one row of the usage aggregation.
type ProductUsage struct {
	StockID     uuid.UUID       `json:"stock_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    float64         `json:"quantity"`
	UsageCost   decimal.Decimal `json:"usage_cost"`
}

// UsageStats summarizes use-type movements over a reporting period.
type UsageStats struct {
	Period    period.Period   `json:"period"`
	Products  []ProductUsage  `json:"products"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// GetUsageStats sums use-type movement quantities per product over the
// period and costs them at the item's current purchase price. Price changes
// after a movement are not tracked, so the cost is an approximation.
func (s *StockService) GetUsageStats(ctx context.Context, p period.Period) (*UsageStats, error) {
	start, end := period.TimeBounds(p, time.Now())
	txns, err := s.stockRepo.ListTransactionsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.StockItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	usage := make(map[uuid.UUID]*ProductUsage)
	for i := range txns {
		if txns[i].TransactionType != enum.TransactionTypeUse {
			continue
		}
		item, ok := byID[txns[i].StockID]
		if !ok {
			continue // item deleted after the movement
		}
		row, ok := usage[item.ID]
		if !ok {
			row = &ProductUsage{
				StockID:     item.ID,
				ProductName: item.ProductName,
				Unit:        item.Unit,
				UsageCost:   decimal.Zero,
			}
			usage[item.ID] = row
		}
		row.Quantity += txns[i].Quantity
	}

	stats := &UsageStats{
		Period:    p,
		Products:  make([]ProductUsage, 0, len(usage)),
		TotalCost: decimal.Zero,
	}
	for id, row := range usage {
		row.UsageCost = byID[id].PurchasePrice.Mul(decimal.NewFromFloat(row.Quantity))
		stats.TotalCost = stats.TotalCost.Add(row.UsageCost)
		stats.Products = append(stats.Products, *row)
	}
	sort.Slice(stats.Products, func(i, j int) bool {
		return stats.Products[i].UsageCost.GreaterThan(stats.Products[j].UsageCost)
	})
	return stats, nil
}

// CategoryValuation is the stock value held in one category.
type CategoryValuation struct {
	Category      string          `json:"category"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	SaleValue     decimal.Decimal `json:"sale_value"`
}

// StockValuation values the closing balances of all items.
type StockValuation struct {
	TotalPurchaseValue decimal.Decimal     `json:"total_purchase_value"`
	TotalSaleValue     decimal.Decimal     `json:"total_sale_value"`
	ItemCount          int                 `json:"item_count"`
	ByCategory         []CategoryValuation `json:"by_category"`
}

// GetValuation values every item's closing balance at its purchase and
// selling price, with a per-category breakdown.
func (s *StockService) GetValuation(ctx context.Context) (*StockValuation, error) {
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	valuation := &StockValuation{
		TotalPurchaseValue: decimal.Zero,
		TotalSaleValue:     decimal.Zero,
		ItemCount:          len(items),
	}
	byCategory := make(map[string]*CategoryValuation)
	for i := range items {
		qty := decimal.NewFromFloat(items[i].ClosingStock)
		purchase := items[i].PurchasePrice.Mul(qty)
		sale := items[i].SellingPrice.Mul(qty)
		valuation.TotalPurchaseValue = valuation.TotalPurchaseValue.Add(purchase)
		valuation.TotalSaleValue = valuation.TotalSaleValue.Add(sale)

		row, ok := byCategory[items[i].Category]
		if !ok {
			row = &CategoryValuation{
				Category:      items[i].Category,
				PurchaseValue: decimal.Zero,
				SaleValue:     decimal.Zero,
			}
			byCategory[items[i].Category] = row
		}
		row.PurchaseValue = row.PurchaseValue.Add(purchase)
		row.SaleValue = row.SaleValue.Add(sale)
	}
	valuation.ByCategory = make([]CategoryValuation, 0, len(byCategory))
	for _, row := range byCategory {
		valuation.ByCategory = append(valuation.ByCategory, *row)
	}
	sort.Slice(valuation.ByCategory, func(i, j int) bool {
		return valuation.ByCategory[i].Category < valuation.ByCategory[j].Category
	})
	return valuation, nil
}
