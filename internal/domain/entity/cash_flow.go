package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the calendar-date key format used across the ledger.
// Dates are stored as plain strings so the relational and document backends
// share one representation and range filters stay lexicographic.
const DateLayout = "2006-01-02"

// Today returns the current date key.
func Today() string {
	return time.Now().Format(DateLayout)
}

// DailyCashFlow is the single ledger row for one calendar date.
//
// YesterdayCash, CashSales, OnlineSales, ClosingCash and Notes are
// user-entered. CashExpenses, OnlineExpenses and TotalExpenses are derived
// from the date's expense rows. DailySales, DailyProfit and
// ExpectedClosingCash are derived from the formulas in Recalculate and are
// never written independently.
type DailyCashFlow struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date                string          `gorm:"size:10;uniqueIndex;not null" json:"date"`
	YesterdayCash       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"yesterday_cash"`
	CashSales           decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cash_sales"`
	OnlineSales         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"online_sales"`
	CashExpenses        decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cash_expenses"`
	OnlineExpenses      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"online_expenses"`
	TotalExpenses       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_expenses"`
	ClosingCash         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"closing_cash"`
	DailySales          decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"daily_sales"`
	DailyProfit         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"daily_profit"`
	ExpectedClosingCash decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"expected_closing_cash"`
	Notes               *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new cash-flow row
func (d *DailyCashFlow) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyCashFlow model
func (DailyCashFlow) TableName() string {
	return "daily_cash_flow"
}

// Recalculate re-derives the formula fields from the stored inputs:
//
//	daily_sales           = closing_cash + online_sales + total_expenses - yesterday_cash
//	daily_profit          = daily_sales - total_expenses
//	expected_closing_cash = yesterday_cash + cash_sales - cash_expenses
func (d *DailyCashFlow) Recalculate() {
	d.TotalExpenses = d.CashExpenses.Add(d.OnlineExpenses)
	d.DailySales = d.ClosingCash.Add(d.OnlineSales).Add(d.TotalExpenses).Sub(d.YesterdayCash)
	d.DailyProfit = d.DailySales.Sub(d.TotalExpenses)
	d.ExpectedClosingCash = d.YesterdayCash.Add(d.CashSales).Sub(d.CashExpenses)
}

// HasCashMismatch reports whether the physically counted closing cash diverges
// from the derived expectation. A mismatch is reportable, not an error.
func (d *DailyCashFlow) HasCashMismatch() bool {
	return !d.ClosingCash.Equal(d.ExpectedClosingCash)
}
