package request

// SaveDailyEntryRequest represents a daily ledger entry upsert request.
// YesterdayCash is the opening cash carried in from the previous day.
type SaveDailyEntryRequest struct {
	Date          string  `json:"date" binding:"omitempty,len=10"`
	YesterdayCash float64 `json:"yesterday_cash" binding:"min=0"`
	CashSales     float64 `json:"cash_sales" binding:"min=0"`
	OnlineSales   float64 `json:"online_sales" binding:"min=0"`
	ClosingCash   float64 `json:"closing_cash" binding:"min=0"`
	Notes         *string `json:"notes"`
}

// DateRangeRequest represents a date range filter; empty bounds are open
type DateRangeRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
