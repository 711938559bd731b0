package request

// AddExpenseRequest represents an expense creation request
type AddExpenseRequest struct {
	Date          string  `json:"date" binding:"omitempty,len=10"`
	ExpenseType   string  `json:"expense_type" binding:"required,max=100"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	VendorName    *string `json:"vendor_name"`
	Notes         *string `json:"notes"`
}

// ExpenseFilterRequest represents expense list filter parameters
type ExpenseFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
