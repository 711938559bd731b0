package request

// SupplierRequest represents a supplier create/update request
type SupplierRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

// BillRequest represents a pending bill create/update request
type BillRequest struct {
	VendorName string  `json:"vendor_name" binding:"required,min=2,max=255"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	DueDate    string  `json:"due_date" binding:"required,len=10"`
	Notes      *string `json:"notes"`
}

// RecordMilkUsageRequest represents a milk tally upsert request
type RecordMilkUsageRequest struct {
	Date      string  `json:"date" binding:"omitempty,len=10"`
	Purchased float64 `json:"purchased" binding:"min=0"`
	Used      float64 `json:"used" binding:"min=0"`
}
