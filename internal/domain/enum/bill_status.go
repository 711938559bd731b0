package enum

// BillStatus is the settlement state of a pending vendor bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPaid    BillStatus = "Paid"
)

// IsValid reports whether the value is a known bill status
func (s BillStatus) IsValid() bool {
	return s == BillStatusPending || s == BillStatusPaid
}
