package enum

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeUse      TransactionType = "use"
)

// IsValid reports whether the value is a known transaction type
func (t TransactionType) IsValid() bool {
	return t == TransactionTypePurchase || t == TransactionTypeUse
}
