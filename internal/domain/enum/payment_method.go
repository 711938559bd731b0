package enum

// PaymentMethod is how money changed hands for an expense, sale or salary.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodOnline PaymentMethod = "Online"
)

// IsValid reports whether the value is a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodOnline
}
