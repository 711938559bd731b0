package enum

// PaymentType classifies a salary payment. A Salary payment settles wages for
// the month; an Advance increases the employee's outstanding advance balance.
type PaymentType string

const (
	PaymentTypeSalary  PaymentType = "Salary"
	PaymentTypeAdvance PaymentType = "Advance"
)

// IsValid reports whether the value is a known payment type
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeSalary || t == PaymentTypeAdvance
}
