package domain

// DebtCategory tags a debt for default-rate suggestions. The payoff
// engine itself ignores it.
type DebtCategory string

const (
	CategoryCreditCard   DebtCategory = "credit_card"
	CategoryStudentLoan  DebtCategory = "student_loan"
	CategoryAutoLoan     DebtCategory = "auto_loan"
	CategoryPersonalLoan DebtCategory = "personal_loan"
	CategoryMedical      DebtCategory = "medical"
	CategoryMortgage     DebtCategory = "mortgage"
	CategoryOther        DebtCategory = "other"
)

// suggestedRates are annual percentage rates offered as form defaults.
var suggestedRates = map[DebtCategory]float64{
	CategoryCreditCard:   22.99,
	CategoryStudentLoan:  5.5,
	CategoryAutoLoan:     7.5,
	CategoryPersonalLoan: 12,
	CategoryMedical:      0,
	CategoryMortgage:     6.5,
	CategoryOther:        10,
}

// SuggestedRate returns the default annual rate for the category and
// whether the category is known.
func (c DebtCategory) SuggestedRate() (float64, bool) {
	rate, ok := suggestedRates[c]
	return rate, ok
}

// Debt is the caller-owned input record. The engine never mutates it.
type Debt struct {
	ID             string       `json:"id"`
	Name           string       `json:"name" validate:"notblank"`
	Category       DebtCategory `json:"category,omitempty"`
	Balance        float64      `json:"balance" validate:"gt=0"`
	InterestRate   float64      `json:"interestRate" validate:"gte=0,lte=100"`
	MinimumPayment float64      `json:"minimumPayment" validate:"gt=0,ltefield=Balance"`
	Priority       *int         `json:"priority,omitempty"`
}

// PriorityOrZero returns the manual priority, or 0 when unset.
func (d Debt) PriorityOrZero() int {
	if d.Priority == nil {
		return 0
	}
	return *d.Priority
}
