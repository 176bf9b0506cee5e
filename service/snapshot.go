package service

import (
	"github.com/shopspring/decimal"

	"debt-planner/domain"
	"debt-planner/money"
)

var (
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(monthsPerYear)
	monthFactor = hundred.Mul(twelve)
)

// debtSnapshot is the engine's mutable copy of one debt. Only balance
// changes between rounds.
type debtSnapshot struct {
	id             string
	name           string
	index          int
	balance        money.Money
	annualRate     decimal.Decimal
	minimumPayment money.Money
	priority       int
}

func newSnapshots(debts []domain.Debt, strategy domain.Strategy) []*debtSnapshot {
	custom, _ := strategy.(domain.CustomStrategy)
	snaps := make([]*debtSnapshot, 0, len(debts))
	for i, d := range debts {
		snaps = append(snaps, &debtSnapshot{
			id:             d.ID,
			name:           d.Name,
			index:          i,
			balance:        money.FromFloat(d.Balance),
			annualRate:     decimal.NewFromFloat(d.InterestRate),
			minimumPayment: money.FromFloat(d.MinimumPayment),
			priority:       custom.PriorityFor(d),
		})
	}
	return snaps
}

func (s *debtSnapshot) active() bool {
	return s.balance.IsPositive()
}

// monthlyRate is annualRate / 100 / 12.
func monthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(monthFactor)
}

// monthlyInterest is the interest accrued on the current balance this
// month, rounded to the cent.
func (s *debtSnapshot) monthlyInterest() money.Money {
	return money.New(s.balance.Decimal().Mul(s.annualRate).Div(monthFactor)).RoundCents()
}
