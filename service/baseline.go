package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
	"debt-planner/money"
)

// lnPrecision is the number of decimal places used for logarithms and
// compound growth factors.
const lnPrecision int32 = 18

var ErrNeverAmortizes = errors.New("minimum payment does not cover monthly interest")

// Baseline is what a single debt costs when paid at its minimum alone.
type Baseline struct {
	Months   int
	Interest decimal.Decimal
}

// BaselineInterest computes, without iterating month by month, the total
// interest a debt accrues when only its minimum payment is made.
//
//	n = ceil(-ln(1 - B*r/P) / ln(1 + r))
//
// The last payment is usually short, so instead of P*n - B the interest is
// P*(n-1) + F - B, where F is the closed-form balance left after n-1
// payments plus that month's interest.
func BaselineInterest(d domain.Debt) (Baseline, error) {
	balance := money.FromFloat(d.Balance).Decimal()
	payment := money.FromFloat(d.MinimumPayment).Decimal()
	if !balance.IsPositive() {
		return Baseline{Interest: decimal.Zero}, nil
	}
	if !payment.IsPositive() {
		return Baseline{}, fmt.Errorf("%w: debt %s has no minimum payment", ErrNeverAmortizes, d.ID)
	}

	r := monthlyRate(decimal.NewFromFloat(d.InterestRate))
	if r.IsZero() {
		months := balance.DivRound(payment, lnPrecision).Ceil().IntPart()
		return Baseline{Months: int(months), Interest: decimal.Zero}, nil
	}

	one := decimal.NewFromInt(1)
	coverage := one.Sub(balance.Mul(r).DivRound(payment, lnPrecision))
	if !coverage.IsPositive() {
		return Baseline{}, fmt.Errorf("%w: debt %s", ErrNeverAmortizes, d.ID)
	}

	lnCoverage, err := coverage.Ln(lnPrecision)
	if err != nil {
		return Baseline{}, fmt.Errorf("baseline for debt %s: %w", d.ID, err)
	}
	lnGrowth, err := one.Add(r).Ln(lnPrecision)
	if err != nil {
		return Baseline{}, fmt.Errorf("baseline for debt %s: %w", d.ID, err)
	}
	months := int(lnCoverage.Neg().DivRound(lnGrowth, lnPrecision).Ceil().IntPart())
	if months < 1 {
		months = 1
	}

	residual, err := balanceAfter(balance, payment, r, months-1)
	if err != nil {
		return Baseline{}, err
	}
	// ln rounding can overshoot by one month on an exact boundary.
	if !residual.IsPositive() && months > 1 {
		months--
		if residual, err = balanceAfter(balance, payment, r, months-1); err != nil {
			return Baseline{}, err
		}
	}

	final := residual.Mul(one.Add(r))
	interest := payment.Mul(decimal.NewFromInt(int64(months - 1))).Add(final).Sub(balance)
	return Baseline{
		Months:   months,
		Interest: decimal.Max(interest, decimal.Zero).Round(money.CentPlaces),
	}, nil
}

// balanceAfter is B(1+r)^k - P((1+r)^k - 1)/r.
func balanceAfter(balance, payment, r decimal.Decimal, k int) (decimal.Decimal, error) {
	growth, err := decimal.NewFromInt(1).Add(r).PowInt32(int32(k))
	if err != nil {
		return decimal.Zero, fmt.Errorf("compound growth: %w", err)
	}
	growth = growth.Round(lnPrecision)
	paidDown := payment.Mul(growth.Sub(decimal.NewFromInt(1))).DivRound(r, lnPrecision)
	return balance.Mul(growth).Sub(paidDown), nil
}
