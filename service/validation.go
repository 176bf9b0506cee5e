package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"debt-planner/domain"
	"debt-planner/money"
)

// PayoffValidator checks a PayoffInput before it reaches the engine and
// reports every violated rule at once.
type PayoffValidator struct {
	validate *validator.Validate
}

func NewPayoffValidator() *PayoffValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation only fails for an empty or reserved tag.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &PayoffValidator{validate: v}
}

// Validate returns nil or a domain.ValidationErrors.
func (v *PayoffValidator) Validate(input domain.PayoffInput) error {
	var errs domain.ValidationErrors

	if err := v.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating payoff input: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, domain.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: messageFor(fe),
			})
		}
	}

	if len(input.Debts) > MaxDebtsPerRequest {
		errs = append(errs, domain.FieldError{
			Field:   "debts",
			Message: fmt.Sprintf("must contain at most %d debts", MaxDebtsPerRequest),
		})
	}

	seen := make(map[string]bool, len(input.Debts))
	pool := money.FromFloat(input.ExtraPayment)
	accrual := money.Zero()
	for i, d := range input.Debts {
		prefix := fmt.Sprintf("debts[%d]", i)
		if d.ID != "" {
			if seen[d.ID] {
				errs = append(errs, domain.FieldError{Field: prefix + ".id", Message: "duplicate debt id " + d.ID})
			}
			seen[d.ID] = true
		}
		if d.Balance > MaxDebtAmount {
			errs = append(errs, domain.FieldError{
				Field:   prefix + ".balance",
				Message: fmt.Sprintf("must be at most %.2f", MaxDebtAmount),
			})
		}
		// The engine works in whole cents.
		if d.Balance > 0 && !money.FromFloat(d.Balance).IsPositive() {
			errs = append(errs, domain.FieldError{Field: prefix + ".balance", Message: "must be at least 0.01"})
		}
		if d.MinimumPayment > 0 && !money.FromFloat(d.MinimumPayment).IsPositive() {
			errs = append(errs, domain.FieldError{Field: prefix + ".minimumPayment", Message: "must be at least 0.01"})
		}
		if d.Balance > 0 && d.MinimumPayment > 0 {
			pool = pool.Add(money.FromFloat(d.MinimumPayment))
			accrual = accrual.Add(firstMonthInterest(d))
		}
	}

	if accrual.IsPositive() && !pool.GreaterThan(accrual) {
		errs = append(errs, domain.FieldError{
			Field:   "debts",
			Message: fmt.Sprintf("total monthly payment of %s must exceed the monthly interest of %s", pool, accrual),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// firstMonthInterest is the interest d accrues before its first payment.
func firstMonthInterest(d domain.Debt) money.Money {
	balance := money.FromFloat(d.Balance).Decimal()
	return money.New(balance.Mul(decimal.NewFromFloat(d.InterestRate)).Div(monthFactor)).RoundCents()
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "ltefield":
		return "must not exceed the balance"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return "at least " + fe.Param() + " item is required"
		}
		return "must be at least " + fe.Param()
	}
	return "is invalid"
}
