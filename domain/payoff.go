package domain

import "time"

// PayoffInput is the request for a payoff plan.
type PayoffInput struct {
	Debts        []Debt         `json:"debts" validate:"min=1,dive"`
	ExtraPayment float64        `json:"extraPayment" validate:"gte=0"`
	Strategy     StrategyKind   `json:"strategy" validate:"omitempty,oneof=avalanche snowball custom"`
	Priorities   map[string]int `json:"priorities,omitempty"`
	StartDate    *time.Time     `json:"startDate,omitempty"`
}

// ScheduleEntry is one (debt, month) row while the debt had a balance.
type ScheduleEntry struct {
	Month           int       `json:"month"`
	Date            time.Time `json:"date"`
	DebtID          string    `json:"debtId"`
	DebtName        string    `json:"debtName"`
	StartingBalance float64   `json:"startingBalance"`
	Payment         float64   `json:"payment"`
	Interest        float64   `json:"interest"`
	Principal       float64   `json:"principal"`
	EndingBalance   float64   `json:"endingBalance"`
	Completed       bool      `json:"completed"`
}

type PayoffResult struct {
	Strategy            StrategyKind    `json:"strategy"`
	TotalDebt           float64         `json:"totalDebt"`
	MonthlyPayment      float64         `json:"monthlyPayment"`
	MinimumPaymentTotal float64         `json:"minimumPaymentTotal"`
	ExtraPayment        float64         `json:"extraPayment"`
	TotalPaid           float64         `json:"totalPaid"`
	TotalInterestPaid   float64         `json:"totalInterestPaid"`
	BaselineInterest    float64         `json:"baselineInterest"`
	InterestSaved       float64         `json:"interestSaved"`
	PayoffDate          time.Time       `json:"payoffDate"`
	MonthsToPayoff      int             `json:"monthsToPayoff"`
	Schedule            []ScheduleEntry `json:"schedule"`
	PayoffOrder         []string        `json:"payoffOrder"`
	Summary             string          `json:"summary,omitempty"`

	// BaselineExcluded lists debts whose minimum alone never pays them off.
	BaselineExcluded []string `json:"baselineExcluded,omitempty"`
}

// StrategySummary is the headline of one strategy inside a comparison.
type StrategySummary struct {
	Strategy          StrategyKind `json:"strategy"`
	TotalInterestPaid float64      `json:"totalInterestPaid"`
	InterestSaved     float64      `json:"interestSaved"`
	MonthsToPayoff    int          `json:"monthsToPayoff"`
	PayoffDate        time.Time    `json:"payoffDate"`
	PayoffOrder       []string     `json:"payoffOrder"`
}

type StrategyComparison struct {
	Strategies  []StrategySummary `json:"strategies"`
	Recommended StrategyKind      `json:"recommended"`
	Savings     struct {
		InterestSaved float64 `json:"interestSaved"`
		MonthsSaved   int     `json:"monthsSaved"`
	} `json:"savings"`
}
