package service

import (
	"fmt"
	"strings"

	"debt-planner/domain"
)

var strategyNames = map[domain.StrategyKind]string{
	domain.StrategyAvalanche: "Avalanche",
	domain.StrategySnowball:  "Snowball",
	domain.StrategyCustom:    "Custom priority",
}

var strategyTips = map[domain.StrategyKind]string{
	domain.StrategyAvalanche: "Paying the highest-rate debt first keeps total interest as low as possible.",
	domain.StrategySnowball:  "Clearing the smallest balances first frees up minimum payments early and keeps motivation high.",
	domain.StrategyCustom:    "Extra payments follow the order you chose.",
}

// summarize builds a short plain-language description of a plan. names
// maps debt ids to display names.
func summarize(result domain.PayoffResult, names map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "With the %s strategy every debt is paid off in %d months (%.1f years), ",
		strategyNames[result.Strategy], result.MonthsToPayoff, float64(result.MonthsToPayoff)/monthsPerYear)
	fmt.Fprintf(&b, "paying %.2f in interest", result.TotalInterestPaid)
	if result.InterestSaved > 0 {
		fmt.Fprintf(&b, " and saving %.2f compared with minimum payments alone", result.InterestSaved)
	}
	b.WriteString(".")

	if len(result.PayoffOrder) > 0 {
		first := names[result.PayoffOrder[0]]
		if first == "" {
			first = result.PayoffOrder[0]
		}
		fmt.Fprintf(&b, " %s is cleared first.", first)
	}

	if tip := strategyTips[result.Strategy]; tip != "" {
		b.WriteString(" ")
		b.WriteString(tip)
	}
	return b.String()
}
