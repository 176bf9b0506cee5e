package service

import (
	"github.com/shopspring/decimal"

	"debt-planner/money"
)

func snap(id string, balance, rate, minimum float64) *debtSnapshot {
	return &debtSnapshot{
		id:             id,
		name:           id,
		balance:        money.FromFloat(balance),
		annualRate:     decimal.NewFromFloat(rate),
		minimumPayment: money.FromFloat(minimum),
	}
}

func withIndex(snaps ...*debtSnapshot) []*debtSnapshot {
	for i, s := range snaps {
		s.index = i
	}
	return snaps
}

func ids(snaps []*debtSnapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.id)
	}
	return out
}

type allocWant struct {
	id     string
	amount string
	extra  bool
}

func wants(allocs []allocation) []allocWant {
	out := make([]allocWant, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, allocWant{id: a.debtID, amount: a.amount.String(), extra: a.extra})
	}
	return out
}
