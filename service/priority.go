package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

var ErrUnknownStrategy = errors.New("unknown payoff strategy")

// rankKey returns the comparable key for s under strategy. Higher keys
// receive extra payment first.
func rankKey(s *debtSnapshot, strategy domain.Strategy) (decimal.Decimal, error) {
	switch strategy.(type) {
	case domain.AvalancheStrategy:
		return s.annualRate, nil
	case domain.SnowballStrategy:
		// Same order as 1/balance for positive balances, without the
		// precision loss of dividing.
		return s.balance.Decimal().Neg(), nil
	case domain.CustomStrategy:
		return decimal.NewFromInt(int64(s.priority)), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %T", ErrUnknownStrategy, strategy)
}

// rankDebts orders snapshots by descending key. Ties keep input order.
func rankDebts(snaps []*debtSnapshot, strategy domain.Strategy) ([]*debtSnapshot, error) {
	type ranked struct {
		snap *debtSnapshot
		key  decimal.Decimal
	}
	items := make([]ranked, 0, len(snaps))
	for _, s := range snaps {
		k, err := rankKey(s, strategy)
		if err != nil {
			return nil, err
		}
		items = append(items, ranked{snap: s, key: k})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key.GreaterThan(items[j].key)
	})

	out := make([]*debtSnapshot, 0, len(items))
	for _, it := range items {
		out = append(out, it.snap)
	}
	return out, nil
}
