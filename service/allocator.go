package service

import (
	"debt-planner/domain"
	"debt-planner/money"
)

// allocation is one slice of a month's payment pool.
type allocation struct {
	debtID string
	amount money.Money
	extra  bool
}

// allocate splits pool across the active snapshots: minimums first, then
// the remainder in strategy order, never more than a debt's balance.
// Snapshots are not modified. completed lists, in input order, the debts
// whose allocations cover their whole balance this round.
//
// A pool smaller than the sum of minimums is not an error here; the
// shortfall simply stays on the balances.
func allocate(
	snaps []*debtSnapshot,
	pool money.Money,
	strategy domain.Strategy,
) (allocations []allocation, completed []string, err error) {

	remaining := pool
	paid := make(map[*debtSnapshot]money.Money, len(snaps))
	active := make([]*debtSnapshot, 0, len(snaps))

	for _, s := range snaps {
		if !s.active() {
			continue
		}
		active = append(active, s)

		amount := money.Min(s.minimumPayment, s.balance, money.Max(remaining, money.Zero()))
		if !amount.IsPositive() {
			continue
		}
		allocations = append(allocations, allocation{debtID: s.id, amount: amount})
		paid[s] = amount
		remaining = remaining.Sub(amount)
	}

	if remaining.IsPositive() {
		ranked, err := rankDebts(active, strategy)
		if err != nil {
			return nil, nil, err
		}
		for _, s := range ranked {
			if !remaining.IsPositive() {
				break
			}
			net := s.balance.Sub(paid[s])
			if !net.IsPositive() {
				continue
			}
			amount := money.Min(remaining, net)
			allocations = append(allocations, allocation{debtID: s.id, amount: amount, extra: true})
			paid[s] = paid[s].Add(amount)
			remaining = remaining.Sub(amount)
		}
	}

	for _, s := range active {
		if paid[s].GreaterThanOrEqual(s.balance) {
			completed = append(completed, s.id)
		}
	}
	return allocations, completed, nil
}
