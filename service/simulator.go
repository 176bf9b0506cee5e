package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"debt-planner/domain"
	"debt-planner/money"
)

// ErrIterationLimit means the driver loop hit its month ceiling. It
// signals an invariant violation (an unpayable debt), never a valid plan.
var ErrIterationLimit = errors.New("payoff simulation exceeded iteration limit")

type PayoffSimulator struct {
	maxMonths int
	logger    *zap.Logger
}

type SimulatorOption func(*PayoffSimulator)

func WithMaxMonths(months int) SimulatorOption {
	return func(s *PayoffSimulator) {
		if months > 0 {
			s.maxMonths = months
		}
	}
}

// NewPayoffSimulator creates a simulator. It holds no per-run state and
// is safe for concurrent use.
func NewPayoffSimulator(logger *zap.Logger, opts ...SimulatorOption) *PayoffSimulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PayoffSimulator{
		maxMonths: DefaultMaxPayoffMonths,
		logger:    logger.Named("simulator"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate runs the payoff loop month by month until every balance is
// zero. Each round accrues interest on the open balances, splits the pool
// (all minimum payments plus extraPayment) with the allocator, and records
// one schedule row per open debt. Dates advance one calendar month per
// round starting from start.
//
// Interest saved is measured per debt against BaselineInterest. A debt
// whose minimum never amortizes on its own has no baseline; it is listed
// in BaselineExcluded and left out of both sides of the comparison.
func (s *PayoffSimulator) Simulate(
	debts []domain.Debt,
	extraPayment float64,
	strategy domain.Strategy,
	start time.Time,
) (domain.PayoffResult, error) {

	snaps := newSnapshots(debts, strategy)

	totalDebt := money.Zero()
	minimumTotal := money.Zero()
	for _, snap := range snaps {
		totalDebt = totalDebt.Add(snap.balance)
		minimumTotal = minimumTotal.Add(snap.minimumPayment)
	}
	extra := money.FromFloat(extraPayment)
	pool := minimumTotal.Add(extra)

	var (
		schedule       []domain.ScheduleEntry
		payoffOrder    []string
		retired        = make(map[string]bool, len(snaps))
		totalInterest  = money.Zero()
		totalPaid      = money.Zero()
		interestByDebt = make([]money.Money, len(snaps))
		month          int
		cursor         = firstOfMonth(start)
	)

	for anyActive(snaps) {
		if month >= s.maxMonths {
			s.logger.Error("payoff loop reached month ceiling",
				zap.Int("max_months", s.maxMonths),
				zap.String("strategy", string(strategy.Kind())),
			)
			return domain.PayoffResult{}, fmt.Errorf("%w: %d months with %d debts still open",
				ErrIterationLimit, s.maxMonths, countActive(snaps))
		}
		month++
		cursor = cursor.AddDate(0, 1, 0)

		starting := make(map[*debtSnapshot]money.Money, len(snaps))
		interest := make(map[*debtSnapshot]money.Money, len(snaps))
		for _, snap := range snaps {
			if !snap.active() {
				continue
			}
			i := snap.monthlyInterest()
			starting[snap] = snap.balance
			interest[snap] = i
			totalInterest = totalInterest.Add(i)
			interestByDebt[snap.index] = interestByDebt[snap.index].Add(i)
			snap.balance = snap.balance.Add(i)
		}

		allocations, completed, err := allocate(snaps, pool, strategy)
		if err != nil {
			return domain.PayoffResult{}, err
		}
		paid := make(map[string]money.Money, len(allocations))
		for _, a := range allocations {
			paid[a.debtID] = paid[a.debtID].Add(a.amount)
		}

		for _, snap := range snaps {
			begin, open := starting[snap]
			if !open {
				continue
			}
			payment := paid[snap.id]
			snap.balance = money.Max(money.Zero(), snap.balance.Sub(payment))
			totalPaid = totalPaid.Add(payment)

			schedule = append(schedule, domain.ScheduleEntry{
				Month:           month,
				Date:            cursor,
				DebtID:          snap.id,
				DebtName:        snap.name,
				StartingBalance: begin.Float64(),
				Payment:         payment.Float64(),
				Interest:        interest[snap].Float64(),
				Principal:       payment.Sub(interest[snap]).Float64(),
				EndingBalance:   snap.balance.Float64(),
				Completed:       snap.balance.IsZero(),
			})
		}

		for _, id := range completed {
			if !retired[id] {
				retired[id] = true
				payoffOrder = append(payoffOrder, id)
			}
		}
	}

	baseline, covered, excluded := s.baseline(debts, interestByDebt)
	saved := money.Max(money.Zero(), money.New(baseline).Sub(covered))

	s.logger.Debug("payoff simulated",
		zap.String("strategy", string(strategy.Kind())),
		zap.Int("debts", len(snaps)),
		zap.Int("months", month),
		zap.String("total_interest", totalInterest.String()),
	)

	return domain.PayoffResult{
		Strategy:            strategy.Kind(),
		TotalDebt:           totalDebt.Float64(),
		MonthlyPayment:      pool.Float64(),
		MinimumPaymentTotal: minimumTotal.Float64(),
		ExtraPayment:        extra.Float64(),
		TotalPaid:           totalPaid.Float64(),
		TotalInterestPaid:   totalInterest.Float64(),
		BaselineInterest:    baseline.InexactFloat64(),
		InterestSaved:       saved.Float64(),
		PayoffDate:          cursor,
		MonthsToPayoff:      month,
		Schedule:            schedule,
		PayoffOrder:         payoffOrder,
		BaselineExcluded:    excluded,
	}, nil
}

// baseline sums the minimum-only interest of every debt whose minimum
// amortizes on its own, and the interest the plan actually charged those
// same debts. Debts without a baseline are returned in excluded.
func (s *PayoffSimulator) baseline(
	debts []domain.Debt,
	charged []money.Money,
) (total decimal.Decimal, covered money.Money, excluded []string) {

	total = decimal.Zero
	covered = money.Zero()
	for i, d := range debts {
		b, err := BaselineInterest(d)
		if err != nil {
			s.logger.Debug("baseline undefined for debt", zap.String("debt_id", d.ID), zap.Error(err))
			excluded = append(excluded, d.ID)
			continue
		}
		total = total.Add(b.Interest)
		covered = covered.Add(charged[i])
	}
	return total, covered, excluded
}

func anyActive(snaps []*debtSnapshot) bool {
	return countActive(snaps) > 0
}

func countActive(snaps []*debtSnapshot) int {
	n := 0
	for _, s := range snaps {
		if s.active() {
			n++
		}
	}
	return n
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
