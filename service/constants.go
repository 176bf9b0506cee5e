package service

const (
	MaxDebtAmount      = 100_000_000.0 // per debt balance
	MaxInterestRate    = 100.0         // annual percentage
	MaxDebtsPerRequest = 50

	// DefaultMaxPayoffMonths bounds the driver loop. Reaching it means an
	// unpayable debt slipped past validation, not a slow payoff.
	DefaultMaxPayoffMonths = 3000

	monthsPerYear = 12
)
