package domain

import "fmt"

type StrategyKind string

const (
	StrategyAvalanche StrategyKind = "avalanche"
	StrategySnowball  StrategyKind = "snowball"
	StrategyCustom    StrategyKind = "custom"
)

// Strategy is the closed set of extra-payment allocation policies:
// AvalancheStrategy, SnowballStrategy and CustomStrategy.
type Strategy interface {
	Kind() StrategyKind
	isStrategy()
}

// AvalancheStrategy pays the highest-rate debt first.
type AvalancheStrategy struct{}

// SnowballStrategy pays the smallest balance first.
type SnowballStrategy struct{}

// CustomStrategy pays the highest caller-assigned priority first.
// Priorities are keyed by debt id; debts missing from the map fall back
// to their own Priority field, then to 0.
type CustomStrategy struct {
	Priorities map[string]int
}

func (AvalancheStrategy) Kind() StrategyKind { return StrategyAvalanche }
func (SnowballStrategy) Kind() StrategyKind  { return StrategySnowball }
func (CustomStrategy) Kind() StrategyKind    { return StrategyCustom }

func (AvalancheStrategy) isStrategy() {}
func (SnowballStrategy) isStrategy()  {}
func (CustomStrategy) isStrategy()    {}

// PriorityFor resolves the priority of d under this strategy.
func (s CustomStrategy) PriorityFor(d Debt) int {
	if p, ok := s.Priorities[d.ID]; ok {
		return p
	}
	return d.PriorityOrZero()
}

// NewStrategy maps a wire-level strategy name onto its variant.
func NewStrategy(kind StrategyKind, priorities map[string]int) (Strategy, error) {
	switch kind {
	case StrategyAvalanche:
		return AvalancheStrategy{}, nil
	case StrategySnowball:
		return SnowballStrategy{}, nil
	case StrategyCustom:
		return CustomStrategy{Priorities: priorities}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", kind)
}
