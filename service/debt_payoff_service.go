package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"debt-planner/domain"
	"debt-planner/money"
	"debt-planner/repository"
)

var ErrUnknownCategory = errors.New("unknown debt category")

// compareOrder is the order strategies appear in a comparison.
var compareOrder = []domain.StrategyKind{
	domain.StrategyAvalanche,
	domain.StrategySnowball,
	domain.StrategyCustom,
}

type DebtPayoffService struct {
	simulator *PayoffSimulator
	validator *PayoffValidator
	cache     repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

type ServiceOption func(*DebtPayoffService)

// WithCache memoizes results; plans are pure functions of their input.
func WithCache(cache repository.CacheRepository, ttl time.Duration) ServiceOption {
	return func(s *DebtPayoffService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithClock sets the clock used when a request has no start date.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *DebtPayoffService) {
		s.now = now
	}
}

func NewDebtPayoffService(
	simulator *PayoffSimulator,
	logger *zap.Logger,
	opts ...ServiceOption,
) *DebtPayoffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DebtPayoffService{
		simulator: simulator,
		validator: NewPayoffValidator(),
		logger:    logger.Named("payoff"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// preparedInput is a validated request with ids, strategy and start date
// resolved.
type preparedInput struct {
	Debts        []domain.Debt       `json:"debts"`
	ExtraPayment float64             `json:"extraPayment"`
	Strategy     domain.StrategyKind `json:"strategy"`
	Priorities   map[string]int      `json:"priorities,omitempty"`
	Start        time.Time           `json:"start"`
}

func (s *DebtPayoffService) prepare(input domain.PayoffInput) (preparedInput, error) {
	if err := s.validator.Validate(input); err != nil {
		return preparedInput{}, err
	}

	collection, err := domain.CollectDebts(input.Debts)
	if err != nil {
		return preparedInput{}, domain.ValidationErrors{{Field: "debts", Message: err.Error()}}
	}

	start := s.now()
	if input.StartDate != nil {
		start = *input.StartDate
	}

	kind := input.Strategy
	if kind == "" {
		kind = domain.StrategyAvalanche
	}

	return preparedInput{
		Debts:        collection.Debts(),
		ExtraPayment: input.ExtraPayment,
		Strategy:     kind,
		Priorities:   input.Priorities,
		Start:        firstOfMonth(start),
	}, nil
}

// CalculatePayoffPlan validates input and simulates the payoff under the
// requested strategy (avalanche when empty).
func (s *DebtPayoffService) CalculatePayoffPlan(
	ctx context.Context,
	input domain.PayoffInput,
) (domain.PayoffResult, error) {

	prepared, err := s.prepare(input)
	if err != nil {
		return domain.PayoffResult{}, err
	}

	var result domain.PayoffResult
	key := s.cacheKey("plan", prepared, input.Debts)
	if s.lookup(ctx, key, &result) {
		return result, nil
	}

	result, err = s.simulate(prepared, prepared.Strategy)
	if err != nil {
		return domain.PayoffResult{}, err
	}

	s.store(ctx, key, result)
	return result, nil
}

// CompareStrategies runs avalanche and snowball, plus custom when any
// priority was given, and recommends the one with the least interest.
func (s *DebtPayoffService) CompareStrategies(
	ctx context.Context,
	input domain.PayoffInput,
) (domain.StrategyComparison, error) {

	prepared, err := s.prepare(input)
	if err != nil {
		return domain.StrategyComparison{}, err
	}
	prepared.Strategy = ""

	var comparison domain.StrategyComparison
	key := s.cacheKey("compare", prepared, input.Debts)
	if s.lookup(ctx, key, &comparison) {
		return comparison, nil
	}

	var best, worst *domain.StrategySummary
	for _, kind := range compareOrder {
		if kind == domain.StrategyCustom && !hasPriorities(prepared) {
			continue
		}
		result, err := s.simulate(prepared, kind)
		if err != nil {
			return domain.StrategyComparison{}, err
		}
		comparison.Strategies = append(comparison.Strategies, domain.StrategySummary{
			Strategy:          kind,
			TotalInterestPaid: result.TotalInterestPaid,
			InterestSaved:     result.InterestSaved,
			MonthsToPayoff:    result.MonthsToPayoff,
			PayoffDate:        result.PayoffDate,
			PayoffOrder:       result.PayoffOrder,
		})
	}

	for i := range comparison.Strategies {
		current := &comparison.Strategies[i]
		if best == nil || cheaper(current, best) {
			best = current
		}
		if worst == nil || cheaper(worst, current) {
			worst = current
		}
	}
	comparison.Recommended = best.Strategy
	comparison.Savings.InterestSaved = money.FromFloat(worst.TotalInterestPaid).
		Sub(money.FromFloat(best.TotalInterestPaid)).Float64()
	comparison.Savings.MonthsSaved = worst.MonthsToPayoff - best.MonthsToPayoff

	s.logger.Info("strategies compared",
		zap.Int("debts", len(prepared.Debts)),
		zap.String("recommended", string(comparison.Recommended)),
		zap.Float64("interest_saved", comparison.Savings.InterestSaved),
	)

	s.store(ctx, key, comparison)
	return comparison, nil
}

// SuggestedRate returns the default annual rate for a debt category.
func (s *DebtPayoffService) SuggestedRate(category domain.DebtCategory) (float64, error) {
	rate, ok := category.SuggestedRate()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return rate, nil
}

func (s *DebtPayoffService) simulate(prepared preparedInput, kind domain.StrategyKind) (domain.PayoffResult, error) {
	strategy, err := domain.NewStrategy(kind, prepared.Priorities)
	if err != nil {
		return domain.PayoffResult{}, fmt.Errorf("%w: %v", ErrUnknownStrategy, err)
	}

	started := time.Now()
	result, err := s.simulator.Simulate(prepared.Debts, prepared.ExtraPayment, strategy, prepared.Start)
	if err != nil {
		s.logger.Error("payoff simulation failed",
			zap.String("strategy", string(kind)),
			zap.Int("debts", len(prepared.Debts)),
			zap.Error(err),
		)
		return domain.PayoffResult{}, err
	}

	names := make(map[string]string, len(prepared.Debts))
	for _, d := range prepared.Debts {
		names[d.ID] = d.Name
	}
	result.Summary = summarize(result, names)

	s.logger.Info("payoff plan calculated",
		zap.String("strategy", string(kind)),
		zap.Int("debts", len(prepared.Debts)),
		zap.Int("months", result.MonthsToPayoff),
		zap.Float64("total_interest", result.TotalInterestPaid),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// cacheKey hashes the request as sent, before missing ids are filled in.
func (s *DebtPayoffService) cacheKey(kind string, prepared preparedInput, raw []domain.Debt) string {
	if s.cache == nil {
		return ""
	}
	prepared.Debts = raw
	key, err := repository.PlanKey(kind, prepared)
	if err != nil {
		s.logger.Warn("cache key failed", zap.Error(err))
		return ""
	}
	return key
}

// lookup decodes a cached value into out. Cache problems only cost a
// recomputation.
func (s *DebtPayoffService) lookup(ctx context.Context, key string, out any) bool {
	if key == "" {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	s.logger.Debug("cache hit", zap.String("key", key))
	return true
}

func (s *DebtPayoffService) store(ctx context.Context, key string, value any) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func hasPriorities(p preparedInput) bool {
	if len(p.Priorities) > 0 {
		return true
	}
	for _, d := range p.Debts {
		if d.Priority != nil {
			return true
		}
	}
	return false
}

// cheaper orders by total interest, then months to payoff.
func cheaper(a, b *domain.StrategySummary) bool {
	if a.TotalInterestPaid != b.TotalInterestPaid {
		return a.TotalInterestPaid < b.TotalInterestPaid
	}
	return a.MonthsToPayoff < b.MonthsToPayoff
}
