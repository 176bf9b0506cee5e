package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/domain"
)

func TestRankDebts_Avalanche(t *testing.T) {
	snaps := withIndex(
		snap("car", 9000, 7, 250),
		snap("card", 5000, 22.9, 150),
		snap("student", 12000, 5.5, 120),
	)

	ranked, err := rankDebts(snaps, domain.AvalancheStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"card", "car", "student"}, ids(ranked))
	assert.Equal(t, []string{"car", "card", "student"}, ids(snaps), "input must not be reordered")
}

func TestRankDebts_Snowball(t *testing.T) {
	snaps := withIndex(
		snap("car", 9000, 7, 250),
		snap("dentist", 800, 0, 40),
		snap("card", 5000, 22.9, 150),
	)

	ranked, err := rankDebts(snaps, domain.SnowballStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dentist", "card", "car"}, ids(ranked))
}

func TestRankDebts_SnowballSeparatesCents(t *testing.T) {
	snaps := withIndex(
		snap("a", 99_999_999.99, 5, 100),
		snap("b", 99_999_999.98, 5, 100),
	)

	ranked, err := rankDebts(snaps, domain.SnowballStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(ranked))
}

func TestRankDebts_Custom(t *testing.T) {
	snaps := withIndex(
		snap("a", 100, 5, 10),
		snap("b", 200, 5, 10),
		snap("c", 300, 5, 10),
	)
	snaps[0].priority = 1
	snaps[2].priority = 9

	ranked, err := rankDebts(snaps, domain.CustomStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(ranked))
}

func TestRankDebts_TiesKeepInputOrder(t *testing.T) {
	snaps := withIndex(
		snap("first", 500, 18, 25),
		snap("second", 300, 18, 25),
		snap("third", 700, 18, 25),
	)

	ranked, err := rankDebts(snaps, domain.AvalancheStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, ids(ranked))

	ranked, err = rankDebts(snaps, domain.CustomStrategy{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, ids(ranked))
}

func TestRankKey_UnknownStrategy(t *testing.T) {
	_, err := rankKey(snap("a", 100, 5, 10), nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = rankDebts([]*debtSnapshot{snap("a", 100, 5, 10)}, nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestNewSnapshots_ResolvesCustomPriorities(t *testing.T) {
	two := 2
	debts := []domain.Debt{
		{ID: "a", Name: "A", Balance: 100, InterestRate: 5, MinimumPayment: 10, Priority: &two},
		{ID: "b", Name: "B", Balance: 200, InterestRate: 5, MinimumPayment: 10},
	}

	snaps := newSnapshots(debts, domain.CustomStrategy{Priorities: map[string]int{"b": 4}})
	require.Len(t, snaps, 2)
	assert.Equal(t, 2, snaps[0].priority)
	assert.Equal(t, 4, snaps[1].priority)
	assert.Equal(t, 1, snaps[1].index)
	assert.Equal(t, "200.00", snaps[1].balance.String())
}
