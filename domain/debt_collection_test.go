package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDebts_KeepsOrderAndGeneratesIDs(t *testing.T) {
	c, err := CollectDebts([]Debt{
		{ID: "visa", Name: "Visa", Balance: 1000},
		{Name: "Car", Balance: 5000},
	})
	require.NoError(t, err)

	debts := c.Debts()
	require.Len(t, debts, 2)
	assert.Equal(t, "visa", debts[0].ID)
	assert.Equal(t, "Car", debts[1].Name)
	_, err = uuid.Parse(debts[1].ID)
	assert.NoError(t, err)
}

func TestCollectDebts_GeneratedIDsAreStable(t *testing.T) {
	input := []Debt{
		{Name: "Visa", Balance: 1000},
		{Name: "Visa", Balance: 1000},
		{Name: "Car", Balance: 5000},
	}

	first, err := CollectDebts(input)
	require.NoError(t, err)
	second, err := CollectDebts(input)
	require.NoError(t, err)

	ids := func(c DebtCollection) []string {
		out := make([]string, 0, c.Len())
		for _, d := range c.Debts() {
			out = append(out, d.ID)
		}
		return out
	}
	assert.Equal(t, ids(first), ids(second))
	assert.NotEqual(t, ids(first)[0], ids(first)[1], "same name at another position gets another id")
	assert.Empty(t, input[0].ID)

	parsed, err := uuid.Parse(ids(first)[2])
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestCollectDebts_DuplicateID(t *testing.T) {
	_, err := CollectDebts([]Debt{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateDebtID)
}

func TestDebtCollection_OperationsReturnNewCollections(t *testing.T) {
	base, err := CollectDebts([]Debt{
		{ID: "a", Name: "A", Balance: 100},
		{ID: "b", Name: "B", Balance: 200},
		{ID: "c", Name: "C", Balance: 300},
	})
	require.NoError(t, err)

	updated, err := base.Update(Debt{ID: "b", Name: "B2", Balance: 250})
	require.NoError(t, err)
	got, _ := updated.Get("b")
	assert.Equal(t, 250.0, got.Balance)
	orig, _ := base.Get("b")
	assert.Equal(t, 200.0, orig.Balance)
	assert.Equal(t, "b", updated.Debts()[1].ID)

	removed, err := base.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, 2, removed.Len())
	assert.Equal(t, 3, base.Len())
	assert.Equal(t, []string{"a", "c"}, []string{removed.Debts()[0].ID, removed.Debts()[1].ID})

	added, err := removed.Add(Debt{ID: "b", Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, "b", added.Debts()[2].ID)
}

func TestDebtCollection_MissingDebt(t *testing.T) {
	c := NewDebtCollection()

	_, err := c.Update(Debt{ID: "x"})
	assert.ErrorIs(t, err, ErrDebtNotFound)

	_, err = c.Remove("x")
	assert.ErrorIs(t, err, ErrDebtNotFound)

	_, ok := c.Get("x")
	assert.False(t, ok)
}
