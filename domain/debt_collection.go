package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrDuplicateDebtID = errors.New("duplicate debt id")
	ErrDebtNotFound    = errors.New("debt not found")
)

// debtIDNamespace scopes the name-based uuids generated for debts.
var debtIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:debt-planner:debt"))

// DebtCollection is an ordered set of debts keyed by id. Every mutating
// operation returns a new collection and leaves the receiver untouched.
// Insertion order is preserved and used to break ranking ties.
type DebtCollection struct {
	order []string
	debts map[string]Debt
}

func NewDebtCollection() DebtCollection {
	return DebtCollection{debts: map[string]Debt{}}
}

// CollectDebts builds a collection from debts in order. Debts without
// an id get a deterministic generated one.
func CollectDebts(debts []Debt) (DebtCollection, error) {
	c := NewDebtCollection()
	for _, d := range debts {
		next, err := c.Add(d)
		if err != nil {
			return DebtCollection{}, err
		}
		c = next
	}
	return c, nil
}

func (c DebtCollection) clone() DebtCollection {
	out := DebtCollection{
		order: make([]string, len(c.order)),
		debts: make(map[string]Debt, len(c.debts)),
	}
	copy(out.order, c.order)
	for id, d := range c.debts {
		out.debts[id] = d
	}
	return out
}

// Add appends a debt. A debt without an id gets a uuid derived from its
// position and name, so the same input always yields the same ids.
func (c DebtCollection) Add(d Debt) (DebtCollection, error) {
	if d.ID == "" {
		d.ID = generatedID(len(c.order), d.Name)
	}
	if _, exists := c.debts[d.ID]; exists {
		return c, fmt.Errorf("%w: %s", ErrDuplicateDebtID, d.ID)
	}
	out := c.clone()
	out.order = append(out.order, d.ID)
	out.debts[d.ID] = d
	return out, nil
}

// Update replaces the debt with the same id, keeping its position.
func (c DebtCollection) Update(d Debt) (DebtCollection, error) {
	if _, exists := c.debts[d.ID]; !exists {
		return c, fmt.Errorf("%w: %s", ErrDebtNotFound, d.ID)
	}
	out := c.clone()
	out.debts[d.ID] = d
	return out, nil
}

func (c DebtCollection) Remove(id string) (DebtCollection, error) {
	if _, exists := c.debts[id]; !exists {
		return c, fmt.Errorf("%w: %s", ErrDebtNotFound, id)
	}
	out := c.clone()
	delete(out.debts, id)
	for i, existing := range out.order {
		if existing == id {
			out.order = append(out.order[:i], out.order[i+1:]...)
			break
		}
	}
	return out, nil
}

func (c DebtCollection) Get(id string) (Debt, bool) {
	d, ok := c.debts[id]
	return d, ok
}

func (c DebtCollection) Len() int {
	return len(c.order)
}

// Debts returns the debts in insertion order.
func (c DebtCollection) Debts() []Debt {
	out := make([]Debt, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.debts[id])
	}
	return out
}

func generatedID(position int, name string) string {
	return uuid.NewSHA1(debtIDNamespace, []byte(fmt.Sprintf("%d:%s", position, name))).String()
}
