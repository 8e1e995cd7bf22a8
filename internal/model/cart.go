package model

import "github.com/shopspring/decimal"

type Customizations struct {
	Added   []Product `json:"added"`
	Removed []string  `json:"removed"`
	Notes   string    `json:"notes"`
}

func (c Customizations) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && c.Notes == ""
}

// Equal compares the added ids and removed names as sets, and notes exactly.
func (c Customizations) Equal(o Customizations) bool {
	if c.Notes != o.Notes {
		return false
	}

	added := make(map[int]struct{}, len(c.Added))
	for _, p := range c.Added {
		added[p.ID] = struct{}{}
	}
	otherAdded := make(map[int]struct{}, len(o.Added))
	for _, p := range o.Added {
		otherAdded[p.ID] = struct{}{}
	}
	if !sameKeys(added, otherAdded) {
		return false
	}

	removed := make(map[string]struct{}, len(c.Removed))
	for _, name := range c.Removed {
		removed[name] = struct{}{}
	}
	otherRemoved := make(map[string]struct{}, len(o.Removed))
	for _, name := range o.Removed {
		otherRemoved[name] = struct{}{}
	}
	return sameKeys(removed, otherRemoved)
}

func sameKeys[K comparable](a, b map[K]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func (c Customizations) AddedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Added {
		total = total.Add(p.Price)
	}
	return total
}

// CartItem is a single line of an in-progress cart.
type CartItem struct {
	ID             int64          `json:"id"`
	Product        Product        `json:"product"`
	Quantity       int            `json:"quantity"`
	Variant        Variant        `json:"variant"`
	Customizations Customizations `json:"customizations"`
	ComboDrink     *Product       `json:"combo_drink,omitempty"`
}
