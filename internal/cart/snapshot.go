package cart

import (
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

// Snapshot is the storable form of a cart. Products are kept by id so a
// restored cart always prices against the live catalog.
type Snapshot struct {
	LastID  int64          `json:"last_id"`
	Visible bool           `json:"visible"`
	Lines   []LineSnapshot `json:"lines"`
}

type LineSnapshot struct {
	ID           int64    `json:"id"`
	ProductID    int      `json:"product_id"`
	Quantity     int      `json:"quantity"`
	VariantLabel string   `json:"variant_label"`
	Added        []int    `json:"added,omitempty"`
	Removed      []string `json:"removed,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	ComboDrinkID *int     `json:"combo_drink_id,omitempty"`
}

func (c *Cart) Snapshot() Snapshot {
	s := Snapshot{LastID: c.lastID, Visible: c.visible, Lines: make([]LineSnapshot, 0, len(c.items))}
	for _, item := range c.items {
		ls := LineSnapshot{
			ID:           item.ID,
			ProductID:    item.Product.ID,
			Quantity:     item.Quantity,
			VariantLabel: item.Variant.Label,
			Removed:      item.Customizations.Removed,
			Notes:        item.Customizations.Notes,
		}
		for _, a := range item.Customizations.Added {
			ls.Added = append(ls.Added, a.ID)
		}
		if item.ComboDrink != nil {
			id := item.ComboDrink.ID
			ls.ComboDrinkID = &id
		}
		s.Lines = append(s.Lines, ls)
	}
	return s
}

// Restore rebuilds a cart from a snapshot. Lines whose product no longer
// exists are dropped; vanished add-ons and drinks are dropped from their line.
func Restore(s Snapshot, cat catalog.Catalog, opts ...Option) *Cart {
	c := New(opts...)
	c.lastID = s.LastID
	c.visible = s.Visible

	for _, ls := range s.Lines {
		product, ok := cat.ByID(ls.ProductID)
		if !ok || ls.Quantity < 1 {
			continue
		}

		item := model.CartItem{
			ID:       ls.ID,
			Product:  product,
			Quantity: ls.Quantity,
			Variant:  product.PrimaryVariant(),
			Customizations: model.Customizations{
				Removed: ls.Removed,
				Notes:   ls.Notes,
			},
		}
		if secondary, ok := product.SecondaryVariant(); ok && ls.VariantLabel == secondary.Label {
			item.Variant = secondary
		}
		for _, id := range ls.Added {
			if addOn, ok := cat.ByID(id); ok && addOn.IsAddOn() {
				item.Customizations.Added = append(item.Customizations.Added, addOn)
			}
		}
		if ls.ComboDrinkID != nil {
			if drink, ok := cat.ByID(*ls.ComboDrinkID); ok && drink.IsDrink() {
				item.ComboDrink = &drink
			}
		}
		if item.ID > c.lastID {
			c.lastID = item.ID
		}
		c.items = append(c.items, item)
	}
	return c
}
