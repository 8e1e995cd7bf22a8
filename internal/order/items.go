package order

import (
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// AppendItems merges newly built lines into an open dine-in order. Identical
// drink-less items add up their quantities; the rest are appended. The order
// total grows by the total of the new items.
func AppendItems(o *model.Order, items model.OrderItems, now time.Time) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}
	if !o.IsDineIn() {
		return ErrNotDineIn
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}

	for _, item := range items {
		if i := findMergeable(o.Items, item); i >= 0 {
			o.Items[i].Quantity += item.Quantity
			continue
		}
		o.Items = append(o.Items, item)
	}
	o.Total = o.Total.Add(items.Total())
	o.UpdatedAt = now
	return nil
}

// SetItemQuantity changes the quantity of the item at index; qty <= 0 removes it.
// The total is recomputed from the stored unit prices.
func SetItemQuantity(o *model.Order, index, qty int, now time.Time) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}
	if index < 0 || index >= len(o.Items) {
		return ErrItemNotFound
	}

	if qty <= 0 {
		if len(o.Items) == 1 {
			return ErrLastItem
		}
		o.Items = append(o.Items[:index:index], o.Items[index+1:]...)
	} else {
		o.Items[index].Quantity = qty
	}
	o.Total = o.Items.Total()
	o.UpdatedAt = now
	return nil
}

func findMergeable(items model.OrderItems, item model.OrderItem) int {
	if item.ComboDrink != nil {
		return -1
	}
	for i, existing := range items {
		if existing.ComboDrink != nil {
			continue
		}
		if existing.ProductName == item.ProductName &&
			existing.Variant == item.Variant &&
			existing.UnitPrice.Equal(item.UnitPrice) &&
			existing.Notes == item.Notes &&
			sameSet(existing.Added, item.Added) &&
			sameSet(existing.Removed, item.Removed) {
			return i
		}
	}
	return -1
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}
