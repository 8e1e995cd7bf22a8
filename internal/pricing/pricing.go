// Package pricing computes cart line and cart totals. All functions are pure.
package pricing

import (
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/shopspring/decimal"
)

// LineUnitPrice is the variant price plus every add-on plus the combo drink.
// Removed ingredients never change the price.
func LineUnitPrice(item model.CartItem) decimal.Decimal {
	unit := item.Variant.Price.Add(item.Customizations.AddedTotal())
	if item.ComboDrink != nil {
		unit = unit.Add(item.ComboDrink.Price)
	}
	return unit
}

func LineTotal(item model.CartItem) decimal.Decimal {
	return LineUnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// CartTotal is both the subtotal and the order total; there are no taxes or fees.
func CartTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}
