package model

import "github.com/shopspring/decimal"

type Product struct {
	ID                  int              `db:"id" json:"id"`
	Name                string           `db:"name" json:"name"`
	Description         string           `db:"description" json:"description"`
	Price               decimal.Decimal  `db:"price" json:"price"`
	PriceLabel          string           `db:"price_label" json:"price_label,omitempty"`
	SecondaryPrice      *decimal.Decimal `db:"secondary_price" json:"secondary_price,omitempty"`
	SecondaryPriceLabel string           `db:"secondary_price_label" json:"secondary_price_label,omitempty"`
	Category            Category         `db:"category" json:"category"`
	BaseIngredients     []string         `db:"-" json:"base_ingredients,omitempty"`
}

// Variant is the pricing tier selected for a cart line.
type Variant struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

func (v Variant) Equal(o Variant) bool {
	return v.Label == o.Label && v.Price.Equal(o.Price)
}

func (p Product) HasSecondaryTier() bool {
	return p.SecondaryPrice != nil
}

func (p Product) PrimaryVariant() Variant {
	return Variant{Label: p.PriceLabel, Price: p.Price}
}

func (p Product) SecondaryVariant() (Variant, bool) {
	if p.SecondaryPrice == nil {
		return Variant{}, false
	}
	return Variant{Label: p.SecondaryPriceLabel, Price: *p.SecondaryPrice}, true
}

func (p Product) IsAddOn() bool {
	return p.Category == CategoryAdicionales
}

func (p Product) IsDrink() bool {
	return p.Category == CategoryBebidas
}
