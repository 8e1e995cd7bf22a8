// Package cart holds the in-progress order draft and its merge and mutation rules.
// A Cart is not safe for concurrent use; callers serialize access per session.
package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/pricing"
	"github.com/shopspring/decimal"
)

var (
	ErrDrinkNotAllowed   = errors.New("combo drink not allowed on this line")
	ErrNotADrink         = errors.New("combo drink must be a Bebidas product")
	ErrNotAnAddOn        = errors.New("added ingredient must be an Adicionales product")
	ErrDuplicateAddOn    = errors.New("added ingredient selected more than once")
	ErrUnknownIngredient = errors.New("removed ingredient is not a base ingredient")
	ErrInvalidVariant    = errors.New("variant does not match a price tier of the product")
	ErrTierUnavailable   = errors.New("price tier change not available for this line")
)

type Option func(*Cart)

// WithClock replaces time.Now as the source of line ids.
func WithClock(clock func() time.Time) Option {
	return func(c *Cart) { c.clock = clock }
}

func WithObserver(o Observer) Option {
	return func(c *Cart) { c.observers = append(c.observers, o) }
}

type Cart struct {
	items     []model.CartItem
	lastID    int64
	visible   bool
	clock     func() time.Time
	observers []Observer
}

func New(opts ...Option) *Cart {
	c := &Cart{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddDirect adds one unit of product on its primary tier without customizations.
func (c *Cart) AddDirect(product model.Product) model.CartItem {
	return c.add(product, product.PrimaryVariant(), model.Customizations{})
}

// AddCustomized adds one unit of product with the given tier and customizations.
func (c *Cart) AddCustomized(product model.Product, variant model.Variant, cust model.Customizations) (model.CartItem, error) {
	if !matchesTier(product, variant) {
		return model.CartItem{}, ErrInvalidVariant
	}
	seen := make(map[int]struct{}, len(cust.Added))
	for _, a := range cust.Added {
		if !a.IsAddOn() {
			return model.CartItem{}, ErrNotAnAddOn
		}
		if _, dup := seen[a.ID]; dup {
			return model.CartItem{}, ErrDuplicateAddOn
		}
		seen[a.ID] = struct{}{}
	}
	for _, r := range cust.Removed {
		if !containsString(product.BaseIngredients, r) {
			return model.CartItem{}, ErrUnknownIngredient
		}
	}
	cust.Notes = strings.TrimSpace(cust.Notes)
	return c.add(product, variant, cust), nil
}

func (c *Cart) add(product model.Product, variant model.Variant, cust model.Customizations) model.CartItem {
	if i := c.mergeTarget(product, variant, cust); i >= 0 {
		c.items[i].Quantity++
		c.open()
		return c.items[i]
	}

	item := model.CartItem{
		ID:             c.nextID(),
		Product:        product,
		Quantity:       1,
		Variant:        variant,
		Customizations: cust,
	}
	c.items = append(c.items, item)
	c.open()
	return item
}

// mergeTarget returns the index of the line an addition folds into, or -1.
// Lines carrying a combo drink are never merge targets.
func (c *Cart) mergeTarget(product model.Product, variant model.Variant, cust model.Customizations) int {
	for i, item := range c.items {
		if item.ComboDrink != nil {
			continue
		}
		if item.Product.ID == product.ID &&
			item.Variant.Label == variant.Label &&
			item.Customizations.Equal(cust) {
			return i
		}
	}
	return -1
}

// UpdateQuantity sets the line quantity; qty <= 0 removes the line. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(lineID int64, qty int) {
	i := c.index(lineID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.removeAt(i)
		return
	}
	c.items[i].Quantity = qty
	c.changed()
}

// RemoveLine deletes the line. Unknown ids are ignored.
func (c *Cart) RemoveLine(lineID int64) {
	if i := c.index(lineID); i >= 0 {
		c.removeAt(i)
	}
}

// AttachDrink sets or replaces the combo drink of a line.
func (c *Cart) AttachDrink(lineID int64, drink model.Product) error {
	if !drink.IsDrink() {
		return ErrNotADrink
	}
	i := c.index(lineID)
	if i < 0 {
		return nil
	}
	if !c.items[i].Product.Category.AcceptsComboDrink() {
		return ErrDrinkNotAllowed
	}
	d := drink
	c.items[i].ComboDrink = &d
	c.changed()
	return nil
}

func (c *Cart) DetachDrink(lineID int64) {
	i := c.index(lineID)
	if i < 0 || c.items[i].ComboDrink == nil {
		return
	}
	c.items[i].ComboDrink = nil
	c.changed()
}

// UpgradeToSecondaryTier replaces the whole variant with the secondary tier.
// Customizations and combo drink are kept.
func (c *Cart) UpgradeToSecondaryTier(lineID int64) error {
	i := c.index(lineID)
	if i < 0 {
		return nil
	}
	item := &c.items[i]
	secondary, ok := item.Product.SecondaryVariant()
	if !ok || item.Variant.Equal(secondary) {
		return ErrTierUnavailable
	}
	item.Variant = secondary
	c.changed()
	return nil
}

func (c *Cart) DowngradeToPrimaryTier(lineID int64) error {
	i := c.index(lineID)
	if i < 0 {
		return nil
	}
	item := &c.items[i]
	primary := item.Product.PrimaryVariant()
	if !item.Product.HasSecondaryTier() || item.Variant.Equal(primary) {
		return ErrTierUnavailable
	}
	item.Variant = primary
	c.changed()
	return nil
}

// Clear empties the cart, e.g. after a successful submission.
func (c *Cart) Clear() {
	c.items = nil
	c.visible = false
	c.changed()
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []model.CartItem {
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Line(lineID int64) (model.CartItem, bool) {
	i := c.index(lineID)
	if i < 0 {
		return model.CartItem{}, false
	}
	return c.items[i], true
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	return pricing.CartTotal(c.items)
}

// Visible reports whether the cart view has been opened by an addition.
func (c *Cart) Visible() bool {
	return c.visible
}

// Hide records that the customer closed the cart view.
func (c *Cart) Hide() {
	c.visible = false
}

func (c *Cart) index(lineID int64) int {
	for i, item := range c.items {
		if item.ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.changed()
}

func (c *Cart) nextID() int64 {
	id := c.clock().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func matchesTier(product model.Product, variant model.Variant) bool {
	if variant.Equal(product.PrimaryVariant()) {
		return true
	}
	secondary, ok := product.SecondaryVariant()
	return ok && variant.Equal(secondary)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
