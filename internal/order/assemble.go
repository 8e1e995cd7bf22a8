package order

import (
	"strings"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/pricing"
)

// Validate checks the channel fields without looking at the cart.
func (c Channel) Validate() error {
	switch c.Type {
	case model.OrderTypeInStore:
		if c.TableNumber <= 0 {
			return ErrMissingTable
		}
	case model.OrderTypeDelivery:
		if strings.TrimSpace(c.CustomerName) == "" || strings.TrimSpace(c.CustomerPhone) == "" {
			return ErrMissingCustomer
		}
	default:
		return ErrInvalidOrderType
	}
	return nil
}

// Assemble flattens cart lines into a Pending order. The lines are not modified
// and the returned order has no id yet.
func Assemble(lines []model.CartItem, ch Channel, now time.Time) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	o := &model.Order{
		Items:     Snapshot(lines),
		Total:     pricing.CartTotal(lines),
		Status:    model.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		OrderType: ch.Type,
	}

	switch ch.Type {
	case model.OrderTypeInStore:
		table := ch.TableNumber
		o.TableNumber = &table
	case model.OrderTypeDelivery:
		name := strings.TrimSpace(ch.CustomerName)
		phone := strings.TrimSpace(ch.CustomerPhone)
		o.CustomerName = &name
		o.CustomerPhone = &phone
	}

	return o, nil
}

// Snapshot converts cart lines into order items detached from the catalog.
func Snapshot(lines []model.CartItem) model.OrderItems {
	items := make(model.OrderItems, 0, len(lines))
	for _, line := range lines {
		item := model.OrderItem{
			ProductName:  line.Product.Name,
			Quantity:     line.Quantity,
			Variant:      line.Variant.Label,
			VariantPrice: line.Variant.Price,
			UnitPrice:    pricing.LineUnitPrice(line),
			Added:        make([]string, 0, len(line.Customizations.Added)),
			Removed:      append([]string{}, line.Customizations.Removed...),
			Notes:        line.Customizations.Notes,
		}
		for _, a := range line.Customizations.Added {
			item.Added = append(item.Added, a.Name)
		}
		if line.ComboDrink != nil {
			name := line.ComboDrink.Name
			item.ComboDrink = &name
		}
		items = append(items, item)
	}
	return items
}
