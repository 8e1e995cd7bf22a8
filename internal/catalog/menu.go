package catalog

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// Menu is an immutable Catalog preserving the source order.
type Menu struct {
	products []model.Product
	byID     map[int]int
}

func NewMenu(products []model.Product) (*Menu, error) {
	m := &Menu{
		products: make([]model.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if _, dup := m.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: negative price", p.ID)
		}
		if p.SecondaryPrice != nil && p.SecondaryPrice.LessThan(p.Price) {
			return nil, fmt.Errorf("product %d: secondary price below primary price", p.ID)
		}
		m.byID[p.ID] = len(m.products)
		m.products = append(m.products, p)
	}
	return m, nil
}

// Load reads every product from repo into a Menu.
func Load(ctx context.Context, repo Repository) (*Menu, error) {
	products, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return NewMenu(products)
}

func (m *Menu) List() []model.Product {
	out := make([]model.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *Menu) ByCategory(category model.Category) []model.Product {
	var out []model.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (m *Menu) ByID(id int) (model.Product, bool) {
	i, ok := m.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return m.products[i], true
}
