package catalog

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is the read-only, in-memory menu.
type Catalog interface {
	List() []model.Product
	ByCategory(category model.Category) []model.Product
	ByID(id int) (model.Product, bool)
}

// Repository loads the menu from its backing source.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
}
