package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindActive(ctx context.Context) ([]model.Order, error)
	// UpdateStatus only applies while the stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, completedAt *time.Time) error
	// UpdateItems applies fn to the stored order under a row lock and saves its items.
	UpdateItems(ctx context.Context, id string, fn func(o *model.Order) error) (*model.Order, error)
}
