package order

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, lines []model.CartItem, ch Channel) (*feed.Entry, error)
	AppendItems(ctx context.Context, orderID string, lines []model.CartItem) (*feed.Entry, error)
	GetOrder(ctx context.Context, id string) (*feed.Entry, error)
	ListActive(ctx context.Context) []feed.Entry
	Advance(ctx context.Context, id string) (*feed.Entry, error)
	UpdateStatus(ctx context.Context, id string, to model.OrderStatus) (*feed.Entry, error)
	Cancel(ctx context.Context, id string) (*feed.Entry, error)
	Settle(ctx context.Context, id string) (*feed.Entry, error)
	UpdateItemQuantity(ctx context.Context, orderID string, index, qty int) (*feed.Entry, error)
}

// Notifier tells every replica that an order changed.
type Notifier interface {
	Notify(ctx context.Context, orderID string) error
}

// EventPublisher writes keyed order events to the event stream.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}
