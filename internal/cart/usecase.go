package cart

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/order"
)

type UseCase interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddDirect(ctx context.Context, sessionID string, productID int) (*Cart, error)
	AddCustomized(ctx context.Context, sessionID string, input *dto.AddCustomizedInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, lineID int64, qty int) (*Cart, error)
	RemoveLine(ctx context.Context, sessionID string, lineID int64) (*Cart, error)
	AttachDrink(ctx context.Context, sessionID string, lineID int64, drinkID int) (*Cart, error)
	DetachDrink(ctx context.Context, sessionID string, lineID int64) (*Cart, error)
	SwitchTier(ctx context.Context, sessionID string, lineID int64, secondary bool) (*Cart, error)
	Clear(ctx context.Context, sessionID string) (*Cart, error)
	Checkout(ctx context.Context, sessionID string, ch order.Channel) (*feed.Entry, *Cart, error)
	CheckoutIntoOrder(ctx context.Context, sessionID, orderID string) (*feed.Entry, *Cart, error)
	ShareLink(ctx context.Context, sessionID string) (*dto.ShareLink, error)
}
