package handler

import (
	"context"
	"errors"

	orderv1 "github.com/fekuna/omnipos-order-service/api/orderv1"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	cataloghandler "github.com/fekuna/omnipos-order-service/internal/catalog/handler"
	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	orderhandler "github.com/fekuna/omnipos-order-service/internal/order/handler"
	"github.com/fekuna/omnipos-order-service/internal/pricing"
	"github.com/fekuna/omnipos-order-service/internal/session"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type CartHandler struct {
	orderv1.UnimplementedCartServiceServer
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) GetCart(ctx context.Context, _ *emptypb.Empty) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.Get(ctx, sessionID)
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) AddDirect(ctx context.Context, req *orderv1.AddDirectRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.AddDirect(ctx, sessionID, int(req.ProductID))
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) AddCustomized(ctx context.Context, req *orderv1.AddCustomizedRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	input := &dto.AddCustomizedInput{
		ProductID:        int(req.ProductID),
		UseSecondaryTier: req.UseSecondaryTier,
		Removed:          req.Removed,
		Notes:            req.Notes,
	}
	for _, id := range req.AddedIDs {
		input.AddedIDs = append(input.AddedIDs, int(id))
	}
	c, err := h.uc.AddCustomized(ctx, sessionID, input)
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) UpdateQuantity(ctx context.Context, req *orderv1.UpdateQuantityRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.UpdateQuantity(ctx, sessionID, req.LineID, int(req.Quantity))
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) RemoveLine(ctx context.Context, req *orderv1.LineRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.RemoveLine(ctx, sessionID, req.LineID)
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) AttachDrink(ctx context.Context, req *orderv1.AttachDrinkRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.AttachDrink(ctx, sessionID, req.LineID, int(req.DrinkID))
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) DetachDrink(ctx context.Context, req *orderv1.LineRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.DetachDrink(ctx, sessionID, req.LineID)
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) SwitchTier(ctx context.Context, req *orderv1.SwitchTierRequest) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.SwitchTier(ctx, sessionID, req.LineID, req.Secondary)
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) Clear(ctx context.Context, _ *emptypb.Empty) (*orderv1.Cart, error) {
	sessionID := h.session(ctx)
	c, err := h.uc.Clear(ctx, sessionID)
	return h.reply(sessionID, c, err)
}

func (h *CartHandler) Checkout(ctx context.Context, req *orderv1.CheckoutRequest) (*orderv1.CheckoutResponse, error) {
	sessionID := h.session(ctx)
	ch := order.Channel{
		Type:          model.OrderType(req.OrderType),
		TableNumber:   int(req.TableNumber),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}
	entry, c, err := h.uc.Checkout(ctx, sessionID, ch)
	return h.checkoutReply(sessionID, entry, c, err)
}

func (h *CartHandler) CheckoutIntoOrder(ctx context.Context, req *orderv1.CheckoutIntoOrderRequest) (*orderv1.CheckoutResponse, error) {
	if req.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	sessionID := h.session(ctx)
	entry, c, err := h.uc.CheckoutIntoOrder(ctx, sessionID, req.OrderID)
	return h.checkoutReply(sessionID, entry, c, err)
}

func (h *CartHandler) ShareLink(ctx context.Context, _ *emptypb.Empty) (*orderv1.ShareLinkResponse, error) {
	link, err := h.uc.ShareLink(ctx, h.session(ctx))
	if err != nil {
		return nil, statusFromError(err)
	}
	return &orderv1.ShareLinkResponse{
		Summary: link.Summary,
		Link:    link.Link,
	}, nil
}

// session returns the caller's session id, issuing a new one in the response
// header when the request carries none.
func (h *CartHandler) session(ctx context.Context) string {
	if id := session.GetID(ctx); id != "" {
		return id
	}
	id := uuid.New().String()
	if err := grpc.SetHeader(ctx, metadata.Pairs(session.Header, id)); err != nil {
		h.logger.Warn("failed to set session header", zap.Error(err))
	}
	return id
}

func (h *CartHandler) reply(sessionID string, c *cart.Cart, err error) (*orderv1.Cart, error) {
	if err != nil {
		return nil, statusFromError(err)
	}
	return MapCartToProto(sessionID, c), nil
}

func (h *CartHandler) checkoutReply(sessionID string, entry *feed.Entry, c *cart.Cart, err error) (*orderv1.CheckoutResponse, error) {
	if err != nil {
		h.logger.Warn("checkout rejected", zap.String("session_id", sessionID), zap.Error(err))
		return nil, statusFromError(err)
	}
	return &orderv1.CheckoutResponse{
		Order: orderhandler.MapOrderToProto(entry),
		Cart:  MapCartToProto(sessionID, c),
	}, nil
}

func statusFromError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, cart.ErrDrinkNotAllowed),
		errors.Is(err, cart.ErrNotADrink),
		errors.Is(err, cart.ErrNotAnAddOn),
		errors.Is(err, cart.ErrDuplicateAddOn),
		errors.Is(err, cart.ErrUnknownIngredient),
		errors.Is(err, cart.ErrInvalidVariant):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, cart.ErrTierUnavailable):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return orderhandler.StatusFromError(err)
}

func MapCartToProto(sessionID string, c *cart.Cart) *orderv1.Cart {
	lines := c.Lines()
	out := &orderv1.Cart{
		SessionID: sessionID,
		Lines:     make([]*orderv1.CartLine, len(lines)),
		ItemCount: int32(c.ItemCount()),
		Total:     cataloghandler.MapMoney(c.Total()),
		Visible:   c.Visible(),
	}
	for i := range lines {
		out.Lines[i] = mapLine(&lines[i])
	}
	return out
}

func mapLine(item *model.CartItem) *orderv1.CartLine {
	line := &orderv1.CartLine{
		ID:          item.ID,
		ProductID:   int32(item.Product.ID),
		ProductName: item.Product.Name,
		Category:    string(item.Product.Category),
		Quantity:    int32(item.Quantity),
		Variant: orderv1.Variant{
			Label: item.Variant.Label,
			Price: cataloghandler.MapMoney(item.Variant.Price),
		},
		Added:     make([]*orderv1.ProductRef, len(item.Customizations.Added)),
		Removed:   item.Customizations.Removed,
		Notes:     item.Customizations.Notes,
		UnitPrice: cataloghandler.MapMoney(pricing.LineUnitPrice(*item)),
		LineTotal: cataloghandler.MapMoney(pricing.LineTotal(*item)),
	}
	for i := range item.Customizations.Added {
		line.Added[i] = mapRef(&item.Customizations.Added[i])
	}
	if item.ComboDrink != nil {
		line.ComboDrink = mapRef(item.ComboDrink)
	}
	return line
}

func mapRef(p *model.Product) *orderv1.ProductRef {
	return &orderv1.ProductRef{
		ID:    int32(p.ID),
		Name:  p.Name,
		Price: cataloghandler.MapMoney(p.Price),
	}
}
