package handler

import (
	"context"
	"errors"
	"time"

	orderv1 "github.com/fekuna/omnipos-order-service/api/orderv1"
	cataloghandler "github.com/fekuna/omnipos-order-service/internal/catalog/handler"
	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/internal/table"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type OrderHandler struct {
	orderv1.UnimplementedOrderServiceServer

	uc      order.UseCase
	feed    *feed.Feed
	tables  int
	refresh time.Duration
	logger  logger.ZapLogger
	now     func() time.Time
}

func NewOrderHandler(uc order.UseCase, f *feed.Feed, tables int, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:      uc,
		feed:    f,
		tables:  tables,
		refresh: time.Second,
		logger:  log,
		now:     time.Now,
	}
}

func (h *OrderHandler) ListActive(ctx context.Context, _ *emptypb.Empty) (*orderv1.ListOrdersResponse, error) {
	return mapOrders(h.uc.ListActive(ctx)), nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *orderv1.OrderIDRequest) (*orderv1.Order, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	e, err := h.uc.GetOrder(ctx, req.ID)
	if err != nil {
		return nil, StatusFromError(err)
	}
	return MapOrderToProto(e), nil
}

func (h *OrderHandler) Advance(ctx context.Context, req *orderv1.OrderIDRequest) (*orderv1.Order, error) {
	return h.apply(ctx, "advance", req.ID, h.uc.Advance)
}

func (h *OrderHandler) Cancel(ctx context.Context, req *orderv1.OrderIDRequest) (*orderv1.Order, error) {
	return h.apply(ctx, "cancel", req.ID, h.uc.Cancel)
}

func (h *OrderHandler) Settle(ctx context.Context, req *orderv1.OrderIDRequest) (*orderv1.Order, error) {
	return h.apply(ctx, "settle", req.ID, h.uc.Settle)
}

func (h *OrderHandler) UpdateStatus(ctx context.Context, req *orderv1.UpdateStatusRequest) (*orderv1.Order, error) {
	to := model.OrderStatus(req.Status)
	if !to.Valid() {
		return nil, status.Error(codes.InvalidArgument, "unknown status")
	}
	return h.apply(ctx, "update status", req.ID, func(ctx context.Context, id string) (*feed.Entry, error) {
		return h.uc.UpdateStatus(ctx, id, to)
	})
}

func (h *OrderHandler) UpdateItemQuantity(ctx context.Context, req *orderv1.UpdateItemQuantityRequest) (*orderv1.Order, error) {
	return h.apply(ctx, "update item quantity", req.OrderID, func(ctx context.Context, id string) (*feed.Entry, error) {
		return h.uc.UpdateItemQuantity(ctx, id, int(req.Index), int(req.Quantity))
	})
}

func (h *OrderHandler) ListTables(ctx context.Context, _ *emptypb.Empty) (*orderv1.TableBoard, error) {
	return h.board(h.uc.ListActive(ctx)), nil
}

// WatchOrders streams the live set of active orders on every change.
func (h *OrderHandler) WatchOrders(_ *emptypb.Empty, stream grpc.ServerStreamingServer[orderv1.ListOrdersResponse]) error {
	ctx := stream.Context()
	for entries := range h.feed.Watch(ctx) {
		if err := stream.Send(mapOrders(entries)); err != nil {
			return err
		}
	}
	return nil
}

// WatchTables streams the table board on every change and again on every
// timer tick of an occupied table, so elapsed times keep moving.
func (h *OrderHandler) WatchTables(_ *emptypb.Empty, stream grpc.ServerStreamingServer[orderv1.TableBoard]) error {
	ctx := stream.Context()
	updates := h.feed.Watch(ctx)

	tick := make(chan struct{}, 1)
	timers := feed.NewTimers(h.refresh, func(string, time.Duration) {
		select {
		case tick <- struct{}{}:
		default:
		}
	})
	defer timers.Stop()

	var entries []feed.Entry
	for {
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-updates:
			if !ok {
				return nil
			}
			entries = next
			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				if e.Order.IsDineIn() {
					ids = append(ids, e.Order.ID)
					timers.Track(e.Order.ID, e.Order.CreatedAt)
				}
			}
			timers.Retain(ids)
		case <-tick:
		}

		if err := stream.Send(h.board(entries)); err != nil {
			return err
		}
	}
}

func (h *OrderHandler) apply(ctx context.Context, op, id string, fn func(context.Context, string) (*feed.Entry, error)) (*orderv1.Order, error) {
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	e, err := fn(ctx, id)
	if err != nil {
		h.logger.Warn("order operation rejected",
			zap.String("op", op),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, StatusFromError(err)
	}
	return MapOrderToProto(e), nil
}

func (h *OrderHandler) board(entries []feed.Entry) *orderv1.TableBoard {
	now := h.now()
	orders := make([]model.Order, len(entries))
	for i, e := range entries {
		orders[i] = e.Order
	}
	b := table.Project(orders, h.tables, now)

	out := &orderv1.TableBoard{
		Tables:      make([]*orderv1.TableStatus, len(b.Tables)),
		GeneratedAt: now,
	}
	for i, t := range b.Tables {
		actions := make([]string, len(t.Actions))
		for j, a := range t.Actions {
			actions[j] = string(a)
		}
		out.Tables[i] = &orderv1.TableStatus{
			Number:         int32(t.Number),
			Occupied:       t.Occupied,
			OrderID:        t.OrderID,
			Status:         string(t.Status),
			Total:          cataloghandler.MapMoney(t.Total),
			Elapsed:        t.ElapsedLabel(),
			ElapsedSeconds: int64(t.Elapsed / time.Second),
			Overdue:        t.Overdue,
			Actions:        actions,
		}
	}
	for _, c := range b.Conflicts {
		h.logger.Warn("table claimed by several orders",
			zap.Int("table", c.Table),
			zap.String("shown", c.Winner),
			zap.Strings("shadowed", c.Shadowed),
		)
		out.Conflicts = append(out.Conflicts, &orderv1.TableConflict{
			Table:    int32(c.Table),
			Winner:   c.Winner,
			Shadowed: c.Shadowed,
		})
	}
	return out
}

// StatusFromError maps order errors to gRPC status codes.
func StatusFromError(err error) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrItemNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrOrderClosed),
		errors.Is(err, order.ErrStaleOrder),
		errors.Is(err, order.ErrNotDineIn),
		errors.Is(err, order.ErrLastItem):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrMissingTable),
		errors.Is(err, order.ErrUnknownTable),
		errors.Is(err, order.ErrMissingCustomer),
		errors.Is(err, order.ErrInvalidOrderType):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, order.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func MapOrderToProto(e *feed.Entry) *orderv1.Order {
	o := &e.Order
	out := &orderv1.Order{
		ID:          o.ID,
		Items:       make([]*orderv1.OrderItem, len(o.Items)),
		Total:       cataloghandler.MapMoney(o.Total),
		Status:      string(o.Status),
		OrderType:   string(o.OrderType),
		TableNumber: int32(o.Table()),
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
		Local:       e.IsLocal(),
	}
	if o.CustomerName != nil {
		out.CustomerName = *o.CustomerName
	}
	if o.CustomerPhone != nil {
		out.CustomerPhone = *o.CustomerPhone
	}
	for i, item := range o.Items {
		pi := &orderv1.OrderItem{
			ProductName:  item.ProductName,
			Quantity:     int32(item.Quantity),
			Variant:      item.Variant,
			VariantPrice: cataloghandler.MapMoney(item.VariantPrice),
			UnitPrice:    cataloghandler.MapMoney(item.UnitPrice),
			LineTotal:    cataloghandler.MapMoney(item.LineTotal()),
			Added:        item.Added,
			Removed:      item.Removed,
			Notes:        item.Notes,
		}
		if item.ComboDrink != nil {
			pi.ComboDrink = *item.ComboDrink
		}
		out.Items[i] = pi
	}
	for _, a := range order.Actions(o) {
		out.Actions = append(out.Actions, string(a))
	}
	return out
}

func mapOrders(entries []feed.Entry) *orderv1.ListOrdersResponse {
	resp := &orderv1.ListOrdersResponse{Orders: make([]*orderv1.Order, len(entries))}
	for i := range entries {
		resp.Orders[i] = MapOrderToProto(&entries[i])
	}
	return resp
}
