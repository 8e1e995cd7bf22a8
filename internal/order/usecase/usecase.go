package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/internal/order/dto"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo     order.Repository
	feed     *feed.Feed
	notifier order.Notifier
	events   order.EventPublisher
	tables   int
	logger   logger.ZapLogger
	now      func() time.Time
}

type Option func(*orderUseCase)

func WithNotifier(n order.Notifier) Option {
	return func(uc *orderUseCase) { uc.notifier = n }
}

func WithEventPublisher(p order.EventPublisher) Option {
	return func(uc *orderUseCase) { uc.events = p }
}

func WithClock(now func() time.Time) Option {
	return func(uc *orderUseCase) { uc.now = now }
}

// NewOrderUseCase builds the order use case. A nil repo keeps orders in the
// feed's local overlay only. tables bounds in-store table numbers when > 0.
func NewOrderUseCase(repo order.Repository, f *feed.Feed, tables int, log logger.ZapLogger, opts ...Option) order.UseCase {
	uc := &orderUseCase{
		repo:   repo,
		feed:   f,
		tables: tables,
		logger: log,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, lines []model.CartItem, ch order.Channel) (*feed.Entry, error) {
	o, err := order.Assemble(lines, ch, uc.now())
	if err != nil {
		return nil, err
	}
	if o.IsDineIn() && uc.tables > 0 && o.Table() > uc.tables {
		return nil, order.ErrUnknownTable
	}
	o.ID = uuid.New().String()

	// 1. Show the order right away
	uc.feed.AddLocal(*o)

	if uc.repo == nil {
		uc.publishEvent(ctx, dto.EventOrderCreated, *o)
		return &feed.Entry{Order: *o, Origin: feed.Local}, nil
	}

	// 2. Persist, undoing the local entry on failure
	if err := uc.repo.Create(ctx, o); err != nil {
		uc.feed.DropLocal(o.ID)
		uc.logger.Error("Failed to persist order", zap.String("order_id", o.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", order.ErrStoreUnavailable, err)
	}

	// 3. Confirm locally and fan out
	uc.feed.ApplyPersisted(*o)
	uc.notify(ctx, o.ID)
	uc.publishEvent(ctx, dto.EventOrderCreated, *o)

	uc.logger.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("order_type", string(o.OrderType)),
		zap.String("total", o.Total.String()),
	)
	return &feed.Entry{Order: *o, Origin: feed.Persisted}, nil
}

func (uc *orderUseCase) AppendItems(ctx context.Context, orderID string, lines []model.CartItem) (*feed.Entry, error) {
	if len(lines) == 0 {
		return nil, order.ErrEmptyCart
	}
	items := order.Snapshot(lines)
	return uc.editItems(ctx, orderID, func(o *model.Order) error {
		return order.AppendItems(o, items, uc.now())
	})
}

func (uc *orderUseCase) UpdateItemQuantity(ctx context.Context, orderID string, index, qty int) (*feed.Entry, error) {
	return uc.editItems(ctx, orderID, func(o *model.Order) error {
		return order.SetItemQuantity(o, index, qty, uc.now())
	})
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*feed.Entry, error) {
	o, origin, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &feed.Entry{Order: o, Origin: origin}, nil
}

func (uc *orderUseCase) ListActive(ctx context.Context) []feed.Entry {
	return uc.feed.Snapshot()
}

func (uc *orderUseCase) Advance(ctx context.Context, id string) (*feed.Entry, error) {
	return uc.transition(ctx, id, func(o *model.Order) (model.OrderStatus, error) {
		next, ok := order.Next(o.Status)
		if !ok {
			return "", &order.TransitionError{From: o.Status, To: o.Status}
		}
		return next, nil
	})
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, to model.OrderStatus) (*feed.Entry, error) {
	return uc.transition(ctx, id, func(*model.Order) (model.OrderStatus, error) {
		return to, nil
	})
}

func (uc *orderUseCase) Cancel(ctx context.Context, id string) (*feed.Entry, error) {
	return uc.transition(ctx, id, func(o *model.Order) (model.OrderStatus, error) {
		if !o.IsDineIn() {
			return "", order.ErrNotDineIn
		}
		return model.OrderStatusCancelled, nil
	})
}

// Settle completes a ready dine-in order and frees its table.
func (uc *orderUseCase) Settle(ctx context.Context, id string) (*feed.Entry, error) {
	return uc.transition(ctx, id, func(o *model.Order) (model.OrderStatus, error) {
		if !o.IsDineIn() {
			return "", order.ErrNotDineIn
		}
		if o.Status != model.OrderStatusReady {
			return "", &order.TransitionError{From: o.Status, To: model.OrderStatusCompleted}
		}
		return model.OrderStatusCompleted, nil
	})
}

func (uc *orderUseCase) transition(ctx context.Context, id string, target func(o *model.Order) (model.OrderStatus, error)) (*feed.Entry, error) {
	o, origin, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	to, err := target(&o)
	if err != nil {
		return nil, err
	}
	from := o.Status
	if err := order.Transition(&o, to, uc.now()); err != nil {
		return nil, err
	}

	if origin == feed.Local {
		uc.feed.ApplyLocal(o)
	} else {
		if err := uc.repo.UpdateStatus(ctx, id, from, to, o.CompletedAt); err != nil {
			return nil, uc.storeError("update order status", id, err)
		}
		uc.feed.ApplyPersisted(o)
		uc.notify(ctx, id)
	}
	uc.publishEvent(ctx, dto.EventOrderStatusChanged, o)

	uc.logger.Info("Order status changed",
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return &feed.Entry{Order: o, Origin: origin}, nil
}

func (uc *orderUseCase) editItems(ctx context.Context, id string, edit func(o *model.Order) error) (*feed.Entry, error) {
	if uc.repo == nil {
		e, ok := uc.feed.Get(id)
		if !ok {
			return nil, order.ErrOrderNotFound
		}
		if err := edit(&e.Order); err != nil {
			return nil, err
		}
		uc.feed.ApplyLocal(e.Order)
		uc.publishEvent(ctx, dto.EventOrderItemsUpdated, e.Order)
		return &e, nil
	}

	o, err := uc.repo.UpdateItems(ctx, id, edit)
	if err != nil {
		return nil, uc.storeError("update order items", id, err)
	}
	uc.feed.ApplyPersisted(*o)
	uc.notify(ctx, id)
	uc.publishEvent(ctx, dto.EventOrderItemsUpdated, *o)
	return &feed.Entry{Order: *o, Origin: feed.Persisted}, nil
}

// load reads the order from the store, or from the local overlay when there is none.
func (uc *orderUseCase) load(ctx context.Context, id string) (model.Order, feed.Origin, error) {
	if uc.repo == nil {
		e, ok := uc.feed.Get(id)
		if !ok {
			return model.Order{}, feed.Local, order.ErrOrderNotFound
		}
		return e.Order, feed.Local, nil
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return model.Order{}, feed.Persisted, uc.storeError("find order", id, err)
	}
	if o == nil {
		return model.Order{}, feed.Persisted, order.ErrOrderNotFound
	}
	return *o, feed.Persisted, nil
}

var domainErrors = []error{
	order.ErrOrderNotFound,
	order.ErrOrderClosed,
	order.ErrNotDineIn,
	order.ErrEmptyCart,
	order.ErrItemNotFound,
	order.ErrLastItem,
	order.ErrStaleOrder,
	order.ErrIllegalTransition,
}

// storeError passes domain errors through and reports everything else as an
// unavailable store.
func (uc *orderUseCase) storeError(op, id string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	uc.logger.Error("Order store failure", zap.String("op", op), zap.String("order_id", id), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", order.ErrStoreUnavailable, op, err)
}

func (uc *orderUseCase) notify(ctx context.Context, id string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, id); err != nil {
		uc.logger.Warn("Failed to notify order change", zap.String("order_id", id), zap.Error(err))
	}
}

func (uc *orderUseCase) publishEvent(ctx context.Context, eventType string, o model.Order) {
	if uc.events == nil {
		return
	}
	data, err := json.Marshal(dto.NewOrderEvent(eventType, o, uc.now()))
	if err != nil {
		uc.logger.Error("Failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.events.Publish(ctx, o.ID, data); err != nil {
		uc.logger.Warn("Failed to publish order event",
			zap.String("order_id", o.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
