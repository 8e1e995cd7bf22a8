package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 5 * time.Second

// Locker serializes work on one cart across replicas.
type Locker interface {
	WithLock(ctx context.Context, key, value string, ttl time.Duration, fn func() error) error
}

// Summarizer renders the outbound message for a cart.
type Summarizer interface {
	CartSummary(lines []model.CartItem) string
	Link(text string) string
}

type cartUseCase struct {
	repo    cart.Repository
	menu    catalog.Catalog
	orders  order.UseCase
	summary Summarizer
	locker  Locker
	logger  logger.ZapLogger
}

// NewCartUseCase builds the cart use case. A nil locker falls back to an
// in-process lock per session.
func NewCartUseCase(repo cart.Repository, menu catalog.Catalog, orders order.UseCase, summary Summarizer, locker Locker, log logger.ZapLogger) cart.UseCase {
	if locker == nil {
		locker = newLocalLocker()
	}
	return &cartUseCase{
		repo:    repo,
		menu:    menu,
		orders:  orders,
		summary: summary,
		locker:  locker,
		logger:  log,
	}
}

func (uc *cartUseCase) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return uc.load(ctx, sessionID)
}

func (uc *cartUseCase) AddDirect(ctx context.Context, sessionID string, productID int) (*cart.Cart, error) {
	product, ok := uc.menu.ByID(productID)
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.AddDirect(product)
		return nil
	})
}

func (uc *cartUseCase) AddCustomized(ctx context.Context, sessionID string, input *dto.AddCustomizedInput) (*cart.Cart, error) {
	product, ok := uc.menu.ByID(input.ProductID)
	if !ok {
		return nil, catalog.ErrProductNotFound
	}

	variant := product.PrimaryVariant()
	if input.UseSecondaryTier {
		secondary, ok := product.SecondaryVariant()
		if !ok {
			return nil, cart.ErrTierUnavailable
		}
		variant = secondary
	}

	cust := model.Customizations{
		Removed: input.Removed,
		Notes:   input.Notes,
	}
	for _, id := range input.AddedIDs {
		addOn, ok := uc.menu.ByID(id)
		if !ok {
			return nil, catalog.ErrProductNotFound
		}
		cust.Added = append(cust.Added, addOn)
	}

	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		_, err := c.AddCustomized(product, variant, cust)
		return err
	})
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, sessionID string, lineID int64, qty int) (*cart.Cart, error) {
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.UpdateQuantity(lineID, qty)
		return nil
	})
}

func (uc *cartUseCase) RemoveLine(ctx context.Context, sessionID string, lineID int64) (*cart.Cart, error) {
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.RemoveLine(lineID)
		return nil
	})
}

func (uc *cartUseCase) AttachDrink(ctx context.Context, sessionID string, lineID int64, drinkID int) (*cart.Cart, error) {
	drink, ok := uc.menu.ByID(drinkID)
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.AttachDrink(lineID, drink)
	})
}

func (uc *cartUseCase) DetachDrink(ctx context.Context, sessionID string, lineID int64) (*cart.Cart, error) {
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.DetachDrink(lineID)
		return nil
	})
}

func (uc *cartUseCase) SwitchTier(ctx context.Context, sessionID string, lineID int64, secondary bool) (*cart.Cart, error) {
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if secondary {
			return c.UpgradeToSecondaryTier(lineID)
		}
		return c.DowngradeToPrimaryTier(lineID)
	})
}

func (uc *cartUseCase) Clear(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return uc.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout places the cart as a new order. The cart is emptied only once
// the order has been accepted.
func (uc *cartUseCase) Checkout(ctx context.Context, sessionID string, ch order.Channel) (*feed.Entry, *cart.Cart, error) {
	return uc.submit(ctx, sessionID, func(lines []model.CartItem) (*feed.Entry, error) {
		return uc.orders.PlaceOrder(ctx, lines, ch)
	})
}

// CheckoutIntoOrder merges the cart into an open dine-in order.
func (uc *cartUseCase) CheckoutIntoOrder(ctx context.Context, sessionID, orderID string) (*feed.Entry, *cart.Cart, error) {
	return uc.submit(ctx, sessionID, func(lines []model.CartItem) (*feed.Entry, error) {
		return uc.orders.AppendItems(ctx, orderID, lines)
	})
}

func (uc *cartUseCase) ShareLink(ctx context.Context, sessionID string) (*dto.ShareLink, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, order.ErrEmptyCart
	}
	text := uc.summary.CartSummary(c.Lines())
	return &dto.ShareLink{
		Summary: text,
		Link:    uc.summary.Link(text),
	}, nil
}

// submit places the cart lines as an order and empties the cart. Once the
// order exists a failed cart write is logged and the session cart deleted,
// so a retry cannot place the same lines twice.
func (uc *cartUseCase) submit(ctx context.Context, sessionID string, place func(lines []model.CartItem) (*feed.Entry, error)) (*feed.Entry, *cart.Cart, error) {
	var (
		entry *feed.Entry
		out   *cart.Cart
	)
	err := uc.locker.WithLock(ctx, "lock:cart:"+sessionID, uuid.New().String(), lockTTL, func() error {
		c, err := uc.load(ctx, sessionID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return order.ErrEmptyCart
		}
		e, err := place(c.Lines())
		if err != nil {
			return err
		}
		entry = e

		c.Clear()
		out = c
		if err := uc.repo.Save(ctx, sessionID, c.Snapshot()); err != nil {
			uc.logger.Warn("Failed to clear cart after checkout",
				zap.String("session_id", sessionID),
				zap.String("order_id", e.Order.ID),
				zap.Error(err),
			)
			if err := uc.repo.Delete(ctx, sessionID); err != nil {
				uc.logger.Error("Failed to delete cart after checkout",
					zap.String("session_id", sessionID),
					zap.Error(err),
				)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, out, nil
}

// mutate loads the session cart under its lock, applies fn and saves the
// result. Nothing is saved when fn fails.
func (uc *cartUseCase) mutate(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	var out *cart.Cart
	err := uc.locker.WithLock(ctx, "lock:cart:"+sessionID, uuid.New().String(), lockTTL, func() error {
		c, err := uc.load(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := uc.repo.Save(ctx, sessionID, c.Snapshot()); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *cartUseCase) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	observer := cart.WithObserver(func(e cart.Event) {
		uc.logger.Debug("Cart event",
			zap.String("session_id", sessionID),
			zap.String("event", e.Type.String()),
			zap.Int("item_count", e.ItemCount),
			zap.String("total", e.Total.String()),
		)
	})

	s, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return cart.New(observer), nil
	}
	return cart.Restore(*s, uc.menu, observer), nil
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLocalLocker() *localLocker {
	return &localLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *localLocker) WithLock(ctx context.Context, key, _ string, _ time.Duration, fn func() error) error {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn()
}
