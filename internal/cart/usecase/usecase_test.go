package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	cartrepo "github.com/fekuna/omnipos-order-service/internal/cart/repository"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	menurepo "github.com/fekuna/omnipos-order-service/internal/catalog/repository"
	"github.com/fekuna/omnipos-order-service/internal/feed"
	"github.com/fekuna/omnipos-order-service/internal/notify"
	"github.com/fekuna/omnipos-order-service/internal/order"
	orderuc "github.com/fekuna/omnipos-order-service/internal/order/usecase"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	clasicaID  = 1
	tocinetaID = 45
	cocaColaID = 46
)

type fixture struct {
	uc     cart.UseCase
	orders order.UseCase
	feed   *feed.Feed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	menu, err := catalog.Load(ctx, menurepo.NewEmbeddedRepository())
	if err != nil {
		t.Fatal(err)
	}
	composer, err := notify.NewComposer(notify.Config{Restaurant: "Alex Burger", Phone: "573112488013"})
	if err != nil {
		t.Fatal(err)
	}

	f := feed.New(nil, logger.NewNop())
	orders := orderuc.NewOrderUseCase(nil, f, 10, logger.NewNop())
	uc := NewCartUseCase(cartrepo.NewMemoryRepository(), menu, orders, composer, nil, logger.NewNop())
	return &fixture{uc: uc, orders: orders, feed: f}
}

func TestAddAndRestore(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	c, err := fx.uc.AddCustomized(ctx, "s1", &dto.AddCustomizedInput{
		ProductID:        clasicaID,
		UseSecondaryTier: true,
		AddedIDs:         []int{tocinetaID},
		Removed:          []string{"Cebolla"},
	})
	if err != nil {
		t.Fatalf("AddCustomized() error = %v", err)
	}
	line := c.Lines()[0]
	if _, err := fx.uc.AttachDrink(ctx, "s1", line.ID, cocaColaID); err != nil {
		t.Fatalf("AttachDrink() error = %v", err)
	}

	got, err := fx.uc.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	// 16000 + 3500 + 4000
	if !got.Total().Equal(decimal.NewFromInt(23500)) {
		t.Errorf("Total() = %s, want 23500", got.Total())
	}
	restored := got.Lines()[0]
	if restored.Variant.Label != "Con Papa" || restored.ComboDrink == nil || restored.Customizations.Removed[0] != "Cebolla" {
		t.Errorf("restored line = %+v", restored)
	}
	if !got.Visible() {
		t.Error("cart should be visible after an addition")
	}

	other, err := fx.uc.Get(ctx, "s2")
	if err != nil || !other.IsEmpty() {
		t.Errorf("other session = %+v, %v", other, err)
	}
}

func TestAddErrors(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if _, err := fx.uc.AddDirect(ctx, "s", 999); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("AddDirect(unknown) error = %v", err)
	}
	if _, err := fx.uc.AddCustomized(ctx, "s", &dto.AddCustomizedInput{ProductID: cocaColaID, UseSecondaryTier: true}); !errors.Is(err, cart.ErrTierUnavailable) {
		t.Errorf("secondary tier on a drink error = %v", err)
	}
	if _, err := fx.uc.AddCustomized(ctx, "s", &dto.AddCustomizedInput{ProductID: clasicaID, AddedIDs: []int{cocaColaID}}); !errors.Is(err, cart.ErrNotAnAddOn) {
		t.Errorf("drink as add-on error = %v", err)
	}
	if _, err := fx.uc.AddCustomized(ctx, "s", &dto.AddCustomizedInput{ProductID: clasicaID, AddedIDs: []int{tocinetaID, tocinetaID}}); !errors.Is(err, cart.ErrDuplicateAddOn) {
		t.Errorf("repeated add-on error = %v", err)
	}

	c, _ := fx.uc.AddDirect(ctx, "s", cocaColaID)
	if _, err := fx.uc.AttachDrink(ctx, "s", c.Lines()[0].ID, cocaColaID); !errors.Is(err, cart.ErrDrinkNotAllowed) {
		t.Errorf("drink on a drink error = %v", err)
	}
	// Failed mutations leave the stored cart alone.
	got, _ := fx.uc.Get(ctx, "s")
	if got.Len() != 1 || got.Lines()[0].ComboDrink != nil {
		t.Errorf("cart = %+v", got.Lines())
	}
}

func TestSwitchTierAndQuantity(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	c, _ := fx.uc.AddDirect(ctx, "s", clasicaID)
	id := c.Lines()[0].ID

	c, err := fx.uc.SwitchTier(ctx, "s", id, true)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Total().Equal(decimal.NewFromInt(16000)) {
		t.Errorf("after upgrade total = %s", c.Total())
	}
	if _, err := fx.uc.SwitchTier(ctx, "s", id, true); !errors.Is(err, cart.ErrTierUnavailable) {
		t.Errorf("second upgrade error = %v", err)
	}

	c, _ = fx.uc.UpdateQuantity(ctx, "s", id, 3)
	if c.ItemCount() != 3 {
		t.Errorf("ItemCount() = %d", c.ItemCount())
	}
	c, _ = fx.uc.UpdateQuantity(ctx, "s", id, 0)
	if !c.IsEmpty() {
		t.Error("quantity 0 should remove the line")
	}
}

func TestCheckout(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if _, _, err := fx.uc.Checkout(ctx, "s", order.InStore(1)); !errors.Is(err, order.ErrEmptyCart) {
		t.Errorf("Checkout(empty) error = %v", err)
	}

	fx.uc.AddDirect(ctx, "s", clasicaID)
	fx.uc.AddDirect(ctx, "s", clasicaID)

	if _, _, err := fx.uc.Checkout(ctx, "s", order.InStore(0)); !errors.Is(err, order.ErrMissingTable) {
		t.Fatalf("Checkout(no table) error = %v", err)
	}
	if c, _ := fx.uc.Get(ctx, "s"); c.ItemCount() != 2 {
		t.Fatalf("failed checkout changed the cart: %d items", c.ItemCount())
	}

	entry, c, err := fx.uc.Checkout(ctx, "s", order.InStore(4))
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart not cleared after checkout")
	}
	if entry.Order.Items[0].Quantity != 2 || !entry.Order.Total.Equal(decimal.NewFromInt(28000)) {
		t.Errorf("order = %+v", entry.Order)
	}
	if _, ok := fx.feed.Get(entry.Order.ID); !ok {
		t.Error("order missing from the feed")
	}
}

// flakyRepo fails Save calls while failSave is set.
type flakyRepo struct {
	*cartrepo.MemoryRepository
	mu       sync.Mutex
	failSave bool
}

func (r *flakyRepo) Save(ctx context.Context, sessionID string, s cart.Snapshot) error {
	r.mu.Lock()
	fail := r.failSave
	r.mu.Unlock()
	if fail {
		return errors.New("redis down")
	}
	return r.MemoryRepository.Save(ctx, sessionID, s)
}

func (r *flakyRepo) setFailSave(v bool) {
	r.mu.Lock()
	r.failSave = v
	r.mu.Unlock()
}

func TestCheckout_CartWriteFailureAfterOrder(t *testing.T) {
	ctx := context.Background()
	menu, err := catalog.Load(ctx, menurepo.NewEmbeddedRepository())
	if err != nil {
		t.Fatal(err)
	}
	composer, err := notify.NewComposer(notify.Config{Restaurant: "Alex Burger", Phone: "573112488013"})
	if err != nil {
		t.Fatal(err)
	}
	f := feed.New(nil, logger.NewNop())
	orders := orderuc.NewOrderUseCase(nil, f, 10, logger.NewNop())
	repo := &flakyRepo{MemoryRepository: cartrepo.NewMemoryRepository()}
	uc := NewCartUseCase(repo, menu, orders, composer, nil, logger.NewNop())

	if _, err := uc.AddDirect(ctx, "s", clasicaID); err != nil {
		t.Fatal(err)
	}

	repo.setFailSave(true)
	entry, c, err := uc.Checkout(ctx, "s", order.InStore(3))
	if err != nil {
		t.Fatalf("Checkout() error = %v, want the placed order", err)
	}
	if entry == nil || !c.IsEmpty() {
		t.Fatalf("entry = %+v, cart empty = %v", entry, c.IsEmpty())
	}

	repo.setFailSave(false)
	if _, _, err := uc.Checkout(ctx, "s", order.InStore(3)); !errors.Is(err, order.ErrEmptyCart) {
		t.Errorf("retry error = %v, want ErrEmptyCart", err)
	}
	if got := f.Snapshot(); len(got) != 1 {
		t.Errorf("active orders = %d, want 1", len(got))
	}
}

func TestCheckoutIntoOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.uc.AddDirect(ctx, "waiter", clasicaID)
	placed, _, err := fx.uc.Checkout(ctx, "waiter", order.InStore(4))
	if err != nil {
		t.Fatal(err)
	}

	fx.uc.AddDirect(ctx, "waiter", clasicaID)
	fx.uc.AddDirect(ctx, "waiter", cocaColaID)
	entry, c, err := fx.uc.CheckoutIntoOrder(ctx, "waiter", placed.Order.ID)
	if err != nil {
		t.Fatalf("CheckoutIntoOrder() error = %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart not cleared")
	}
	if len(entry.Order.Items) != 2 || entry.Order.Items[0].Quantity != 2 {
		t.Errorf("items = %+v", entry.Order.Items)
	}
	if !entry.Order.Total.Equal(decimal.NewFromInt(32000)) {
		t.Errorf("total = %s, want 32000", entry.Order.Total)
	}

	fx.uc.AddDirect(ctx, "waiter", clasicaID)
	if _, _, err := fx.uc.CheckoutIntoOrder(ctx, "waiter", "missing"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("unknown order error = %v", err)
	}
}

func TestShareLink(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if _, err := fx.uc.ShareLink(ctx, "s"); !errors.Is(err, order.ErrEmptyCart) {
		t.Errorf("ShareLink(empty) error = %v", err)
	}
	fx.uc.AddDirect(ctx, "s", clasicaID)
	link, err := fx.uc.ShareLink(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(link.Summary, "*1x Clasica (Sin Papa)* ($14.000)") {
		t.Errorf("summary = %q", link.Summary)
	}
	if !strings.HasPrefix(link.Link, "https://wa.me/573112488013?text=Hola%20Alex%20Burger") {
		t.Errorf("link = %q", link.Link)
	}
}

func TestConcurrentAdds(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fx.uc.AddDirect(ctx, "busy", clasicaID); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	c, _ := fx.uc.Get(ctx, "busy")
	if c.Len() != 1 || c.ItemCount() != 20 {
		t.Errorf("lines = %d, items = %d; want 1 line of 20", c.Len(), c.ItemCount())
	}
}
