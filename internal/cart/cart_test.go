package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/catalog/repository"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/pricing"
	"github.com/shopspring/decimal"
)

func testMenu(t *testing.T) *catalog.Menu {
	t.Helper()
	menu, err := catalog.Load(context.Background(), repository.NewEmbeddedRepository())
	if err != nil {
		t.Fatalf("load menu: %v", err)
	}
	return menu
}

func product(t *testing.T, menu *catalog.Menu, id int) model.Product {
	t.Helper()
	p, ok := menu.ByID(id)
	if !ok {
		t.Fatalf("product %d not in menu", id)
	}
	return p
}

func frozenClock() func() time.Time {
	now := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func cop(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

const (
	clasicaID  = 1
	tradicID   = 14
	salchiID   = 23
	papasLocas = 28
	chorizoID  = 42
	tocinetaID = 45
	cocaColaID = 46
	limonadaID = 49
)

func TestAddDirect_MergesIdenticalLines(t *testing.T) {
	menu := testMenu(t)
	c := New(WithClock(frozenClock()))

	coca := product(t, menu, cocaColaID)
	c.AddDirect(coca)
	line := c.AddDirect(coca)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if line.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", line.Quantity)
	}
	if got := pricing.LineTotal(line); !got.Equal(cop(8000)) {
		t.Errorf("LineTotal() = %s, want 8000", got)
	}
	if line.Variant.Label != "" || !line.Variant.Price.Equal(coca.Price) {
		t.Errorf("single tier variant = %+v", line.Variant)
	}
}

func TestAddDirect_UsesPrimaryTier(t *testing.T) {
	menu := testMenu(t)
	c := New()

	line := c.AddDirect(product(t, menu, papasLocas))
	if line.Variant.Label != "1 Persona" || !line.Variant.Price.Equal(cop(16000)) {
		t.Errorf("Variant = %+v, want 1 Persona / 16000", line.Variant)
	}
}

func TestAddCustomized_MergeRule(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)
	tocineta := product(t, menu, tocinetaID)
	chorizo := product(t, menu, chorizoID)

	tests := []struct {
		name      string
		first     model.Customizations
		second    model.Customizations
		direct    bool
		wantLines int
	}{
		{
			name:      "same add-ons in any order merge",
			first:     model.Customizations{Added: []model.Product{tocineta, chorizo}, Removed: []string{"Cebolla", "Tomate"}},
			second:    model.Customizations{Added: []model.Product{chorizo, tocineta}, Removed: []string{"Tomate", "Cebolla"}},
			wantLines: 1,
		},
		{
			name:      "different notes do not merge",
			first:     model.Customizations{Notes: "bien asada"},
			second:    model.Customizations{Notes: "término medio"},
			wantLines: 2,
		},
		{
			name:      "notes are trimmed before comparing",
			first:     model.Customizations{Notes: "sin hielo"},
			second:    model.Customizations{Notes: "  sin hielo "},
			wantLines: 1,
		},
		{
			name:      "customized never merges with direct add",
			first:     model.Customizations{Removed: []string{"Lechuga"}},
			direct:    true,
			wantLines: 2,
		},
		{
			name:      "empty customization merges with direct add",
			first:     model.Customizations{},
			direct:    true,
			wantLines: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithClock(frozenClock()))
			if _, err := c.AddCustomized(clasica, clasica.PrimaryVariant(), tt.first); err != nil {
				t.Fatalf("AddCustomized() error = %v", err)
			}
			if tt.direct {
				c.AddDirect(clasica)
			} else if _, err := c.AddCustomized(clasica, clasica.PrimaryVariant(), tt.second); err != nil {
				t.Fatalf("AddCustomized() error = %v", err)
			}
			if c.Len() != tt.wantLines {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLines)
			}
			if c.ItemCount() != 2 {
				t.Errorf("ItemCount() = %d, want 2", c.ItemCount())
			}
		})
	}
}

func TestAddCustomized_DifferentTierDoesNotMerge(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)
	secondary, _ := clasica.SecondaryVariant()

	c := New()
	c.AddDirect(clasica)
	if _, err := c.AddCustomized(clasica, secondary, model.Customizations{}); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestAddCustomized_Validation(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)
	coca := product(t, menu, cocaColaID)
	tocineta := product(t, menu, tocinetaID)

	tests := []struct {
		name    string
		variant model.Variant
		cust    model.Customizations
		wantErr error
	}{
		{"unknown tier", model.Variant{Label: "Triple", Price: cop(99000)}, model.Customizations{}, ErrInvalidVariant},
		{"tier price mismatch", model.Variant{Label: "Sin Papa", Price: cop(1)}, model.Customizations{}, ErrInvalidVariant},
		{"drink as add-on", clasica.PrimaryVariant(), model.Customizations{Added: []model.Product{coca}}, ErrNotAnAddOn},
		{"unknown ingredient", clasica.PrimaryVariant(), model.Customizations{Removed: []string{"Pepinillos"}}, ErrUnknownIngredient},
		{"repeated add-on", clasica.PrimaryVariant(), model.Customizations{Added: []model.Product{tocineta, tocineta}}, ErrDuplicateAddOn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			_, err := c.AddCustomized(clasica, tt.variant, tt.cust)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddCustomized() error = %v, want %v", err, tt.wantErr)
			}
			if !c.IsEmpty() {
				t.Error("rejected addition mutated the cart")
			}
		})
	}
}

func TestAddCustomized_RepeatedAddOnKeepsTotal(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)
	tocineta := product(t, menu, tocinetaID)
	c := New(WithClock(frozenClock()))

	if _, err := c.AddCustomized(clasica, clasica.PrimaryVariant(), model.Customizations{Added: []model.Product{tocineta}}); err != nil {
		t.Fatal(err)
	}
	_, err := c.AddCustomized(clasica, clasica.PrimaryVariant(), model.Customizations{Added: []model.Product{tocineta, tocineta}})
	if !errors.Is(err, ErrDuplicateAddOn) {
		t.Fatalf("AddCustomized() error = %v, want ErrDuplicateAddOn", err)
	}
	if c.Len() != 1 || c.ItemCount() != 1 {
		t.Errorf("Len() = %d, ItemCount() = %d, want 1 and 1", c.Len(), c.ItemCount())
	}
	if want := pricing.CartTotal(c.Lines()); !c.Total().Equal(want) {
		t.Errorf("Total() = %s, want %s", c.Total(), want)
	}
}

func TestLinesWithDrinkAreNeverMergeTargets(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)

	c := New(WithClock(frozenClock()))
	line := c.AddDirect(clasica)
	if err := c.AttachDrink(line.ID, product(t, menu, cocaColaID)); err != nil {
		t.Fatal(err)
	}

	second := c.AddDirect(clasica)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if second.ID == line.ID {
		t.Error("new line reused the id of the drink line")
	}
	if got, _ := c.Line(line.ID); got.Quantity != 1 {
		t.Errorf("drink line quantity = %d, want 1", got.Quantity)
	}
}

func TestLineIDsAreUnique(t *testing.T) {
	menu := testMenu(t)
	c := New(WithClock(frozenClock()))

	ids := map[int64]bool{}
	for _, id := range []int{clasicaID, tradicID, salchiID, cocaColaID, limonadaID} {
		line := c.AddDirect(product(t, menu, id))
		if ids[line.ID] {
			t.Fatalf("duplicate line id %d", line.ID)
		}
		ids[line.ID] = true
	}
}

func TestUpdateQuantity(t *testing.T) {
	menu := testMenu(t)
	c := New(WithClock(frozenClock()))
	a := c.AddDirect(product(t, menu, clasicaID))
	b := c.AddDirect(product(t, menu, cocaColaID))

	c.UpdateQuantity(a.ID, 3)
	if got, _ := c.Line(a.ID); got.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", got.Quantity)
	}

	c.UpdateQuantity(999, 5)
	if c.Len() != 2 {
		t.Errorf("unknown id changed the cart")
	}

	c.UpdateQuantity(b.ID, 0)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after qty 0", c.Len())
	}
	if _, ok := c.Line(b.ID); ok {
		t.Error("line still present after qty 0")
	}

	c.UpdateQuantity(a.ID, -2)
	if !c.IsEmpty() {
		t.Error("negative quantity did not remove the line")
	}
}

func TestRemoveLine_Idempotent(t *testing.T) {
	menu := testMenu(t)
	c := New()
	line := c.AddDirect(product(t, menu, clasicaID))

	c.RemoveLine(line.ID)
	c.RemoveLine(line.ID)
	if !c.IsEmpty() {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestComboDrink(t *testing.T) {
	menu := testMenu(t)
	c := New(WithClock(frozenClock()))
	burger := c.AddDirect(product(t, menu, clasicaID))
	drinkLine := c.AddDirect(product(t, menu, cocaColaID))
	addOnLine := c.AddDirect(product(t, menu, tocinetaID))

	before := c.Total()

	if err := c.AttachDrink(burger.ID, product(t, menu, cocaColaID)); err != nil {
		t.Fatalf("AttachDrink() error = %v", err)
	}
	if err := c.AttachDrink(burger.ID, product(t, menu, limonadaID)); err != nil {
		t.Fatalf("replace drink error = %v", err)
	}
	got, _ := c.Line(burger.ID)
	if got.ComboDrink == nil || got.ComboDrink.ID != limonadaID {
		t.Fatalf("ComboDrink = %+v, want Limonada", got.ComboDrink)
	}
	if !c.Total().Equal(before.Add(cop(5000))) {
		t.Errorf("Total() = %s, want %s", c.Total(), before.Add(cop(5000)))
	}

	c.DetachDrink(burger.ID)
	if !c.Total().Equal(before) {
		t.Errorf("Total() after detach = %s, want %s", c.Total(), before)
	}

	if err := c.AttachDrink(drinkLine.ID, product(t, menu, limonadaID)); !errors.Is(err, ErrDrinkNotAllowed) {
		t.Errorf("drink on Bebidas line error = %v, want ErrDrinkNotAllowed", err)
	}
	if err := c.AttachDrink(addOnLine.ID, product(t, menu, limonadaID)); !errors.Is(err, ErrDrinkNotAllowed) {
		t.Errorf("drink on Adicionales line error = %v, want ErrDrinkNotAllowed", err)
	}
	if err := c.AttachDrink(burger.ID, product(t, menu, tocinetaID)); !errors.Is(err, ErrNotADrink) {
		t.Errorf("non-drink error = %v, want ErrNotADrink", err)
	}
	if err := c.AttachDrink(12345, product(t, menu, limonadaID)); err != nil {
		t.Errorf("unknown line error = %v, want nil", err)
	}
}

func TestTierSwitch(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)
	tocineta := product(t, menu, tocinetaID)

	c := New()
	line, err := c.AddCustomized(clasica, clasica.PrimaryVariant(), model.Customizations{Added: []model.Product{tocineta}})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AttachDrink(line.ID, product(t, menu, cocaColaID)); err != nil {
		t.Fatal(err)
	}
	c.DetachDrink(line.ID)

	if got := c.Total(); !got.Equal(cop(17500)) {
		t.Fatalf("Total() = %s, want 17500", got)
	}

	if err := c.UpgradeToSecondaryTier(line.ID); err != nil {
		t.Fatalf("UpgradeToSecondaryTier() error = %v", err)
	}
	upgraded, _ := c.Line(line.ID)
	if upgraded.Variant.Label != "Con Papa" || len(upgraded.Customizations.Added) != 1 {
		t.Errorf("upgraded line = %+v", upgraded)
	}
	if got := c.Total(); !got.Equal(cop(19500)) {
		t.Errorf("Total() = %s, want 19500", got)
	}

	if err := c.UpgradeToSecondaryTier(line.ID); !errors.Is(err, ErrTierUnavailable) {
		t.Errorf("second upgrade error = %v, want ErrTierUnavailable", err)
	}

	if err := c.DowngradeToPrimaryTier(line.ID); err != nil {
		t.Fatalf("DowngradeToPrimaryTier() error = %v", err)
	}
	if got := c.Total(); !got.Equal(cop(17500)) {
		t.Errorf("Total() after downgrade = %s, want 17500", got)
	}
	if err := c.DowngradeToPrimaryTier(line.ID); !errors.Is(err, ErrTierUnavailable) {
		t.Errorf("second downgrade error = %v, want ErrTierUnavailable", err)
	}
}

func TestTierSwitch_KeepsComboDrink(t *testing.T) {
	menu := testMenu(t)
	c := New()
	line := c.AddDirect(product(t, menu, clasicaID))
	if err := c.AttachDrink(line.ID, product(t, menu, cocaColaID)); err != nil {
		t.Fatal(err)
	}
	if err := c.UpgradeToSecondaryTier(line.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Line(line.ID)
	if got.ComboDrink == nil {
		t.Error("combo drink lost on tier switch")
	}
	if !c.Total().Equal(cop(20000)) {
		t.Errorf("Total() = %s, want 20000", c.Total())
	}
}

func TestTierSwitch_SingleTierProduct(t *testing.T) {
	menu := testMenu(t)
	c := New()
	line := c.AddDirect(product(t, menu, salchiID))

	if err := c.UpgradeToSecondaryTier(line.ID); !errors.Is(err, ErrTierUnavailable) {
		t.Errorf("UpgradeToSecondaryTier() error = %v, want ErrTierUnavailable", err)
	}
	if err := c.DowngradeToPrimaryTier(line.ID); !errors.Is(err, ErrTierUnavailable) {
		t.Errorf("DowngradeToPrimaryTier() error = %v, want ErrTierUnavailable", err)
	}
}

func TestObserver(t *testing.T) {
	menu := testMenu(t)
	var events []Event
	c := New(WithObserver(func(e Event) { events = append(events, e) }))

	if c.Visible() {
		t.Fatal("new cart is visible")
	}
	line := c.AddDirect(product(t, menu, cocaColaID))
	if !c.Visible() {
		t.Error("cart not visible after add")
	}
	c.Hide()
	c.UpdateQuantity(line.ID, 4)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventOpened || events[0].ItemCount != 1 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Type != EventChanged || !events[1].Total.Equal(cop(16000)) {
		t.Errorf("second event = %+v", events[1])
	}
	if c.Visible() {
		t.Error("quantity change reopened the cart")
	}
}

func TestSnapshotRestore(t *testing.T) {
	menu := testMenu(t)
	clasica := product(t, menu, clasicaID)
	secondary, _ := clasica.SecondaryVariant()

	c := New(WithClock(frozenClock()))
	burger, err := c.AddCustomized(clasica, secondary, model.Customizations{
		Added:   []model.Product{product(t, menu, tocinetaID)},
		Removed: []string{"Cebolla"},
		Notes:   "sin sal",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AttachDrink(burger.ID, product(t, menu, cocaColaID)); err != nil {
		t.Fatal(err)
	}
	c.AddDirect(product(t, menu, salchiID))
	c.UpdateQuantity(burger.ID, 2)

	restored := Restore(c.Snapshot(), menu, WithClock(frozenClock()))

	if restored.Len() != c.Len() {
		t.Fatalf("Len() = %d, want %d", restored.Len(), c.Len())
	}
	if !restored.Total().Equal(c.Total()) {
		t.Errorf("Total() = %s, want %s", restored.Total(), c.Total())
	}
	got, _ := restored.Line(burger.ID)
	if got.Variant.Label != "Con Papa" || got.ComboDrink == nil || got.Customizations.Notes != "sin sal" {
		t.Errorf("restored line = %+v", got)
	}

	next := restored.AddDirect(product(t, menu, cocaColaID))
	for _, line := range c.Lines() {
		if line.ID == next.ID {
			t.Errorf("restored cart reissued line id %d", next.ID)
		}
	}
}

func TestRestore_DropsVanishedProducts(t *testing.T) {
	menu := testMenu(t)
	snap := Snapshot{Lines: []LineSnapshot{
		{ID: 1, ProductID: 9999, Quantity: 1},
		{ID: 2, ProductID: cocaColaID, Quantity: 2},
	}}

	c := Restore(snap, menu)
	if c.Len() != 1 || c.ItemCount() != 2 {
		t.Errorf("Len() = %d, ItemCount() = %d", c.Len(), c.ItemCount())
	}
}

func TestClear(t *testing.T) {
	menu := testMenu(t)
	c := New()
	c.AddDirect(product(t, menu, clasicaID))
	c.Clear()
	if !c.IsEmpty() || c.Visible() || !c.Total().IsZero() {
		t.Errorf("Clear() left %d lines, visible=%v", c.Len(), c.Visible())
	}
}
