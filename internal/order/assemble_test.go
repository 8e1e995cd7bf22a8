package order

import (
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/shopspring/decimal"
)

var (
	now = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	clasica = model.Product{
		ID: 1, Name: "Clasica", Category: model.CategoryHamburguesas,
		Price: decimal.NewFromInt(14000), PriceLabel: "Sin Papa",
		BaseIngredients: []string{"Cebolla", "Lechuga", "Tomate", "Salsas"},
	}
	tocineta = model.Product{ID: 45, Name: "Tocineta", Category: model.CategoryAdicionales, Price: decimal.NewFromInt(3500)}
	cocaCola = model.Product{ID: 46, Name: "Coca-Cola", Category: model.CategoryBebidas, Price: decimal.NewFromInt(4000)}
)

func sampleLines() []model.CartItem {
	return []model.CartItem{
		{
			ID: 1, Product: clasica, Quantity: 2, Variant: clasica.PrimaryVariant(),
			Customizations: model.Customizations{Added: []model.Product{tocineta}, Removed: []string{"Cebolla"}, Notes: "bien asada"},
			ComboDrink:     &cocaCola,
		},
		{ID: 2, Product: cocaCola, Quantity: 1, Variant: cocaCola.PrimaryVariant()},
	}
}

func TestAssemble_InStore(t *testing.T) {
	lines := sampleLines()
	o, err := Assemble(lines, InStore(4), now)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if o.Status != model.OrderStatusPending || !o.CreatedAt.Equal(now) || o.CompletedAt != nil {
		t.Errorf("order header = %+v", o)
	}
	if o.Table() != 4 || o.CustomerName != nil {
		t.Errorf("channel fields = table %d, name %v", o.Table(), o.CustomerName)
	}
	// (14000 + 3500 + 4000) * 2 + 4000
	if !o.Total.Equal(decimal.NewFromInt(47000)) {
		t.Errorf("Total = %s, want 47000", o.Total)
	}

	first := o.Items[0]
	if first.ProductName != "Clasica" || first.Variant != "Sin Papa" || first.Quantity != 2 {
		t.Errorf("first item = %+v", first)
	}
	if !first.VariantPrice.Equal(decimal.NewFromInt(14000)) || !first.UnitPrice.Equal(decimal.NewFromInt(21500)) {
		t.Errorf("first item prices = %s / %s", first.VariantPrice, first.UnitPrice)
	}
	if len(first.Added) != 1 || first.Added[0] != "Tocineta" || first.Removed[0] != "Cebolla" || first.Notes != "bien asada" {
		t.Errorf("first item customizations = %+v", first)
	}
	if first.ComboDrink == nil || *first.ComboDrink != "Coca-Cola" {
		t.Errorf("first item drink = %v", first.ComboDrink)
	}
	if o.Items[1].ComboDrink != nil {
		t.Error("second item should have no drink")
	}
	if !o.Items.Total().Equal(o.Total) {
		t.Errorf("items total %s != order total %s", o.Items.Total(), o.Total)
	}
}

func TestAssemble_Delivery(t *testing.T) {
	o, err := Assemble(sampleLines(), Delivery("  Ana  ", " 3001234567 "), now)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if o.OrderType != model.OrderTypeDelivery || *o.CustomerName != "Ana" || *o.CustomerPhone != "3001234567" {
		t.Errorf("delivery fields = %+v", o)
	}
	if o.TableNumber != nil {
		t.Error("delivery order carries a table number")
	}
}

func TestAssemble_Validation(t *testing.T) {
	tests := []struct {
		name    string
		lines   []model.CartItem
		ch      Channel
		wantErr error
	}{
		{"empty cart", nil, InStore(1), ErrEmptyCart},
		{"in-store without table", sampleLines(), InStore(0), ErrMissingTable},
		{"in-store negative table", sampleLines(), InStore(-3), ErrMissingTable},
		{"delivery without name", sampleLines(), Delivery("", "300"), ErrMissingCustomer},
		{"delivery blank phone", sampleLines(), Delivery("Ana", "   "), ErrMissingCustomer},
		{"unknown type", sampleLines(), Channel{Type: "pickup"}, ErrInvalidOrderType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.lines, tt.ch, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Assemble() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssemble_DoesNotMutateLines(t *testing.T) {
	lines := sampleLines()
	o, err := Assemble(lines, InStore(2), now)
	if err != nil {
		t.Fatal(err)
	}

	o.Items[0].Removed[0] = "changed"
	o.Items[0].Quantity = 99
	if lines[0].Customizations.Removed[0] != "Cebolla" || lines[0].Quantity != 2 {
		t.Error("order items alias the cart lines")
	}
	if len(lines) != 2 {
		t.Error("cart lines changed length")
	}
}
