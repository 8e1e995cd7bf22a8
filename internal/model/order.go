package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type OrderType string

const (
	OrderTypeInStore  OrderType = "in-store"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeInStore || t == OrderTypeDelivery
}

// OrderItem is the denormalized snapshot of a cart line taken at submission.
type OrderItem struct {
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Variant      string          `json:"variant"`
	VariantPrice decimal.Decimal `json:"variant_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Added        []string        `json:"added"`
	Removed      []string        `json:"removed"`
	Notes        string          `json:"notes"`
	ComboDrink   *string         `json:"combo_drink"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItems is stored as a JSONB column.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

func (o *OrderItems) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for order items: %T", src)
	}
	return json.Unmarshal(data, o)
}

func (o OrderItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o {
		total = total.Add(item.LineTotal())
	}
	return total
}

type Order struct {
	ID            string          `db:"id" json:"id"`
	Items         OrderItems      `db:"items" json:"items"`
	Total         decimal.Decimal `db:"total" json:"total"`
	Status        OrderStatus     `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
	CompletedAt   *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	OrderType     OrderType       `db:"order_type" json:"order_type"`
	CustomerName  *string         `db:"customer_name" json:"customer_name,omitempty"`
	CustomerPhone *string         `db:"customer_phone" json:"customer_phone,omitempty"`
	TableNumber   *int            `db:"table_number" json:"table_number,omitempty"`
}

func (o *Order) IsDineIn() bool {
	return o.OrderType == OrderTypeInStore
}

// Table returns the table number, or 0 when the order is not bound to one.
func (o *Order) Table() int {
	if o.TableNumber == nil {
		return 0
	}
	return *o.TableNumber
}
