package order

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMissingTable      = errors.New("in-store order requires a table number")
	ErrUnknownTable      = errors.New("table number out of range")
	ErrMissingCustomer   = errors.New("delivery order requires customer name and phone")
	ErrInvalidOrderType  = errors.New("unknown order type")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderClosed       = errors.New("order is already closed")
	ErrNotDineIn         = errors.New("operation only valid for in-store orders")
	ErrItemNotFound      = errors.New("order item not found")
	ErrLastItem          = errors.New("cannot remove the last item of an order")
	ErrStaleOrder        = errors.New("order was modified concurrently")
	ErrStoreUnavailable  = errors.New("order store unavailable")
)

// TransitionError reports a rejected lifecycle move. It matches ErrIllegalTransition.
type TransitionError struct {
	From model.OrderStatus
	To   model.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Channel carries the submission details that depend on the order type.
type Channel struct {
	Type          model.OrderType
	TableNumber   int
	CustomerName  string
	CustomerPhone string
}

func InStore(table int) Channel {
	return Channel{Type: model.OrderTypeInStore, TableNumber: table}
}

func Delivery(name, phone string) Channel {
	return Channel{Type: model.OrderTypeDelivery, CustomerName: name, CustomerPhone: phone}
}
