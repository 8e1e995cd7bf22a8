package dto

import (
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderItemsUpdated  = "OrderItemsUpdated"
)

// OrderEvent is the envelope written to the order events topic.
type OrderEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   model.Order `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewOrderEvent(eventType string, o model.Order, now time.Time) OrderEvent {
	return OrderEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   o,
		Timestamp: now,
	}
}
