package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order/dto"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Ticketer renders the kitchen ticket of an order.
type Ticketer interface {
	OrderSummary(o *model.Order) string
	Link(text string) string
}

// OrderListener consumes the order event stream and prints a ticket for
// every new order.
type OrderListener struct {
	consumer MessageReader
	tickets  Ticketer
	logger   logger.ZapLogger
}

func NewOrderListener(consumer MessageReader, tickets Ticketer, logger logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		tickets:  tickets,
		logger:   logger,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting Order Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Order Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(msg.Value)
		}
	}
}

func (l *OrderListener) processMessage(value []byte) {
	var event dto.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case dto.EventOrderCreated:
		summary := l.tickets.OrderSummary(&event.Payload)
		fields := []zap.Field{
			zap.String("order_id", event.Payload.ID),
			zap.String("order_type", string(event.Payload.OrderType)),
			zap.String("ticket", summary),
		}
		if !event.Payload.IsDineIn() {
			fields = append(fields, zap.String("whatsapp", l.tickets.Link(summary)))
		}
		l.logger.Info("New order ticket", fields...)
	case dto.EventOrderStatusChanged:
		l.logger.Info("Order status changed",
			zap.String("order_id", event.Payload.ID),
			zap.String("status", string(event.Payload.Status)),
		)
	case dto.EventOrderItemsUpdated:
		summary := l.tickets.OrderSummary(&event.Payload)
		l.logger.Info("Order items updated",
			zap.String("order_id", event.Payload.ID),
			zap.String("ticket", summary),
		)
	}
}
