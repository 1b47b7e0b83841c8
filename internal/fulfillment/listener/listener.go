package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hardstock/inventory-service/internal/fulfillment"
	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
	"github.com/hardstock/inventory-service/pkg/broker"
	"github.com/hardstock/inventory-service/pkg/logger"
	"go.uber.org/zap"
)

// OrderListener consumes order events and submits them to the fulfillment
// engine. Redelivery is harmless: the engine's idempotency check turns a
// replayed order into a no-op.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       fulfillment.UseCase
	logger   logger.ZapLogger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc fulfillment.UseCase, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order Kafka listener")
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
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	items := make([]dto.LineItemInput, len(event.Payload.Items))
	for i, item := range event.Payload.Items {
		items[i] = dto.LineItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		}
	}

	result, err := l.uc.FulfillOrder(ctx, event.Payload.ID, items)
	if err != nil {
		var insufficient *fulfillment.InsufficientStockError
		if errors.As(err, &insufficient) {
			l.logger.Warn("Order cannot be fulfilled",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", insufficient.ProductID),
				zap.Int("requested", insufficient.Requested),
				zap.Int("available", insufficient.Available),
			)
			return
		}
		l.logger.Error("Failed to fulfill order",
			zap.String("order_id", event.Payload.ID),
			zap.Error(err),
		)
		return
	}

	if result.AlreadyProcessed {
		l.logger.Info("Order already processed, skipping", zap.String("order_id", event.Payload.ID))
	}
}
