// Package events defines the store's domain events and the broker-agnostic
// publisher and consumer contracts.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pcstore/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TypeOrderPlaced is emitted once an order has been committed.
const TypeOrderPlaced = "order.placed"

// Handler processes one received event.
type Handler = func(ctx context.Context, eventType string, body []byte) error

// Publisher sends an event body under a partitioning key.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, body []byte) error
}

// Consumer blocks delivering events to handle until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, handle Handler) error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, []byte) error { return nil }

// OrderPlacedItem is one line of an OrderPlaced event.
type OrderPlacedItem struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderPlaced is the payload of TypeOrderPlaced.
type OrderPlaced struct {
	OrderID    uint              `json:"order_id"`
	CustomerID uint              `json:"customer_id"`
	CartID     string            `json:"cart_id"`
	PlacedAt   time.Time         `json:"placed_at"`
	Total      decimal.Decimal   `json:"total"`
	Items      []OrderPlacedItem `json:"items"`
}

// NewOrderPlaced builds the event for a freshly placed order.
func NewOrderPlaced(order *models.Order, cartID string) OrderPlaced {
	ev := OrderPlaced{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		CartID:     cartID,
		PlacedAt:   order.PlacedAt,
		Total:      decimal.Zero,
		Items:      make([]OrderPlacedItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		ev.Items = append(ev.Items, OrderPlacedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		ev.Total = ev.Total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return ev
}

// Key is the partitioning key of the event.
func (e OrderPlaced) Key() string {
	return fmt.Sprintf("order-%d", e.OrderID)
}

// PublishOrderPlaced encodes ev and sends it through p.
func PublishOrderPlaced(ctx context.Context, p Publisher, ev OrderPlaced) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", TypeOrderPlaced, err)
	}
	return p.Publish(ctx, ev.Key(), TypeOrderPlaced, body)
}

// LogHandler returns a Handler that records received events. Unknown event
// types are logged and acknowledged.
func LogHandler(logger *zap.Logger) Handler {
	return func(_ context.Context, eventType string, body []byte) error {
		switch eventType {
		case TypeOrderPlaced:
			var ev OrderPlaced
			if err := json.Unmarshal(body, &ev); err != nil {
				return fmt.Errorf("failed to decode %s: %w", eventType, err)
			}
			if ev.OrderID == 0 {
				return errors.New("order.placed event without order id")
			}
			logger.Info("order placed",
				zap.Uint("order_id", ev.OrderID),
				zap.Uint("customer_id", ev.CustomerID),
				zap.Int("items", len(ev.Items)),
				zap.String("total", ev.Total.String()))
		default:
			logger.Warn("ignoring unknown event", zap.String("type", eventType))
		}
		return nil
	}
}
