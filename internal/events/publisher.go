// Package events publishes order lifecycle events for downstream consumers
// (fulfilment, analytics). Publishing is best effort: a broker outage must
// never fail a checkout.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

type Publisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
}

type orderPlacedEvent struct {
	OrderID     string             `json:"order_id"`
	CustomerID  int64              `json:"customer_id"`
	Items       []domain.OrderItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	Currency    string             `json:"currency"`
	PlacedAt    time.Time          `json:"placed_at"`
}

// messageWriter is the slice of kafka.Writer the publisher needs; tests
// substitute it.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[any]
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "orders",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return newPublisher(w)
}

func newPublisher(w messageWriter) *KafkaPublisher {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "order-events",
		Timeout: 30 * time.Second,
	})
	return &KafkaPublisher{writer: w, breaker: breaker}
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order *domain.Order) error {
	event := orderPlacedEvent{
		OrderID:     order.ID.String(),
		CustomerID:  order.CustomerID,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		PlacedAt:    order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()), // order id for partition ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	return err
}
