package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"gestionale/server/internal/models"
)

const OrderEventsTopic = "production-orders"

// Order event types published on OrderEventsTopic.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
	OrderEventRemoved       = "order.removed"
)

// OrderEvent is the JSON payload broadcast whenever a production order
// changes. Open dashboards consume these (through the Kafka→WebSocket
// bridge) to refresh without polling.
type OrderEvent struct {
	Type             string              `json:"type"`
	OrderID          string              `json:"order_id"`
	ProductionNumber string              `json:"order_production_number"`
	Status           models.OrderStatus  `json:"status"`
	StatusLabel      string              `json:"status_label"`
	PreviousStatus   *models.OrderStatus `json:"previous_status,omitempty"`
	OccurredAt       time.Time           `json:"occurred_at"`
}

// OrderEventPublisher writes order events to Kafka. A publisher built
// without brokers is a no-op, so callers never need to nil-check.
type OrderEventPublisher struct {
	writer    *kafka.Writer
	sentCount int64
}

func NewOrderEventPublisher(kafkaBrokers string) *OrderEventPublisher {
	var writer *kafka.Writer
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		writer = &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    OrderEventsTopic,
			Balancer: &kafka.LeastBytes{},
			Async:    true,
		}
		log.Printf("✅ Kafka producer connected to %s (topic %s)", kafkaBrokers, OrderEventsTopic)
	}
	return &OrderEventPublisher{writer: writer}
}

// Publish sends the event asynchronously. The request that triggered the
// mutation never waits on Kafka.
func (p *OrderEventPublisher) Publish(event OrderEvent) {
	if p == nil || p.writer == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	event.StatusLabel = event.Status.String()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Kafka: failed to encode event for order %s: %v", event.OrderID, err)
		return
	}

	go func() {
		// Background context with its own timeout: the request context
		// may already be cancelled by the time this runs.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(event.OrderID),
			Value: payload,
		})
		if err != nil {
			// The topic is auto-created on first use; ignore that window.
			errStr := err.Error()
			if !strings.Contains(errStr, "Unknown Topic Or Partition") &&
				!strings.Contains(errStr, "context canceled") {
				log.Printf("⚠️ Kafka error publishing %s for order %s: %v", event.Type, event.OrderID, err)
			}
			return
		}
		if atomic.AddInt64(&p.sentCount, 1) <= 10 {
			log.Printf("📨 Kafka: published %s for order %s", event.Type, event.OrderID)
		}
	}()
}

// Close flushes and closes the Kafka writer.
func (p *OrderEventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
