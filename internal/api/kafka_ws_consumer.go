package api

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"gestionale/server/internal/services"
)

// KafkaWSConsumer reads order events from Kafka and pushes them to the
// dashboard WebSocket hub so connected clients refresh without polling.
type KafkaWSConsumer struct {
	topic     string
	groupID   string
	reader    *kafka.Reader
	ctx       context.Context
	cancel    context.CancelFunc
	processed int64
	lastLog   int64
}

// NewKafkaWSConsumer creates a consumer on the order events topic.
func NewKafkaWSConsumer(brokers string, username, password, caCert string) *KafkaWSConsumer {
	brokerList := ParseKafkaBrokers(brokers)
	ctx, cancel := context.WithCancel(context.Background())

	dialer := CreateKafkaDialer(username, password, caCert)

	groupID := "dashboard-ws-group"
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokerList,
		Topic:       services.OrderEventsTopic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     1 * time.Second,
		Dialer:      dialer,
	})

	return &KafkaWSConsumer{
		topic:   services.OrderEventsTopic,
		groupID: groupID,
		reader:  reader,
		ctx:     ctx,
		cancel:  cancel,
		lastLog: time.Now().Unix(),
	}
}

// Start begins reading events and broadcasting them to the hub.
func (kc *KafkaWSConsumer) Start() {
	log.Printf("📡 Kafka WS consumer started: topic=%s, groupID=%s", kc.topic, kc.groupID)

	go func() {
		for {
			select {
			case <-kc.ctx.Done():
				log.Println("🛑 Kafka WS consumer stopped")
				return
			default:
				msg, err := kc.reader.ReadMessage(kc.ctx)
				if err != nil {
					if err == context.Canceled {
						return
					}
					log.Printf("⚠️ Kafka WS consumer read error: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}

				// Events are published as JSON; skip anything that isn't.
				var event services.OrderEvent
				if err := json.Unmarshal(msg.Value, &event); err != nil {
					continue
				}

				DashboardHub.BroadcastMessage(msg.Value)

				processed := atomic.AddInt64(&kc.processed, 1)
				now := time.Now().Unix()
				if now-atomic.LoadInt64(&kc.lastLog) >= 5 {
					atomic.StoreInt64(&kc.lastLog, now)
					log.Printf("📊 Kafka WS consumer: %d events relayed", processed)
				}
			}
		}
	}()
}

// Stop shuts down the consumer.
func (kc *KafkaWSConsumer) Stop() {
	kc.cancel()
	if kc.reader != nil {
		kc.reader.Close()
	}
	log.Println("🛑 Kafka WS consumer stopped")
}
