package events

import (
	"context"
	"strings"
	"time"

	"fundashop-api/internal/core/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is the port for emitting order events. Publishing is best effort:
// implementations must never block request handling on broker availability.
type Publisher interface {
	// Publish enqueues an event keyed for partition ordering.
	Publish(key, value []byte)
	// Close flushes pending events and releases broker connections.
	Close()
}

// NewFromConfig returns a Kafka-backed publisher when brokers are configured,
// or a no-op publisher otherwise.
func NewFromConfig(brokers, topic string) Publisher {
	trimmed := strings.TrimSpace(brokers)
	if trimmed == "" {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(strings.Split(trimmed, ","), topic, 256)
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(key, value []byte) {}
func (NoopPublisher) Close()                    {}

// KafkaPublisher writes events to Kafka through a buffered inbox so request
// handlers never wait on the broker.
type KafkaPublisher struct {
	w     *kafka.Writer
	inbox chan kafka.Message
	done  chan struct{}
}

// NewKafkaPublisher creates a publisher and starts its delivery loop.
func NewKafkaPublisher(brokers []string, topic string, buffer int) *KafkaPublisher {
	p := &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox: make(chan kafka.Message, buffer),
		done:  make(chan struct{}),
	}

	go p.run()

	return p
}

func (p *KafkaPublisher) run() {
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			logger.Get().Warn("Failed to publish order event",
				zap.String("key", string(m.Key)),
				zap.Error(err),
			)
		}
	}
	_ = p.w.Close()
	close(p.done)
}

// Publish enqueues an event. Events are dropped with a warning when the inbox
// is full; order state in the store stays authoritative either way.
func (p *KafkaPublisher) Publish(key, value []byte) {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	}

	select {
	case p.inbox <- msg:
	default:
		logger.Get().Warn("Order event inbox full, dropping event",
			zap.String("key", string(key)),
		)
	}
}

// Close stops the delivery loop after flushing queued events.
func (p *KafkaPublisher) Close() {
	close(p.inbox)
	<-p.done
}
