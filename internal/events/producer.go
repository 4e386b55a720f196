package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloversync/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Producer publishes sync events, keyed by order id so retries for one
// order stay on one partition.
type Producer struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewProducer(brokers, topic string, logger *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func (p *Producer) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published %s event for order %s", event.Type, event.OrderID)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
