// Package kafka publishes and consumes store events on a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// eventTypeHeader carries the event type of each message.
const eventTypeHeader = "event-type"

// Config holds Kafka connection details.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Client writes to and reads from a single topic.
type Client struct {
	cfg    Config
	writer *kafkaGo.Writer
	logger *zap.Logger
}

// NewClient builds a Client. No connection is made until the first write or read.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &Client{
		cfg: cfg,
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafkaGo.LeastBytes{},
		},
		logger: logger,
	}, nil
}

// Publish writes one message keyed by key.
func (c *Client) Publish(ctx context.Context, key, eventType string, body []byte) error {
	err := c.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:     []byte(key),
		Value:   body,
		Headers: []kafkaGo.Header{{Key: eventTypeHeader, Value: []byte(eventType)}},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	c.logger.Debug("event published", zap.String("type", eventType), zap.String("key", key))
	return nil
}

// Consume reads the topic as part of the configured group until ctx is done.
// Handler errors are logged and the message is committed anyway.
func (c *Client) Consume(ctx context.Context, handle func(ctx context.Context, eventType string, body []byte) error) error {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: c.cfg.Brokers,
		Topic:   c.cfg.Topic,
		GroupID: c.cfg.GroupID,
	})
	defer reader.Close()

	c.logger.Info("waiting for events", zap.String("topic", c.cfg.Topic), zap.String("group", c.cfg.GroupID))

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("failed to read message", zap.String("topic", c.cfg.Topic), zap.Error(err))
			continue
		}
		if err := handle(ctx, eventType(msg), msg.Value); err != nil {
			c.logger.Error("failed to handle event",
				zap.String("topic", c.cfg.Topic), zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// Close flushes pending writes.
func (c *Client) Close() error {
	return c.writer.Close()
}

func eventType(msg kafkaGo.Message) string {
	for _, h := range msg.Headers {
		if h.Key == eventTypeHeader {
			return string(h.Value)
		}
	}
	return ""
}
