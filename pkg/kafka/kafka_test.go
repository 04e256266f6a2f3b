package kafka

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{Topic: "orders"}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient(Config{Brokers: []string{"localhost:9092"}}, zap.NewNop())
	assert.Error(t, err)

	c, err := NewClient(Config{Brokers: []string{"localhost:9092"}, Topic: "orders"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "orders", c.writer.Topic)
	require.NoError(t, c.Close())
}

func TestEventType(t *testing.T) {
	msg := kafkaGo.Message{Headers: []kafkaGo.Header{
		{Key: "other", Value: []byte("x")},
		{Key: eventTypeHeader, Value: []byte("order.placed")},
	}}
	assert.Equal(t, "order.placed", eventType(msg))
	assert.Equal(t, "", eventType(kafkaGo.Message{}))
}
