package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pcstore/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key, eventType string, body []byte) error {
	args := m.Called(ctx, key, eventType, body)
	return args.Error(0)
}

func testOrder() *models.Order {
	return &models.Order{
		ID:         42,
		CustomerID: 7,
		PlacedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}
}

func TestNewOrderPlaced(t *testing.T) {
	ev := NewOrderPlaced(testOrder(), "cart-1")

	assert.Equal(t, uint(42), ev.OrderID)
	assert.Equal(t, "cart-1", ev.CartID)
	assert.True(t, decimal.NewFromInt(25).Equal(ev.Total))
	assert.Len(t, ev.Items, 2)
	assert.Equal(t, "order-42", ev.Key())
}

func TestPublishOrderPlaced(t *testing.T) {
	pub := new(MockPublisher)
	ev := NewOrderPlaced(testOrder(), "cart-1")

	pub.On("Publish", mock.Anything, "order-42", TypeOrderPlaced, mock.MatchedBy(func(body []byte) bool {
		var got OrderPlaced
		return json.Unmarshal(body, &got) == nil && got.OrderID == 42 && len(got.Items) == 2
	})).Return(nil).Once()

	require.NoError(t, PublishOrderPlaced(context.Background(), pub, ev))
	pub.AssertExpectations(t)
}

func TestLogHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := LogHandler(zap.New(core))
	ctx := context.Background()

	body, err := json.Marshal(NewOrderPlaced(testOrder(), "cart-1"))
	require.NoError(t, err)

	require.NoError(t, handle(ctx, TypeOrderPlaced, body))
	require.Equal(t, 1, logs.FilterMessage("order placed").Len())

	assert.Error(t, handle(ctx, TypeOrderPlaced, []byte("{")))
	assert.Error(t, handle(ctx, TypeOrderPlaced, []byte(`{"order_id":0}`)))

	require.NoError(t, handle(ctx, "something.else", nil))
	assert.Equal(t, 1, logs.FilterMessage("ignoring unknown event").Len())
}
