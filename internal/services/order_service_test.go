package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/events"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
	"pcstore/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key, eventType string, body []byte) error {
	args := m.Called(ctx, key, eventType, body)
	return args.Error(0)
}

var placedAt = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newOrderService(f *fixture, pub events.Publisher) *services.OrderService {
	return services.NewOrderService(repositories.NewGORMOrderRepository(f.db), pub, zap.NewNop(),
		services.WithClock(func() time.Time { return placedAt }))
}

func buyerCtx(f *fixture) context.Context {
	return asUser(&f.user)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newFixture(t)
	pub := new(MockPublisher)
	svc := newOrderService(f, pub)
	cartID := f.cart(t, map[uint]int{f.productA.ID: 2, f.productB.ID: 1})

	pub.On("Publish", mock.Anything, mock.AnythingOfType("string"), events.TypeOrderPlaced, mock.Anything).Return(nil).Once()

	order, err := svc.PlaceOrder(buyerCtx(f), cartID, 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), order.CustomerID)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.True(t, order.PlacedAt.Equal(placedAt))
	require.Len(t, order.Items, 2)

	got := map[uint]models.OrderItem{}
	for _, item := range order.Items {
		got[item.ProductID] = item
	}
	assert.Equal(t, 2, got[f.productA.ID].Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(got[f.productA.ID].UnitPrice))
	assert.Equal(t, 1, got[f.productB.ID].Quantity)
	assert.True(t, decimal.NewFromInt(5).Equal(got[f.productB.ID].UnitPrice))

	assert.Zero(t, f.count(t, &models.Cart{}), "cart must be deleted")
	assert.Zero(t, f.count(t, &models.CartItem{}), "cart items must be deleted")
	assert.Equal(t, int64(1), f.count(t, &models.Order{}))

	var a, b models.Product
	require.NoError(t, f.db.First(&a, f.productA.ID).Error)
	require.NoError(t, f.db.First(&b, f.productB.ID).Error)
	assert.Equal(t, 98, a.Inventory)
	assert.Equal(t, 99, b.Inventory)

	pub.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_Preconditions(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)

	t.Run("unauthenticated", func(t *testing.T) {
		cartID := f.cart(t, map[uint]int{f.productA.ID: 1})
		_, err := svc.PlaceOrder(context.Background(), cartID, 7)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Equal(t, int64(1), f.count(t, &models.CartItem{}))
		require.NoError(t, f.db.Exec("DELETE FROM cart_items").Error)
	})

	t.Run("unknown cart", func(t *testing.T) {
		_, err := svc.PlaceOrder(buyerCtx(f), uuid.NewString(), 7)
		assert.ErrorIs(t, err, apperr.ErrCartNotFound)
	})

	t.Run("malformed cart id", func(t *testing.T) {
		_, err := svc.PlaceOrder(buyerCtx(f), "not-a-uuid", 7)
		assert.ErrorIs(t, err, apperr.ErrCartNotFound)
	})

	t.Run("empty cart", func(t *testing.T) {
		cartID := f.cart(t, nil)
		_, err := svc.PlaceOrder(buyerCtx(f), cartID, 7)
		assert.ErrorIs(t, err, apperr.ErrEmptyCart)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})

	t.Run("unknown customer", func(t *testing.T) {
		cartID := f.cart(t, map[uint]int{f.productA.ID: 1})
		_, err := svc.PlaceOrder(buyerCtx(f), cartID, 999)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "CUSTOMER_NOT_FOUND", apperr.From(err).Code)
	})

	assert.Zero(t, f.count(t, &models.Order{}), "no precondition failure may create an order")
	assert.Zero(t, f.count(t, &models.OrderItem{}))
}

func TestOrderService_PlaceOrder_InsufficientInventoryRollsBack(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", f.productB.ID).Update("inventory", 1).Error)
	cartID := f.cart(t, map[uint]int{f.productA.ID: 3, f.productB.ID: 2})

	_, err := svc.PlaceOrder(buyerCtx(f), cartID, 7)
	require.ErrorIs(t, err, apperr.ErrInsufficientInventory)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	assert.Zero(t, f.count(t, &models.Order{}))
	assert.Zero(t, f.count(t, &models.OrderItem{}))
	assert.Equal(t, int64(1), f.count(t, &models.Cart{}), "cart survives a failed placement")
	assert.Equal(t, int64(2), f.count(t, &models.CartItem{}))

	var a models.Product
	require.NoError(t, f.db.First(&a, f.productA.ID).Error)
	assert.Equal(t, 100, a.Inventory, "inventory decrement must be rolled back")
}

func TestOrderService_PlaceOrder_ConcurrentSameCart(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)
	cartID := f.cart(t, map[uint]int{f.productA.ID: 2, f.productB.ID: 1})

	const callers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		orders   []*models.Order
		failures []error
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			order, err := svc.PlaceOrder(buyerCtx(f), cartID, 7)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			orders = append(orders, order)
		}()
	}
	close(start)
	wg.Wait()

	require.Len(t, orders, 1, "exactly one placement may win")
	require.Len(t, failures, callers-1)
	for _, err := range failures {
		assert.ErrorIs(t, err, apperr.ErrCartNotFound)
	}
	assert.Equal(t, int64(1), f.count(t, &models.Order{}))
	assert.Equal(t, int64(2), f.count(t, &models.OrderItem{}))
}

func TestOrderService_PlaceOrder_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)
	cartID := f.cart(t, map[uint]int{f.productA.ID: 1})

	order, err := svc.PlaceOrder(buyerCtx(f), cartID, 7)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", f.productA.ID).
		Update("price", decimal.NewFromInt(99)).Error)

	stored, err := svc.GetOrderByID(staffCtx(), order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(stored.Items[0].UnitPrice), "unit price is fixed at placement")
}

func TestOrderService_PlaceOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	pub := new(MockPublisher)
	svc := newOrderService(f, pub)
	cartID := f.cart(t, map[uint]int{f.productA.ID: 1})

	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := svc.PlaceOrder(buyerCtx(f), cartID, 7)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, int64(1), f.count(t, &models.Order{}))
	pub.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)

	place := func() *models.Order {
		order, err := svc.PlaceOrder(buyerCtx(f), f.cart(t, map[uint]int{f.productA.ID: 1}), 7)
		require.NoError(t, err)
		return order
	}

	t.Run("pending to complete", func(t *testing.T) {
		order := place()
		updated, err := svc.UpdateOrderStatus(staffCtx(), order.ID, models.PaymentComplete)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentComplete, updated.PaymentStatus)

		_, err = svc.UpdateOrderStatus(staffCtx(), order.ID, models.PaymentFailed)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "complete is terminal")
	})

	t.Run("pending to failed", func(t *testing.T) {
		order := place()
		updated, err := svc.UpdateOrderStatus(staffCtx(), order.ID, models.PaymentFailed)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentFailed, updated.PaymentStatus)

		_, err = svc.UpdateOrderStatus(staffCtx(), order.ID, models.PaymentComplete)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "failed is terminal")
	})

	t.Run("back to pending", func(t *testing.T) {
		order := place()
		_, err := svc.UpdateOrderStatus(staffCtx(), order.ID, models.PaymentPending)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		order := place()
		_, err := svc.UpdateOrderStatus(staffCtx(), order.ID, models.PaymentStatus("X"))
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := svc.UpdateOrderStatus(staffCtx(), 12345, models.PaymentComplete)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("non staff", func(t *testing.T) {
		order := place()
		_, err := svc.UpdateOrderStatus(buyerCtx(f), order.ID, models.PaymentComplete)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		_, err = svc.UpdateOrderStatus(context.Background(), order.ID, models.PaymentComplete)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestOrderService_ConcurrentTransitionsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)
	order, err := svc.PlaceOrder(buyerCtx(f), f.cart(t, map[uint]int{f.productA.ID: 1}), 7)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, status := range []models.PaymentStatus{models.PaymentComplete, models.PaymentFailed} {
		wg.Add(1)
		go func(i int, status models.PaymentStatus) {
			defer wg.Done()
			_, results[i] = svc.UpdateOrderStatus(staffCtx(), order.ID, status)
		}(i, status)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)
	order, err := svc.PlaceOrder(buyerCtx(f), f.cart(t, map[uint]int{f.productA.ID: 1, f.productB.ID: 4}), 7)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteOrder(buyerCtx(f), order.ID), apperr.ErrForbidden)

	require.NoError(t, svc.DeleteOrder(staffCtx(), order.ID))
	assert.Zero(t, f.count(t, &models.Order{}))
	assert.Zero(t, f.count(t, &models.OrderItem{}))

	err = svc.DeleteOrder(staffCtx(), order.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderService_Reads(t *testing.T) {
	f := newFixture(t)
	svc := newOrderService(f, nil)
	order, err := svc.PlaceOrder(buyerCtx(f), f.cart(t, map[uint]int{f.productA.ID: 1, f.productB.ID: 2}), 7)
	require.NoError(t, err)

	_, err = svc.GetAllOrders(buyerCtx(f))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	orders, err := svc.GetAllOrders(staffCtx())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)

	items, err := svc.GetAllOrderItems(staffCtx())
	require.NoError(t, err)
	require.Len(t, items, 2)

	item, err := svc.GetOrderItem(staffCtx(), items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, item.OrderID)

	_, err = svc.GetOrderItem(staffCtx(), 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
