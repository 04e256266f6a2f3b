package services

import (
	"context"
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/auth"
	"pcstore/internal/events"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"go.uber.org/zap"
)

// OrderService turns carts into orders and drives the payment lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher events.Publisher
	locks     *cartLocks
	clock     func() time.Time
	logger    *zap.Logger
}

// OrderOption customizes an OrderService.
type OrderOption func(*OrderService)

// WithClock sets the source of placed_at timestamps.
func WithClock(clock func() time.Time) OrderOption {
	return func(s *OrderService) { s.clock = clock }
}

// NewOrderService creates a new OrderService. A nil publisher disables events.
func NewOrderService(orderRepo repositories.OrderRepository, publisher events.Publisher, logger *zap.Logger, opts ...OrderOption) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	s := &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		locks:     newCartLocks(),
		clock:     time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder materializes cartID into a pending order for customerID and
// deletes the cart. Placements of the same cart are serialized: the loser
// waits for the winner and then finds the cart gone.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, customerID uint) (*models.Order, error) {
	caller, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	cartID, err = parseCartID(cartID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(cartID)
	order, err := s.orderRepo.PlaceFromCart(ctx, cartID, customerID, s.clock().UTC())
	unlock()
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			s.logger.Error("order placement failed", zap.String("cart_id", cartID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", customerID),
		zap.Uint("by", caller.ID),
		zap.Int("items", len(order.Items)))

	if err := events.PublishOrderPlaced(ctx, s.publisher, events.NewOrderPlaced(order, cartID)); err != nil {
		s.logger.Warn("failed to publish order event", zap.Uint("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}

// GetAllOrderItems lists every order line across all orders. Staff only.
func (s *OrderService) GetAllOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.orderRepo.ListItems(ctx)
}

// GetOrderItem loads one order line. Staff only.
func (s *OrderService) GetOrderItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.orderRepo.GetItem(ctx, id)
}

// UpdateOrderStatus moves a pending order to complete or failed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Order, error) {
	caller, err := auth.RequireStaff(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperr.InvalidInput("invalid payment status: %s", status)
	}
	if !models.PaymentPending.CanTransitionTo(status) {
		return nil, apperr.ErrInvalidTransition
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, models.PaymentPending, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("order status updated",
		zap.Uint("order_id", id), zap.String("status", string(status)), zap.Uint("by", caller.ID))
	return order, nil
}

// DeleteOrder removes an order and its items.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	caller, err := auth.RequireStaff(ctx)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.Uint("order_id", id), zap.Uint("by", caller.ID))
	return nil
}
