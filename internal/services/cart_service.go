package services

import (
	"context"

	"pcstore/internal/apperr"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService manages anonymous carts. Knowing a cart id is enough to use it.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	logger   *zap.Logger
}

// NewCartService builds a CartService over the cart and product stores.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// parseCartID rejects ids that are not UUIDs as unknown carts.
func parseCartID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperr.ErrCartNotFound
	}
	return parsed.String(), nil
}

// CreateCart persists an empty cart under a fresh random UUID.
func (s *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{ID: uuid.New().String()}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Debug("cart created", zap.String("cart_id", cart.ID))
	return cart, nil
}

// GetCart loads a cart with its lines. Malformed ids report CART_NOT_FOUND.
func (s *CartService) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	id, err := parseCartID(id)
	if err != nil {
		return nil, err
	}
	return s.carts.GetByID(ctx, id)
}

// DeleteCart removes a cart and its lines.
func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	id, err := parseCartID(id)
	if err != nil {
		return err
	}
	return s.carts.Delete(ctx, id)
}

// AddItem adds quantity units of a product, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.InvalidInput("quantity must be at least 1, got %d", quantity)
	}
	cartID, err := parseCartID(cartID)
	if err != nil {
		return nil, err
	}
	if _, err := s.carts.GetByID(ctx, cartID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	item, err := s.carts.UpsertItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// SetItemQuantity overwrites the quantity of one cart line.
func (s *CartService) SetItemQuantity(ctx context.Context, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.InvalidInput("quantity must be at least 1, got %d", quantity)
	}
	return s.carts.SetItemQuantity(ctx, itemID, quantity)
}

// RemoveItem deletes one cart line.
func (s *CartService) RemoveItem(ctx context.Context, itemID uint) error {
	return s.carts.DeleteItem(ctx, itemID)
}

// GetItem loads one cart line with its product.
func (s *CartService) GetItem(ctx context.Context, itemID uint) (*models.CartItem, error) {
	return s.carts.GetItem(ctx, itemID)
}

// ListItems returns the lines of one cart, or of every cart when cartID is empty.
func (s *CartService) ListItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	if cartID == "" {
		return s.carts.ListAllItems(ctx)
	}
	cartID, err := parseCartID(cartID)
	if err != nil {
		return nil, err
	}
	return s.carts.ListItems(ctx, cartID)
}

// TotalPrice sums quantity times the live product price over the cart.
func (s *CartService) TotalPrice(ctx context.Context, cartID string) (decimal.Decimal, error) {
	items, err := s.ListItems(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(ItemTotal(item))
	}
	return total, nil
}

// ItemsNumber sums the quantities of the cart's lines.
func (s *CartService) ItemsNumber(ctx context.Context, cartID string) (int, error) {
	items, err := s.ListItems(ctx, cartID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n, nil
}

// ItemTotal is quantity times the current price of the item's product.
func ItemTotal(item models.CartItem) decimal.Decimal {
	if item.Product == nil {
		return decimal.Zero
	}
	return item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}
