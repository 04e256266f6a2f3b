package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is stored as a single letter.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Pending is the only non-terminal state.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentPending && (next == PaymentComplete || next == PaymentFailed)
}

// Order represents a customer order.
type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	PlacedAt      time.Time     `json:"placed_at" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(1);not null;default:P"`
	CustomerID    uint          `json:"customer_id" gorm:"not null;index"`
	Customer      *Customer     `json:"customer,omitempty"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem represents a single item within an order.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:varchar(255);not null"` // Price at the time of order
}
