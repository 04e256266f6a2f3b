package models

import "time"

// Cart is an anonymous basket identified by an opaque UUID.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is one product line of a cart. (CartID, ProductID) is unique.
type CartItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	CartID    string   `json:"cart_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	ProductID uint     `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_product"`
	Product   *Product `json:"product,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int      `json:"quantity" gorm:"not null"`
}
