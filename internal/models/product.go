package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Title        string          `json:"title" gorm:"type:varchar(255);not null"`
	Description  string          `json:"description" gorm:"type:text"` // JSON document
	Price        decimal.Decimal `json:"price" gorm:"type:varchar(255);not null"`
	Inventory    int             `json:"inventory" gorm:"not null"`
	Slug         string          `json:"slug" gorm:"type:varchar(255);index"`
	LastUpdate   time.Time       `json:"last_update" gorm:"autoUpdateTime"`
	CollectionID uint            `json:"collection_id" gorm:"not null;index"`
	Collection   *Collection     `json:"collection,omitempty"`
	Images       string          `json:"images" gorm:"type:text"` // JSON document
	Promotions   []Promotion     `json:"promotions,omitempty" gorm:"many2many:product_promotions"`
}

// Collection groups products, optionally featuring one of them.
type Collection struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Title             string `json:"title" gorm:"type:varchar(255);not null"`
	FeaturedProductID *uint  `json:"featured_product_id"`
}

// Promotion is a discount that can be attached to many products.
type Promotion struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Description string  `json:"description" gorm:"type:varchar(255);not null"`
	Discount    float64 `json:"discount"`
}
