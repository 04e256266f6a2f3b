package database

import (
	"fmt"

	"pcstore/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed fills an empty catalog with a few collections and products. It does
// nothing when any product exists.
func Seed(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		laptops := models.Collection{Title: "Laptops"}
		peripherals := models.Collection{Title: "Peripherals"}
		if err := tx.Create(&[]*models.Collection{&laptops, &peripherals}).Error; err != nil {
			return fmt.Errorf("failed to seed collections: %w", err)
		}

		launch := models.Promotion{Description: "Launch week", Discount: 0.1}
		if err := tx.Create(&launch).Error; err != nil {
			return fmt.Errorf("failed to seed promotions: %w", err)
		}

		products := []models.Product{
			{Title: "Laptop", Slug: "laptop", Description: `{"summary":"High performance laptop"}`, Images: `[]`,
				Price: decimal.RequireFromString("1200.00"), Inventory: 10, CollectionID: laptops.ID,
				Promotions: []models.Promotion{launch}},
			{Title: "Keyboard", Slug: "keyboard", Description: `{"summary":"Mechanical keyboard"}`, Images: `[]`,
				Price: decimal.RequireFromString("75.00"), Inventory: 25, CollectionID: peripherals.ID},
			{Title: "Mouse", Slug: "mouse", Description: `{"summary":"Ergonomic wireless mouse"}`, Images: `[]`,
				Price: decimal.RequireFromString("25.00"), Inventory: 50, CollectionID: peripherals.ID},
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		laptops.FeaturedProductID = &products[0].ID
		if err := tx.Save(&laptops).Error; err != nil {
			return fmt.Errorf("failed to feature product: %w", err)
		}
		return nil
	})
}
