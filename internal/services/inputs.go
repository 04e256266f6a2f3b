package services

import "time"

// CreateUserInput registers a new account.
type CreateUserInput struct {
	Username  string `validate:"required,max=150"`
	Email     string `validate:"required,storeemail"`
	Password  string `validate:"required,password"`
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
	Verified  bool
	IsStaff   bool
}

// UpdateUserInput patches a user. Nil fields are left unchanged.
type UpdateUserInput struct {
	Username  *string `validate:"omitempty,max=150"`
	Email     *string `validate:"omitempty,storeemail"`
	Password  *string `validate:"omitempty,password"`
	FirstName *string `validate:"omitempty,max=150"`
	LastName  *string `validate:"omitempty,max=150"`
	Verified  *bool
	IsStaff   *bool
}

type CreateCustomerInput struct {
	Phone     string     `validate:"required,max=255"`
	BirthDate *time.Time `validate:"required"`
	UserID    uint       `validate:"required"`
}

type UpdateCustomerInput struct {
	Phone     *string `validate:"omitempty,max=255"`
	BirthDate *time.Time
}

type CollectionInput struct {
	Title             string `validate:"required,max=255"`
	FeaturedProductID *uint
}

// ProductInput creates a product. Description and Images are JSON documents.
type ProductInput struct {
	Title        string `validate:"required,max=255"`
	Description  string `validate:"omitempty,json"`
	Price        string `validate:"required"`
	Inventory    int    `validate:"min=0"`
	Slug         string `validate:"max=255"`
	CollectionID uint   `validate:"required"`
	Images       string `validate:"omitempty,json"`
}

// ProductPatch updates a product. Nil fields are left unchanged.
type ProductPatch struct {
	Title        *string `validate:"omitempty,max=255"`
	Description  *string `validate:"omitempty,json"`
	Price        *string
	Inventory    *int    `validate:"omitempty,min=0"`
	Slug         *string `validate:"omitempty,max=255"`
	CollectionID *uint
	Images       *string `validate:"omitempty,json"`
}

type PromotionInput struct {
	Description string  `validate:"required,max=255"`
	Discount    float64 `validate:"gte=0"`
}
