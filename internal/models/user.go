package models

import "time"

// User represents a user of the store.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(150);not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password   string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	FirstName  string    `json:"first_name" gorm:"type:varchar(150)"`
	LastName   string    `json:"last_name" gorm:"type:varchar(150)"`
	Verified   bool      `json:"verified"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined" gorm:"autoCreateTime"`
}

// Customer is the shopping profile linked one-to-one to a User.
type Customer struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Phone     string     `json:"phone" gorm:"type:varchar(255);not null"`
	BirthDate *time.Time `json:"birth_date"`
	UserID    uint       `json:"user_id" gorm:"not null;uniqueIndex"`
	User      *User      `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
