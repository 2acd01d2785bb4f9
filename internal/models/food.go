package models

import (
	"time"
)

// Owner identifies the user that created a food listing
type Owner struct {
	Email string `json:"email" gorm:"index" binding:"required,email"`
	Name  string `json:"name"`
}

// FoodItem represents a sellable food listing with its inventory counters
type FoodItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"index" binding:"required"`
	Price       float64   `json:"price" binding:"gte=0"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	// Quantity is the remaining sellable stock; never negative.
	// PurchaseCount is the cumulative number of units sold.
	// Both are owned by the purchase workflow and are not
	// caller-writable through the update endpoint.
	Quantity      int       `json:"quantity" binding:"gte=0"`
	PurchaseCount int       `json:"purchaseCount"`
	Popularity    int       `json:"popularity"`
	AddedBy       Owner     `json:"addedBy" gorm:"embedded;embeddedPrefix:added_by_"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FoodUpdate carries the caller-writable fields of a listing update.
// purchaseCount, popularity and addedBy are deliberately absent so a
// payload containing them can never reach the stored record.
type FoodUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
}
