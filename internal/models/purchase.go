package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase records one buyer acquiring some quantity of a FoodItem.
// FoodID is a weak reference: the listing may be updated or gone by
// the time the purchase is read back.
type Purchase struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	FoodID     uint      `json:"foodId" gorm:"index"`
	BuyerEmail string    `json:"buyerEmail" gorm:"index"`
	BuyerName  string    `json:"buyerName"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate assigns the opaque purchase id
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PurchaseView is a Purchase enriched at read time with display fields
// joined from the linked FoodItem. The joined fields are zero-valued
// when the listing no longer exists.
type PurchaseView struct {
	Purchase
	FoodName  string  `json:"foodName"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	OwnerName string  `json:"ownerName"`
}
