package services

import (
	"errors"

	"github.com/bitemanager/bitemanager-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PurchaseRequest is the caller-supplied part of a purchase
type PurchaseRequest struct {
	FoodID   uint `json:"foodId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// PurchaseService orchestrates the inventory-consistent purchase workflow
type PurchaseService interface {
	// CreatePurchase records a purchase and adjusts the listing inventory
	// in the same transaction
	CreatePurchase(buyerEmail, buyerName string, req PurchaseRequest) (models.Purchase, error)
	// DeletePurchase removes a purchase and restores the listing inventory
	DeletePurchase(callerEmail, id string) error
	// GetPurchaseByID retrieves one purchase, enriched with listing fields
	GetPurchaseByID(callerEmail, id string) (models.PurchaseView, error)
	// ListPurchasesByBuyer returns the buyer's purchases, enriched with
	// listing fields joined at read time
	ListPurchasesByBuyer(buyerEmail string) ([]models.PurchaseView, error)
}

// purchaseService is the implementation of the PurchaseService interface
type purchaseService struct {
	db *gorm.DB
}

// NewPurchaseService creates a new instance of PurchaseService
func NewPurchaseService(db *gorm.DB) PurchaseService {
	return &purchaseService{db: db}
}

// CreatePurchase runs the purchase workflow inside a single transaction:
// existence check, self-purchase check, conditional inventory decrement,
// purchase insert. The decrement is a single conditional UPDATE guarded
// by quantity >= requested, so the stock check is evaluated inside the
// database and two concurrent purchases can never both pass it on stale
// reads; a failed guard surfaces as ErrInsufficientStock. Rolling back
// on any later error removes the need for compensation.
func (s *purchaseService) CreatePurchase(buyerEmail, buyerName string, req PurchaseRequest) (models.Purchase, error) {
	if req.Quantity < 1 {
		return models.Purchase{}, ErrInsufficientStock
	}

	var purchase models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var food models.FoodItem
		if err := tx.First(&food, req.FoodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if food.AddedBy.Email == buyerEmail {
			return ErrSelfPurchase
		}

		// Conditional decrement: only applies while enough stock remains
		result := tx.Model(&models.FoodItem{}).
			Where("id = ? AND quantity >= ?", req.FoodID, req.Quantity).
			UpdateColumns(map[string]interface{}{
				"quantity":       gorm.Expr("quantity - ?", req.Quantity),
				"purchase_count": gorm.Expr("purchase_count + ?", req.Quantity),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		purchase = models.Purchase{
			FoodID:     req.FoodID,
			BuyerEmail: buyerEmail,
			BuyerName:  buyerName,
			Quantity:   req.Quantity,
		}
		return tx.Create(&purchase).Error
	})
	if err != nil {
		return models.Purchase{}, err
	}

	log.WithFields(log.Fields{
		"purchase_id": purchase.ID,
		"food_id":     purchase.FoodID,
		"buyer":       purchase.BuyerEmail,
		"quantity":    purchase.Quantity,
	}).Info("Purchase created")

	return purchase, nil
}

// DeletePurchase removes the caller's purchase and issues the inverse
// inventory adjustment on the linked listing. When the listing no
// longer exists the compensation affects zero rows and the deletion
// still succeeds, since inventory cannot be restored to a deleted
// listing.
func (s *purchaseService) DeletePurchase(callerEmail, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.First(&purchase, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if purchase.BuyerEmail != callerEmail {
			return ErrForbidden
		}

		result := tx.Delete(&models.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 1 {
			compensation := tx.Model(&models.FoodItem{}).
				Where("id = ?", purchase.FoodID).
				UpdateColumns(map[string]interface{}{
					"quantity":       gorm.Expr("quantity + ?", purchase.Quantity),
					"purchase_count": gorm.Expr("purchase_count - ?", purchase.Quantity),
				})
			if compensation.Error != nil {
				// Rolls back the delete; surfaced as an internal error
				return compensation.Error
			}
			if compensation.RowsAffected == 0 {
				log.WithFields(log.Fields{
					"purchase_id": id,
					"food_id":     purchase.FoodID,
				}).Warn("Listing gone, skipping inventory restore")
			}
		}

		return nil
	})
}

func (s *purchaseService) GetPurchaseByID(callerEmail, id string) (models.PurchaseView, error) {
	var purchase models.Purchase
	if err := s.db.First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PurchaseView{}, ErrNotFound
		}
		return models.PurchaseView{}, err
	}

	if purchase.BuyerEmail != callerEmail {
		return models.PurchaseView{}, ErrForbidden
	}

	view := models.PurchaseView{Purchase: purchase}

	// Display fields join against the listing at read time; a deleted
	// listing leaves them zero-valued
	var food models.FoodItem
	if err := s.db.First(&food, purchase.FoodID).Error; err == nil {
		view.FoodName = food.Name
		view.Price = food.Price
		view.Image = food.Image
		view.OwnerName = food.AddedBy.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PurchaseView{}, err
	}

	return view, nil
}

func (s *purchaseService) ListPurchasesByBuyer(buyerEmail string) ([]models.PurchaseView, error) {
	var views []models.PurchaseView
	err := s.db.Table("purchases").
		Select("purchases.*, food_items.name AS food_name, food_items.price AS price, food_items.image AS image, food_items.added_by_name AS owner_name").
		Joins("LEFT JOIN food_items ON food_items.id = purchases.food_id").
		Where("purchases.buyer_email = ?", buyerEmail).
		Order("purchases.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
