package services

import (
	"errors"
	"strings"

	"github.com/bitemanager/bitemanager-api/internal/models"
	"gorm.io/gorm"
)

// Listing pagination defaults, matching the storefront grid
const (
	defaultPage     = 1
	defaultPageSize = 9
)

// FoodListParams carries the supported listing filters
type FoodListParams struct {
	// Email restricts the result to listings owned by this address.
	// The controller only passes it after verifying it matches the caller.
	Email string
	// Search is a case-insensitive substring match on the listing name
	Search string
	Page   int
	Size   int
}

// FoodService provides methods to interact with food listings
type FoodService interface {
	// ListFoods returns one page of listings plus the total count for
	// the same filters
	ListFoods(params FoodListParams) ([]models.FoodItem, int64, error)
	// CountFoods returns the total number of listings
	CountFoods() (int64, error)
	// GetFoodByID retrieves a listing by its ID
	GetFoodByID(id uint) (models.FoodItem, error)
	// CreateFood creates a new listing owned by the caller
	CreateFood(callerEmail string, food models.FoodItem) (models.FoodItem, error)
	// UpdateFood applies the caller-writable fields of a listing update
	UpdateFood(callerEmail string, id uint, update models.FoodUpdate) (models.FoodItem, error)
}

// foodService is the implementation of the FoodService interface
type foodService struct {
	db *gorm.DB
}

// NewFoodService creates a new instance of FoodService
func NewFoodService(db *gorm.DB) FoodService {
	return &foodService{db: db}
}

func (s *foodService) ListFoods(params FoodListParams) ([]models.FoodItem, int64, error) {
	page := params.Page
	if page < defaultPage {
		page = defaultPage
	}
	size := params.Size
	if size < 1 {
		size = defaultPageSize
	}

	var total int64
	if err := s.applyFilters(params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []models.FoodItem
	err := s.applyFilters(params).
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&foods).Error
	if err != nil {
		return nil, 0, err
	}
	return foods, total, nil
}

// applyFilters builds the shared WHERE clause for the page query and
// its companion count query
func (s *foodService) applyFilters(params FoodListParams) *gorm.DB {
	query := s.db.Model(&models.FoodItem{})
	if params.Email != "" {
		query = query.Where("added_by_email = ?", params.Email)
	}
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}
	return query
}

func (s *foodService) CountFoods() (int64, error) {
	var count int64
	if err := s.db.Model(&models.FoodItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *foodService) GetFoodByID(id uint) (models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FoodItem{}, ErrNotFound
		}
		return models.FoodItem{}, err
	}
	return food, nil
}

func (s *foodService) CreateFood(callerEmail string, food models.FoodItem) (models.FoodItem, error) {
	if food.AddedBy.Email != callerEmail {
		return models.FoodItem{}, ErrForbidden
	}

	// Inventory counters always start clean regardless of caller input
	food.ID = 0
	food.PurchaseCount = 0
	food.Popularity = 0

	if err := s.db.Create(&food).Error; err != nil {
		return models.FoodItem{}, err
	}
	return food, nil
}

func (s *foodService) UpdateFood(callerEmail string, id uint, update models.FoodUpdate) (models.FoodItem, error) {
	var existing models.FoodItem
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FoodItem{}, ErrNotFound
		}
		return models.FoodItem{}, err
	}

	if existing.AddedBy.Email != callerEmail {
		return models.FoodItem{}, ErrForbidden
	}

	// Only the fields present in FoodUpdate can ever reach the row;
	// purchaseCount, popularity and addedBy stay under workflow control
	columns := map[string]interface{}{}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.Price != nil {
		columns["price"] = *update.Price
	}
	if update.Image != nil {
		columns["image"] = *update.Image
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}
	if update.Quantity != nil {
		columns["quantity"] = *update.Quantity
	}

	if len(columns) > 0 {
		if err := s.db.Model(&existing).Updates(columns).Error; err != nil {
			return models.FoodItem{}, err
		}
	}

	var updated models.FoodItem
	if err := s.db.First(&updated, id).Error; err != nil {
		return models.FoodItem{}, err
	}
	return updated, nil
}
