package services

import (
	"testing"

	"github.com/bitemanager/bitemanager-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.FoodItem{}, &models.Purchase{})
	require.NoError(t, err)

	return db
}

func createListing(t *testing.T, db *gorm.DB, ownerEmail string, quantity int) models.FoodItem {
	food := models.FoodItem{
		Name:     "Chicken Biryani",
		Price:    9.99,
		Quantity: quantity,
		AddedBy:  models.Owner{Email: ownerEmail, Name: "Owner"},
	}
	require.NoError(t, db.Create(&food).Error)
	return food
}

func reloadFood(t *testing.T, db *gorm.DB, id uint) models.FoodItem {
	var food models.FoodItem
	require.NoError(t, db.First(&food, id).Error)
	return food
}

func TestCreatePurchaseAdjustsInventory(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	purchase, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, purchase.ID)
	assert.Equal(t, food.ID, purchase.FoodID)
	assert.Equal(t, "b@x.com", purchase.BuyerEmail)
	assert.Equal(t, 3, purchase.Quantity)

	after := reloadFood(t, db, food.ID)
	assert.Equal(t, 7, after.Quantity)
	assert.Equal(t, 3, after.PurchaseCount)
}

func TestDeletePurchaseRestoresInventory(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	purchase, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, service.DeletePurchase("b@x.com", purchase.ID))

	// Create then delete returns the listing to its original counters
	after := reloadFood(t, db, food.ID)
	assert.Equal(t, 10, after.Quantity)
	assert.Equal(t, 0, after.PurchaseCount)

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSelfPurchaseForbidden(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	_, err := service.CreatePurchase("a@x.com", "Alice", PurchaseRequest{FoodID: food.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrSelfPurchase)

	// No state change
	after := reloadFood(t, db, food.ID)
	assert.Equal(t, 10, after.Quantity)
	assert.Equal(t, 0, after.PurchaseCount)

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreatePurchaseUnknownFood(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	_, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePurchaseOversellRejected(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 5)

	_, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 8})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Quantity never goes negative and no purchase row is left behind
	after := reloadFood(t, db, food.ID)
	assert.Equal(t, 5, after.Quantity)
	assert.Equal(t, 0, after.PurchaseCount)

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestContestedLastUnit(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 1)

	_, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 1})
	require.NoError(t, err)

	// The second buyer loses the race on the conditional update
	_, err = service.CreatePurchase("c@x.com", "Carol", PurchaseRequest{FoodID: food.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	after := reloadFood(t, db, food.ID)
	assert.Equal(t, 0, after.Quantity)
	assert.Equal(t, 1, after.PurchaseCount)
}

func TestDeletePurchaseRequiresBuyer(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	purchase, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 2})
	require.NoError(t, err)

	err = service.DeletePurchase("c@x.com", purchase.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Purchase still present, inventory untouched
	after := reloadFood(t, db, food.ID)
	assert.Equal(t, 8, after.Quantity)
	assert.Equal(t, 2, after.PurchaseCount)
}

func TestDeletePurchaseUnknownID(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)

	err := service.DeletePurchase("b@x.com", "no-such-purchase")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePurchaseAfterListingRemoved(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	purchase, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 2})
	require.NoError(t, err)

	// Listing disappears out of band; the compensating update has
	// nowhere to go but deletion still succeeds
	require.NoError(t, db.Delete(&models.FoodItem{}, food.ID).Error)

	require.NoError(t, service.DeletePurchase("b@x.com", purchase.ID))

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetPurchaseByIDEnrichment(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	purchase, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 1})
	require.NoError(t, err)

	view, err := service.GetPurchaseByID("b@x.com", purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Biryani", view.FoodName)
	assert.Equal(t, 9.99, view.Price)
	assert.Equal(t, "Owner", view.OwnerName)

	// Only the buyer may read a purchase
	_, err = service.GetPurchaseByID("c@x.com", purchase.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListPurchasesByBuyer(t *testing.T) {
	db := setupTestDB(t)
	service := NewPurchaseService(db)
	food := createListing(t, db, "a@x.com", 10)

	_, err := service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = service.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = service.CreatePurchase("c@x.com", "Carol", PurchaseRequest{FoodID: food.ID, Quantity: 1})
	require.NoError(t, err)

	views, err := service.ListPurchasesByBuyer("b@x.com")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, view := range views {
		assert.Equal(t, "b@x.com", view.BuyerEmail)
		assert.Equal(t, "Chicken Biryani", view.FoodName)
	}
}
