package services

import (
	"testing"

	"github.com/bitemanager/bitemanager-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func TestCreateFoodRequiresMatchingOwner(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)

	food := models.FoodItem{
		Name:     "Veggie Ramen",
		Price:    8.25,
		Quantity: 10,
		AddedBy:  models.Owner{Email: "someone-else@x.com", Name: "Imposter"},
	}
	_, err := service.CreateFood("a@x.com", food)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateFoodResetsCounters(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)

	food := models.FoodItem{
		Name:          "Veggie Ramen",
		Price:         8.25,
		Quantity:      10,
		PurchaseCount: 500,
		Popularity:    99,
		AddedBy:       models.Owner{Email: "a@x.com", Name: "Alice"},
	}
	created, err := service.CreateFood("a@x.com", food)
	require.NoError(t, err)

	// New listings start with clean counters regardless of caller input
	assert.Equal(t, 0, created.PurchaseCount)
	assert.Equal(t, 0, created.Popularity)
	assert.Equal(t, 10, created.Quantity)
}

func TestUpdateFoodRequiresOwner(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)
	food := createListing(t, db, "a@x.com", 10)

	_, err := service.UpdateFood("b@x.com", food.ID, models.FoodUpdate{Name: strPtr("Hijacked")})
	assert.ErrorIs(t, err, ErrForbidden)

	unchanged := reloadFood(t, db, food.ID)
	assert.Equal(t, "Chicken Biryani", unchanged.Name)
}

func TestUpdateFoodUnknownID(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)

	_, err := service.UpdateFood("a@x.com", 999, models.FoodUpdate{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFoodAppliesWritableFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)
	food := createListing(t, db, "a@x.com", 10)

	// Put some sold units on the record first
	purchases := NewPurchaseService(db)
	_, err := purchases.CreatePurchase("b@x.com", "Bob", PurchaseRequest{FoodID: food.ID, Quantity: 4})
	require.NoError(t, err)

	updated, err := service.UpdateFood("a@x.com", food.ID, models.FoodUpdate{
		Name:     strPtr("Lamb Biryani"),
		Price:    floatPtr(12.50),
		Quantity: intPtr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "Lamb Biryani", updated.Name)
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, 20, updated.Quantity)
	// Workflow-owned fields survive the update untouched
	assert.Equal(t, 4, updated.PurchaseCount)
	assert.Equal(t, "a@x.com", updated.AddedBy.Email)
}

func TestListFoodsSearchIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)
	owner := models.Owner{Email: "a@x.com", Name: "Alice"}

	for _, name := range []string{"Chicken Biryani", "Paneer Tikka", "chicken wings"} {
		require.NoError(t, db.Create(&models.FoodItem{Name: name, Quantity: 5, AddedBy: owner}).Error)
	}

	foods, total, err := service.ListFoods(FoodListParams{Email: "a@x.com", Search: "CHICKEN"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, foods, 2)
}

func TestListFoodsPagination(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)
	owner := models.Owner{Email: "a@x.com", Name: "Alice"}

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.FoodItem{Name: "Dish", Quantity: 5, AddedBy: owner}).Error)
	}

	foods, total, err := service.ListFoods(FoodListParams{Email: "a@x.com", Page: 2, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, foods, 5)

	// Last page holds the remainder
	foods, total, err = service.ListFoods(FoodListParams{Email: "a@x.com", Page: 3, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, foods, 2)
}

func TestListFoodsFiltersByOwner(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)

	require.NoError(t, db.Create(&models.FoodItem{Name: "Mine", Quantity: 1, AddedBy: models.Owner{Email: "a@x.com"}}).Error)
	require.NoError(t, db.Create(&models.FoodItem{Name: "Theirs", Quantity: 1, AddedBy: models.Owner{Email: "b@x.com"}}).Error)

	foods, total, err := service.ListFoods(FoodListParams{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, foods, 1)
	assert.Equal(t, "Mine", foods[0].Name)
}

func TestCountFoods(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)

	createListing(t, db, "a@x.com", 1)
	createListing(t, db, "b@x.com", 1)

	count, err := service.CountFoods()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGetFoodByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewFoodService(db)

	_, err := service.GetFoodByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}
