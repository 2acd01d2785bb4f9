package controllers

import (
	"net/http"
	"strconv"

	"github.com/bitemanager/bitemanager-api/internal/middleware"
	"github.com/bitemanager/bitemanager-api/internal/models"
	"github.com/bitemanager/bitemanager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// FoodController handles HTTP requests related to food listings
type FoodController interface {
	// GetFoods lists the caller's listings with search and pagination
	GetFoods(c *gin.Context)
	// GetFoodByID retrieves a single listing
	GetFoodByID(c *gin.Context)
	// CreateFood creates a new listing owned by the caller
	CreateFood(c *gin.Context)
	// UpdateFood updates a listing owned by the caller
	UpdateFood(c *gin.Context)
	// GetFoodsCount returns the total number of listings
	GetFoodsCount(c *gin.Context)
}

type foodController struct {
	service services.FoodService
}

// NewFoodController creates a new instance of FoodController
func NewFoodController(service services.FoodService) FoodController {
	return &foodController{service: service}
}

// GetFoods godoc
// @Summary List the caller's food listings
// @Description Lists listings owned by the caller with optional name search and pagination
// @Tags foods
// @Produce json
// @Param email query string true "Owner email, must match the caller"
// @Param search query string false "Case-insensitive substring match on name"
// @Param page query int false "Page number, starting at 1"
// @Param size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Router /foods [get]
func (fc *foodController) GetFoods(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page format"})
		return
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "9"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size format"})
		return
	}

	// The email query param is already checked against the caller by
	// the RequireOwnEmail middleware on this route
	params := services.FoodListParams{
		Email:  ctx.Query("email"),
		Search: ctx.Query("search"),
		Page:   page,
		Size:   size,
	}

	foods, total, err := fc.service.ListFoods(params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"foods": foods, "totalCount": total})
}

// GetFoodByID godoc
// @Summary Get a listing by ID
// @Description Fetches a single food listing, no auth required
// @Tags foods
// @Produce json
// @Param id path int true "Food ID"
// @Success 200 {object} models.FoodItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /food/{id} [get]
func (fc *foodController) GetFoodByID(ctx *gin.Context) {
	id, ok := parseFoodID(ctx)
	if !ok {
		return
	}

	food, err := fc.service.GetFoodByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, food)
}

// CreateFood godoc
// @Summary Create a food listing
// @Description Creates a listing; the submitted addedBy.email must match the caller
// @Tags foods
// @Accept json
// @Produce json
// @Param food body models.FoodItem true "Food listing"
// @Success 201 {object} models.FoodItem
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security CookieAuth
// @Router /foods [post]
func (fc *foodController) CreateFood(ctx *gin.Context) {
	var food models.FoodItem
	if err := ctx.ShouldBindJSON(&food); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	callerEmail, ok := middleware.CallerEmail(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	created, err := fc.service.CreateFood(callerEmail, food)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateFood godoc
// @Summary Update a food listing
// @Description Updates a listing owned by the caller; purchaseCount, popularity and addedBy are never writable
// @Tags foods
// @Accept json
// @Produce json
// @Param id path int true "Food ID"
// @Param food body models.FoodUpdate true "Writable listing fields"
// @Success 200 {object} models.FoodItem
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security CookieAuth
// @Router /foods/{id} [put]
func (fc *foodController) UpdateFood(ctx *gin.Context) {
	id, ok := parseFoodID(ctx)
	if !ok {
		return
	}

	var update models.FoodUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	callerEmail, callerOK := middleware.CallerEmail(ctx)
	if !callerOK {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	updated, err := fc.service.UpdateFood(callerEmail, id, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// GetFoodsCount godoc
// @Summary Count food listings
// @Description Returns the total number of listings
// @Tags foods
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /foodsCount [get]
func (fc *foodController) GetFoodsCount(ctx *gin.Context) {
	count, err := fc.service.CountFoods()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// parseFoodID reads the :id path param, answering 400 on bad input
func parseFoodID(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Params.Get("id")
	if !exists {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food ID"})
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food ID format"})
		return 0, false
	}
	return uint(id), true
}
