package controllers

import (
	"net/http"

	"github.com/bitemanager/bitemanager-api/internal/middleware"
	"github.com/bitemanager/bitemanager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PurchaseController handles HTTP requests for the purchase workflow
type PurchaseController interface {
	// GetPurchases lists the caller's purchases with joined food fields
	GetPurchases(c *gin.Context)
	// GetPurchaseByID retrieves one of the caller's purchases
	GetPurchaseByID(c *gin.Context)
	// CreatePurchase buys some quantity of a listing
	CreatePurchase(c *gin.Context)
	// DeletePurchase cancels a purchase and restores inventory
	DeletePurchase(c *gin.Context)
}

type purchaseController struct {
	service services.PurchaseService
}

// NewPurchaseController creates a new instance of PurchaseController
func NewPurchaseController(service services.PurchaseService) PurchaseController {
	return &purchaseController{service: service}
}

// GetPurchases godoc
// @Summary List the caller's purchases
// @Description Lists purchases made by the caller, enriched with listing display fields
// @Tags purchases
// @Produce json
// @Param email query string true "Buyer email, must match the caller"
// @Success 200 {array} models.PurchaseView
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security CookieAuth
// @Router /purchase [get]
func (pc *purchaseController) GetPurchases(ctx *gin.Context) {
	callerEmail, ok := middleware.CallerEmail(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	purchases, err := pc.service.ListPurchasesByBuyer(callerEmail)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, purchases)
}

// GetPurchaseByID godoc
// @Summary Get a purchase by ID
// @Description Fetches one purchase; only the buyer may read it
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} models.PurchaseView
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security CookieAuth
// @Router /purchase/{id} [get]
func (pc *purchaseController) GetPurchaseByID(ctx *gin.Context) {
	callerEmail, ok := middleware.CallerEmail(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	purchase, err := pc.service.GetPurchaseByID(callerEmail, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, purchase)
}

// CreatePurchase godoc
// @Summary Purchase a listing
// @Description Creates a purchase and atomically adjusts the listing inventory; owners cannot buy their own listings
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body services.PurchaseRequest true "Purchase request"
// @Success 201 {object} models.Purchase
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security CookieAuth
// @Router /purchase [post]
func (pc *purchaseController) CreatePurchase(ctx *gin.Context) {
	var req services.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	callerEmail, ok := middleware.CallerEmail(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	purchase, err := pc.service.CreatePurchase(callerEmail, middleware.CallerName(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, purchase)
}

// DeletePurchase godoc
// @Summary Cancel a purchase
// @Description Deletes one of the caller's purchases and restores the listing inventory
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security CookieAuth
// @Router /purchase/{id} [delete]
func (pc *purchaseController) DeletePurchase(ctx *gin.Context) {
	callerEmail, ok := middleware.CallerEmail(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	if err := pc.service.DeletePurchase(callerEmail, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
