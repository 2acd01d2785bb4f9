package controllers

import (
	"errors"
	"net/http"

	"github.com/bitemanager/bitemanager-api/internal/models"
	"github.com/bitemanager/bitemanager-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps a service error to its HTTP status and writes the
// standard error body. Unrecognized errors become a generic 500; the
// detail goes to the log, never to the caller.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Resource not found"))
	case errors.Is(err, services.ErrSelfPurchase):
		ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrSelfPurchase, "You cannot purchase your own listing"))
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Forbidden access"))
	case errors.Is(err, services.ErrInsufficientStock):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrInsufficientStock, "Not enough stock to complete the purchase"))
	case errors.Is(err, services.ErrAlreadyExists):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "Resource already exists"))
	default:
		log.WithError(err).Error("Unexpected error while handling request")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal Server Error"))
	}
}
