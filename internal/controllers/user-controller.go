package controllers

import (
	"net/http"

	"github.com/bitemanager/bitemanager-api/internal/models"
	"github.com/bitemanager/bitemanager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserController handles HTTP requests related to user profiles
type UserController interface {
	// CreateUser upserts a user profile by email
	CreateUser(c *gin.Context)
	// GetUsers lists all registered users
	GetUsers(c *gin.Context)
}

type userController struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) UserController {
	return &userController{service: service}
}

// CreateUser godoc
// @Summary Register a user profile
// @Description Creates a user profile; registering the same email again is a no-op
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User profile"
// @Success 201 {object} models.User
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Router /users [post]
func (uc *userController) CreateUser(ctx *gin.Context) {
	var user models.User
	if err := ctx.ShouldBindJSON(&user); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if user.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := uc.service.CreateUser(&user); err != nil {
		if err == services.ErrAlreadyExists {
			// Idempotent by contract: signing up twice is not an error
			ctx.JSON(http.StatusOK, gin.H{"message": "already signed up"})
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// GetUsers godoc
// @Summary List all users
// @Description Returns every registered user profile
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} models.APIError
// @Router /users [get]
func (uc *userController) GetUsers(ctx *gin.Context) {
	users, err := uc.service.ListUsers()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}
