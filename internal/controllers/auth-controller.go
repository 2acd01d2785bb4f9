package controllers

import (
	"net/http"

	"github.com/bitemanager/bitemanager-api/internal/auth"
	"github.com/bitemanager/bitemanager-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthController issues and clears the session cookie
type AuthController struct {
	issuer *auth.TokenIssuer
	// production toggles Secure + SameSite=None so the cookie works
	// cross-site behind TLS; development keeps SameSite=Strict
	production bool
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(issuer *auth.TokenIssuer, production bool) *AuthController {
	return &AuthController{issuer: issuer, production: production}
}

// IssueToken godoc
// @Summary Issue a session credential
// @Description Signs the submitted identity claim into a JWT and sets it as an http-only cookie valid for 1 hour
// @Tags auth
// @Accept json
// @Produce json
// @Param identity body object true "Identity claim {email, name}"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} models.APIError
// @Router /jwt [post]
func (ac *AuthController) IssueToken(ctx *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := ac.issuer.Issue(auth.Claims{Email: req.Email, Name: req.Name})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	ac.setSessionCookie(ctx, token, int(auth.TokenTTL.Seconds()))
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout godoc
// @Summary Clear the session credential
// @Description Expires the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /logout [post]
func (ac *AuthController) Logout(ctx *gin.Context) {
	ac.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// setSessionCookie writes the token cookie with the environment's
// Secure/SameSite attributes
func (ac *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	if ac.production {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteStrictMode)
	}
	ctx.SetCookie(middleware.CookieName, token, maxAge, "/", "", ac.production, true)
}
