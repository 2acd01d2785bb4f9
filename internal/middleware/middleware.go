package middleware

import (
	"net/http"

	"github.com/bitemanager/bitemanager-api/internal/auth"
	"github.com/gin-gonic/gin"
)

// CookieName is the http-only cookie carrying the session token
const CookieName = "token"

// Context keys populated by CookieAuth for downstream handlers
const (
	ContextUserEmail = "userEmail"
	ContextUserName  = "userName"
)

// CookieAuth validates the session token cookie and places the caller
// identity into the Gin context. Requests without a valid, unexpired
// token are rejected with 401 before any handler logic runs.
func CookieAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			respondUnauthorized(c)
			return
		}

		identity, err := issuer.Verify(tokenString)
		if err != nil {
			respondUnauthorized(c)
			return
		}

		c.Set(ContextUserEmail, identity.Email)
		c.Set(ContextUserName, identity.Name)

		c.Next()
	}
}

// respondUnauthorized aborts the request with the 401 contract body
func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
	c.Abort()
}

// CallerEmail returns the verified caller email set by CookieAuth
func CallerEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserEmail)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok && email != ""
}

// CallerName returns the verified caller display name set by CookieAuth
func CallerName(c *gin.Context) string {
	value, exists := c.Get(ContextUserName)
	if !exists {
		return ""
	}
	name, _ := value.(string)
	return name
}
