package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireOwnEmail is a middleware that rejects requests whose "email"
// query parameter does not match the authenticated caller. Routes that
// list per-user records (own listings, own purchases) use it so one
// user can never read another user's view.
func RequireOwnEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Identity comes from context (set by CookieAuth middleware)
		callerEmail, ok := CallerEmail(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			c.Abort()
			return
		}

		requested := c.Query("email")
		if requested != callerEmail {
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden access"})
			c.Abort()
			return
		}

		c.Next()
	}
}
