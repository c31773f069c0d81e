package auth

import (
	"net/http"
	"strings"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/api"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/logger"

	"github.com/gin-gonic/gin"
)

// notAuthenticated is the single body returned for every auth failure. The
// caller must not be able to tell a missing header from a bad signature or an
// expired token; the distinction only goes to the log.
const notAuthenticated = "not authenticated"

func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			reject(c, "malformed authorization header")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			reject(c, "empty bearer token")
			return
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Debug("token rejected", "reason", err.Error(), "path", c.Request.URL.Path)
			reject(c, "")
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("user_email", identity.Email)

		c.Next()
	}
}

func reject(c *gin.Context, reason string) {
	if reason != "" {
		logger.Debug("request rejected", "reason", reason, "path", c.Request.URL.Path)
	}
	c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: notAuthenticated})
	c.Abort()
}

// GetUserID returns the verified caller id set by Middleware.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
