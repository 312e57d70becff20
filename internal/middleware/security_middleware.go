package middleware

import (
	"net/http"
	"strings"
	"time"

	"go-trading-backend/internal/auth"
	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the JWT and enforces the inactivity timeout on the
// session it names. Every authenticated request bumps the session's
// last-activity timestamp; a request arriving after the timeout revokes the
// session and is answered with a forced-logout message instead.
func AuthMiddleware(sessionTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var session models.Session
		if err := database.DB.First(&session, "id = ?", claims.SessionID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found. Please log in again."})
			c.Abort()
			return
		}
		if session.Revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has ended. Please log in again."})
			c.Abort()
			return
		}

		if time.Since(session.LastActivity) > sessionTimeout {
			database.DB.Model(&session).Update("revoked", true)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "You have been automatically logged out due to inactivity."})
			c.Abort()
			return
		}

		// Still active: record this request as the latest activity
		if err := database.DB.Model(&session).Update("last_activity", time.Now()).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh session"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("sessionID", claims.SessionID)

		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
