package utils

import (
	"DocVault/config"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AuthMiddleware verifies JWT and sets user context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		claims, err := VerifyToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Set("username", claims.Username)
		c.Set("user_id", claims.UserId)
		c.Set("display_name", claims.DisplayName)
		c.Next()
	}
}

var uploadLimiters sync.Map

func uploadLimiterFor(userID uint64) *rate.Limiter {
	if v, ok := uploadLimiters.Load(userID); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(config.AppConfig.UploadRate), config.AppConfig.UploadBurst)
	actual, _ := uploadLimiters.LoadOrStore(userID, limiter)
	return actual.(*rate.Limiter)
}

// UploadRateMiddleware throttles uploads per user.
func UploadRateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint64)
		if !uploadLimiterFor(userID).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads"})
			c.Abort()
			return
		}
		c.Next()
	}
}
