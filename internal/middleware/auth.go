package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"reviewloop/internal/pkg/jwt"
	"reviewloop/internal/repository"

	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer token and stores the user ID in the context.
func Auth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "Invalid or expired token"},
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OwnershipChecker provides middleware to verify resource ownership
type OwnershipChecker struct {
	storeRepo *repository.StoreRepository
}

// NewOwnershipChecker creates a new ownership checker
func NewOwnershipChecker(storeRepo *repository.StoreRepository) *OwnershipChecker {
	return &OwnershipChecker{storeRepo: storeRepo}
}

// CheckStoreOwnership verifies the user owns the store.
// Expects store ID in URL param "id"
func (oc *OwnershipChecker) CheckStoreOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}

		storeIDStr := c.Param("id")
		storeID, err := strconv.ParseInt(storeIDStr, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_ID", "message": "Invalid store ID"},
			})
			return
		}

		store, err := oc.storeRepo.GetByID(c.Request.Context(), storeID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   gin.H{"code": "NOT_FOUND", "message": "Store not found"},
			})
			return
		}

		if store.UserID != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "You don't own this store"},
			})
			return
		}

		c.Next()
	}
}
