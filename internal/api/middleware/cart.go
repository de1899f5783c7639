package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

const (
	cartKey   = "cart"
	cartIDKey = "cart_id"
)

// CartMiddleware loads the cart named by the :id path parameter
func CartMiddleware(sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		store, err := sessions.Get(id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			logger.Error("Failed to load cart", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(cartKey, store)
		c.Set(cartIDKey, id)
		c.Next()
	}
}

// GetCartFromContext returns the cart loaded by CartMiddleware
func GetCartFromContext(c *gin.Context) (*cart.Store, bool) {
	v, exists := c.Get(cartKey)
	if !exists {
		return nil, false
	}
	store, ok := v.(*cart.Store)
	return store, ok
}

// GetCartIDFromContext returns the session id of the loaded cart
func GetCartIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(cartIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
