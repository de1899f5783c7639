package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/api/middleware"
	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/catalog"
	"github.com/alpiedelaletra/storefront/internal/configurator"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/money"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// ItemResponse is a cart entry with its computed amounts
type ItemResponse struct {
	cart.Item
	PriceFormatted    string          `json:"price_formatted"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalFormatted string          `json:"subtotal_formatted"`
}

// CartResponse represents the cart response
type CartResponse struct {
	CartID         string          `json:"cart_id"`
	Items          []ItemResponse  `json:"items"`
	ItemCount      int             `json:"item_count"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
}

func itemResponse(item cart.Item) ItemResponse {
	return ItemResponse{
		Item:              item,
		PriceFormatted:    money.Format(item.Price),
		Subtotal:          item.Subtotal(),
		SubtotalFormatted: money.Format(item.Subtotal()),
	}
}

func cartResponse(id uuid.UUID, store *cart.Store) CartResponse {
	items, total := store.Snapshot()
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = itemResponse(item)
	}
	return CartResponse{
		CartID:         id.String(),
		Items:          out,
		ItemCount:      len(out),
		Total:          total,
		TotalFormatted: money.Format(total),
	}
}

// AddItemRequest names a product and the options picked on its page.
// Quantity may be a number or the text typed in the quantity field.
type AddItemRequest struct {
	ProductID   string `json:"product_id"`
	ProductSlug string `json:"product_slug"`
	configurator.Selection
	Quantity json.RawMessage `json:"quantity"`
}

// UpdateItemRequest represents a quantity change
type UpdateItemRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// quantityText returns a JSON number or string as the text a user would have
// typed. ok is false when the field was absent or null.
func quantityText(raw json.RawMessage) (text string, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, true
	}
	return string(trimmed), true
}

func loadedCart(c *gin.Context) (uuid.UUID, *cart.Store, bool) {
	store, ok := middleware.GetCartFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return uuid.Nil, nil, false
	}
	id, _ := middleware.GetCartIDFromContext(c)
	return id, store, true
}

// HandleCreateCart handles POST /v1/carts
func HandleCreateCart(sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store := sessions.Create()
		logger.Debug("Cart created", zap.String("cart_id", id.String()))
		c.JSON(http.StatusCreated, cartResponse(id, store))
	}
}

// HandleGetCart handles GET /v1/carts/:id
func HandleGetCart(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store, ok := loadedCart(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(id, store))
	}
}

// HandleAddItem handles POST /v1/carts/:id/items
func HandleAddItem(cat *catalog.Catalog, limits configurator.Limits, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store, ok := loadedCart(c)
		if !ok {
			return
		}

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return
		}

		var (
			product *domain.Product
			err     error
		)
		switch {
		case req.ProductID != "":
			product, err = cat.ByID(req.ProductID)
		case req.ProductSlug != "":
			product, err = cat.BySlug(req.ProductSlug)
		default:
			err = &errors.ErrInvalidInput{Field: "product_id", Message: "product_id or product_slug is required"}
		}
		if err != nil {
			respondError(c, err, logger)
			return
		}

		cfgr := configurator.New(*product, cat, limits)
		cfgr.Apply(req.Selection)
		if text, ok := quantityText(req.Quantity); ok {
			cfgr.SetQuantityText(text)
		}
		input, err := cfgr.Assemble()
		if err != nil {
			respondError(c, err, logger)
			return
		}

		item, err := store.AddItem(input)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		logger.Info("Item added to cart",
			zap.String("cart_id", id.String()),
			zap.String("product_id", product.ID),
			zap.Int("quantity", item.Quantity),
		)

		c.JSON(http.StatusCreated, gin.H{
			"item": itemResponse(item),
			"cart": cartResponse(id, store),
		})
	}
}

// HandleUpdateItem handles PATCH /v1/carts/:id/items/:key
func HandleUpdateItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store, ok := loadedCart(c)
		if !ok {
			return
		}

		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return
		}

		text, ok := quantityText(req.Quantity)
		if !ok {
			respondError(c, &errors.ErrInvalidInput{Field: "quantity", Message: "quantity is required"}, logger)
			return
		}

		item, found := store.UpdateQuantity(c.Param("key"), configurator.ParseQuantity(text))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"item": itemResponse(item),
			"cart": cartResponse(id, store),
		})
	}
}

// HandleRemoveItem handles DELETE /v1/carts/:id/items/:key. Removing a
// missing entry is not an error.
func HandleRemoveItem(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, store, ok := loadedCart(c)
		if !ok {
			return
		}
		store.RemoveItem(c.Param("key"))
		c.Status(http.StatusNoContent)
	}
}

// HandleClearCart handles DELETE /v1/carts/:id/items
func HandleClearCart(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, store, ok := loadedCart(c)
		if !ok {
			return
		}
		store.Clear()
		c.Status(http.StatusNoContent)
	}
}
