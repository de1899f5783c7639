package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/checkout"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/money"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// CheckoutResponse represents the hand-off outcome
type CheckoutResponse struct {
	*checkout.Result
	TotalFormatted  string `json:"total_formatted"`
	RedirectAfterMS int64  `json:"redirect_after_ms"`
	Error           string `json:"error,omitempty"`
}

func bindBuyer(c *gin.Context) (domain.BuyerInfo, bool) {
	var buyer domain.BuyerInfo
	if err := bindOptionalJSON(c, &buyer); err != nil {
		validationFailed(c, err)
		return buyer, false
	}
	if buyer.DeliveryMethod != "" && !buyer.DeliveryMethod.IsValid() {
		validationFailed(c, &errors.ErrInvalidInput{
			Field:   "delivery_method",
			Message: "must be retiro or envio",
		})
		return buyer, false
	}
	return buyer, true
}

// HandlePreviewMessage handles POST /v1/carts/:id/message
func HandlePreviewMessage(svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, store, ok := loadedCart(c)
		if !ok {
			return
		}
		buyer, ok := bindBuyer(c)
		if !ok {
			return
		}

		preview, err := svc.Preview(store, buyer)
		if err != nil {
			respondError(c, err, logger)
			return
		}
		c.JSON(http.StatusOK, preview)
	}
}

// HandleCheckout handles POST /v1/carts/:id/checkout
func HandleCheckout(svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store, ok := loadedCart(c)
		if !ok {
			return
		}
		buyer, ok := bindBuyer(c)
		if !ok {
			return
		}

		result, err := svc.Checkout(c.Request.Context(), store, buyer)
		if err != nil {
			var handoff *errors.ErrHandoffFailed
			if result != nil && stderrors.As(err, &handoff) {
				logger.Warn("Checkout hand-off failed",
					zap.String("cart_id", id.String()),
					zap.Error(err),
				)
				c.JSON(http.StatusBadGateway, checkoutResponse(result, err))
				return
			}
			respondError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, checkoutResponse(result, nil))
	}
}

func checkoutResponse(result *checkout.Result, err error) CheckoutResponse {
	resp := CheckoutResponse{
		Result:          result,
		TotalFormatted:  money.Format(result.Total),
		RedirectAfterMS: result.RedirectDelay.Milliseconds(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
