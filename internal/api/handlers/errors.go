package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// respondError maps a service error to its HTTP status
func respondError(c *gin.Context, err error, logger *zap.Logger) {
	var (
		notFound      *errors.ErrNotFound
		invalidOption *errors.ErrInvalidOption
		invalidInput  *errors.ErrInvalidInput
		emptyCart     *errors.ErrEmptyCart
		transition    *errors.ErrInvalidStateTransition
		handoff       *errors.ErrHandoffFailed
	)

	switch {
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Resource + " not found"})
	case stderrors.As(err, &invalidOption):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid option",
			"field":   invalidOption.Field,
			"details": err.Error(),
		})
	case stderrors.As(err, &invalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"field":   invalidInput.Field,
			"details": err.Error(),
		})
	case stderrors.As(err, &emptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
	case stderrors.As(err, &transition):
		logger.Error("Invalid hand-off transition", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.As(err, &handoff):
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to open messaging link"})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindOptionalJSON binds a JSON body when one was sent
func bindOptionalJSON(c *gin.Context, v interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}
