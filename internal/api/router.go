package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/api/handlers"
	"github.com/alpiedelaletra/storefront/internal/api/middleware"
	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/catalog"
	"github.com/alpiedelaletra/storefront/internal/checkout"
	"github.com/alpiedelaletra/storefront/internal/config"
	"github.com/alpiedelaletra/storefront/internal/configurator"
)

// Services are the components the handlers work on
type Services struct {
	Catalog  *catalog.Catalog
	Sessions *cart.Sessions
	Checkout *checkout.Service
	Limits   configurator.Limits
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware(cfg.CORS))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(svc.Catalog, logger))
		v1.GET("/products/:slug", handlers.HandleGetProduct(svc.Catalog, svc.Limits, logger))
		v1.POST("/products/:slug/inquiry", handlers.HandleProductInquiry(svc.Catalog, svc.Limits, cfg.Messaging, logger))
		v1.GET("/models", handlers.HandleListModels(svc.Catalog, logger))
		v1.GET("/catalog/export", handlers.HandleExportCatalog(svc.Catalog, logger))

		v1.POST("/carts", handlers.HandleCreateCart(svc.Sessions, logger))

		cartRoutes := v1.Group("/carts/:id")
		cartRoutes.Use(middleware.CartMiddleware(svc.Sessions, logger))
		{
			cartRoutes.GET("", handlers.HandleGetCart(logger))
			cartRoutes.POST("/items", handlers.HandleAddItem(svc.Catalog, svc.Limits, logger))
			cartRoutes.PATCH("/items/:key", handlers.HandleUpdateItem(logger))
			cartRoutes.DELETE("/items/:key", handlers.HandleRemoveItem(logger))
			cartRoutes.DELETE("/items", handlers.HandleClearCart(logger))
			cartRoutes.POST("/message", handlers.HandlePreviewMessage(svc.Checkout, logger))
			cartRoutes.POST("/checkout", handlers.HandleCheckout(svc.Checkout, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	corsCfg.AllowAllOrigins = len(cfg.AllowedOrigins) == 0
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			break
		}
	}
	if !corsCfg.AllowAllOrigins {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}

	return cors.New(corsCfg)
}
