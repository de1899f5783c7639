package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/catalog"
	"github.com/alpiedelaletra/storefront/internal/config"
	"github.com/alpiedelaletra/storefront/internal/configurator"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/message"
	"github.com/alpiedelaletra/storefront/internal/messaging"
	"github.com/alpiedelaletra/storefront/internal/money"
)

// ProductResponse is a catalog product with display fields
type ProductResponse struct {
	domain.Product
	PriceFormatted string `json:"price_formatted"`
	LowStock       bool   `json:"low_stock"`
}

// ProductDetailResponse adds the selection the product page starts with
type ProductDetailResponse struct {
	ProductResponse
	DefaultSelection configurator.Selection `json:"default_selection"`
	Models           []domain.ModelOption   `json:"models"`
}

func productResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		Product:        p,
		PriceFormatted: money.Format(p.BasePrice),
		LowStock:       p.LowStock(),
	}
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.Filter{
			Category: domain.Category(c.Query("category")),
			Size:     domain.Size(c.Query("size")),
			Interior: domain.Interior(c.Query("interior")),
		}
		if filter.Category != "" && !filter.Category.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}

		products := cat.Filter(filter)
		out := make([]ProductResponse, len(products))
		for i, p := range products {
			out[i] = productResponse(p)
		}

		c.JSON(http.StatusOK, gin.H{
			"products": out,
			"count":    len(out),
		})
	}
}

// HandleGetProduct handles GET /v1/products/:slug
func HandleGetProduct(cat *catalog.Catalog, limits configurator.Limits, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := cat.BySlug(c.Param("slug"))
		if err != nil {
			respondError(c, err, logger)
			return
		}

		cfgr := configurator.New(*product, cat, limits)
		c.JSON(http.StatusOK, ProductDetailResponse{
			ProductResponse:  productResponse(*product),
			DefaultSelection: cfgr.Selection(),
			Models:           cat.Models(catalog.AllModels),
		})
	}
}

// InquiryRequest is a product page selection plus what to ask about
type InquiryRequest struct {
	configurator.Selection
	// Kind is "product" (default) or "personalization"
	Kind     string          `json:"kind"`
	Style    string          `json:"style"`
	Quantity json.RawMessage `json:"quantity"`
}

// InquiryResponse carries the chat text and the link that opens it
type InquiryResponse struct {
	Message            string                 `json:"message"`
	Link               string                 `json:"link"`
	Selection          configurator.Selection `json:"selection"`
	LinePriceFormatted string                 `json:"line_price_formatted"`
}

// HandleProductInquiry handles POST /v1/products/:slug/inquiry
func HandleProductInquiry(cat *catalog.Catalog, limits configurator.Limits, msgCfg config.MessagingConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := cat.BySlug(c.Param("slug"))
		if err != nil {
			respondError(c, err, logger)
			return
		}

		var req InquiryRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			validationFailed(c, err)
			return
		}

		cfgr := configurator.New(*product, cat, limits)
		cfgr.Apply(req.Selection)
		if text, ok := quantityText(req.Quantity); ok {
			cfgr.SetQuantityText(text)
		}
		if err := cfgr.Validate(); err != nil {
			respondError(c, err, logger)
			return
		}

		sel := cfgr.Selection()
		inquiry := message.Inquiry{
			ProductName:     product.Name,
			ModelLabel:      cfgr.ModelLabel(),
			Size:            string(sel.Size),
			Interior:        string(sel.Interior),
			Cover:           string(sel.Cover),
			Personalization: sel.Personalization,
			Quantity:        sel.Quantity,
		}

		var text string
		switch strings.ToLower(req.Kind) {
		case "", "product":
			text = message.FormatProductInquiry(inquiry)
		case "personalization":
			style := req.Style
			if style == "" {
				style = message.DefaultStyle
			}
			text = message.FormatPersonalizationInquiry(inquiry, style)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be product or personalization"})
			return
		}

		c.JSON(http.StatusOK, InquiryResponse{
			Message:            text,
			Link:               messaging.BuildLink(msgCfg.BaseURL, msgCfg.Phone, text),
			Selection:          sel,
			LinePriceFormatted: money.Format(cfgr.LinePrice()),
		})
	}
}

// HandleListModels handles GET /v1/models
func HandleListModels(cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"models":      cat.Models(c.Query("collection")),
			"collections": cat.Collections(),
			"styles":      message.Styles,
		})
	}
}

// HandleExportCatalog handles GET /v1/catalog/export
func HandleExportCatalog(cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Productos")
		if err != nil {
			logger.Error("Failed to create Excel sheet", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Nombre", "Slug", "Categoría", "Precio", "Precio (texto)",
			"Tamaños", "Interiores", "Tapas", "Producción",
			"En stock", "Cupo semanal", "Cupo restante",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range cat.Products() {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(string(p.Category))
			row.AddCell().SetValue(p.BasePrice.InexactFloat64())
			row.AddCell().SetValue(money.Format(p.BasePrice))
			row.AddCell().SetValue(joinOptions(p.Sizes))
			row.AddCell().SetValue(joinOptions(p.Interiors))
			row.AddCell().SetValue(joinOptions(p.CoverTypes))
			row.AddCell().SetValue(p.ProductionTime)
			row.AddCell().SetBool(p.InStock)
			row.AddCell().SetValue(p.WeeklyQuota)
			row.AddCell().SetValue(p.RemainingQuota)
		}

		c.Header("Content-Disposition", "attachment; filename=catalogo.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			logger.Error("Failed to write Excel file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write Excel file"})
			return
		}
	}
}

func joinOptions[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
