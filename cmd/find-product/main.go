package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/catalog"
	"github.com/alpiedelaletra/storefront/internal/config"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/money"
	"github.com/alpiedelaletra/storefront/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <slug>")
		fmt.Println("Example: go run cmd/find-product/main.go agenda-semanal")
		os.Exit(1)
	}

	slug := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	fmt.Printf("🔍 Searching for product: %s\n\n", slug)

	product, err := findProduct(context.Background(), cfg, slug, logger)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		fmt.Printf("\nMake sure:\n")
		fmt.Printf("  1. The slug is correct (case-sensitive)\n")
		fmt.Printf("  2. CATALOG_SOURCE points at the catalog you expect (now: %s)\n", cfg.Catalog.Source)
		os.Exit(1)
	}

	fmt.Printf("✅ Found product!\n\n")
	fmt.Printf("ID: %s\n", product.ID)
	fmt.Printf("Name: %s\n", product.Name)
	fmt.Printf("Category: %s\n", product.Category)
	fmt.Printf("Price: %s\n", money.Format(product.BasePrice))
	fmt.Printf("\nOptions:\n")
	fmt.Printf("  Sizes: %s\n", join(product.Sizes))
	fmt.Printf("  Interiors: %s\n", join(product.Interiors))
	fmt.Printf("  Covers: %s\n", join(product.CoverTypes))
	fmt.Printf("\nStock:\n")
	fmt.Printf("  In stock: %t\n", product.InStock)
	fmt.Printf("  Weekly quota: %d (remaining %d)\n", product.WeeklyQuota, product.RemainingQuota)
	if product.LowStock() {
		fmt.Printf("  ⚠️  Low stock\n")
	}
}

func findProduct(ctx context.Context, cfg *config.Config, slug string, logger *zap.Logger) (*domain.Product, error) {
	if cfg.Catalog.Source == "postgres" {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return postgres.NewRepositories(db, logger).Catalog.ProductBySlug(ctx, slug)
	}

	src, err := catalog.OpenFile(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return cat.BySlug(slug)
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
