package repository

import (
	"context"

	"github.com/alpiedelaletra/storefront/internal/domain"
)

// CatalogRepository reads catalog records from storage
type CatalogRepository interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Models(ctx context.Context) ([]domain.ModelOption, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// Repositories groups every repository the service uses
type Repositories struct {
	Catalog CatalogRepository
}
