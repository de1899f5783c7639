package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

const productColumns = `
	id, name, slug, category, description, base_price,
	sizes, interiors, cover_types, images, materials, includes,
	production_time, in_stock, weekly_quota, remaining_quota
`

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new read-only catalog repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		category    string
		description sql.NullString
		price       decimal.Decimal
		sizes       pq.StringArray
		interiors   pq.StringArray
		covers      pq.StringArray
		images      pq.StringArray
		materials   pq.StringArray
		includes    pq.StringArray
		production  sql.NullString
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&category,
		&description,
		&price,
		&sizes,
		&interiors,
		&covers,
		&images,
		&materials,
		&includes,
		&production,
		&product.InStock,
		&product.WeeklyQuota,
		&product.RemainingQuota,
	)
	if err != nil {
		return nil, err
	}

	product.Category = domain.Category(category)
	product.BasePrice = price
	if description.Valid {
		product.Description = description.String
	}
	if production.Valid {
		product.ProductionTime = production.String
	}
	for _, s := range sizes {
		product.Sizes = append(product.Sizes, domain.Size(s))
	}
	for _, in := range interiors {
		product.Interiors = append(product.Interiors, domain.Interior(in))
	}
	for _, c := range covers {
		product.CoverTypes = append(product.CoverTypes, domain.Cover(c))
	}
	product.Images = []string(images)
	product.Materials = []string(materials)
	product.Includes = []string(includes)

	return &product, nil
}

func (r *productRepository) Products(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate products", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get product by slug", zap.Error(err))
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Models(ctx context.Context) ([]domain.ModelOption, error) {
	query := `
		SELECT id, image, label, collection
		FROM model_options
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query model options", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var models []domain.ModelOption
	for rows.Next() {
		var model domain.ModelOption
		var collection sql.NullString

		if err := rows.Scan(&model.ID, &model.Image, &model.Label, &collection); err != nil {
			r.logger.Error("Failed to scan model option", zap.Error(err))
			return nil, err
		}
		if collection.Valid {
			model.Collection = collection.String
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
