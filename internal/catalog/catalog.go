package catalog

import (
	"context"
	"fmt"

	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// AllModels selects every model option regardless of collection
const AllModels = "todas"

// UncollectedModels is the collection name for options without one
const UncollectedModels = "otras"

// Source supplies catalog records
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Models(ctx context.Context) ([]domain.ModelOption, error)
}

// Catalog is the read-only product and model option list. It is built once
// and handed to whoever needs it; nothing mutates it afterwards.
type Catalog struct {
	products []domain.Product
	models   []domain.ModelOption
	bySlug   map[string]int
	byID     map[string]int
	modelIdx map[string]int
}

// Filter narrows the product list; empty fields match everything
type Filter struct {
	Category domain.Category
	Size     domain.Size
	Interior domain.Interior
}

// Load reads every record from src and builds a catalog
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	models, err := src.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model options: %w", err)
	}
	return New(products, models)
}

// New validates the records and indexes them
func New(products []domain.Product, models []domain.ModelOption) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		models:   make([]domain.ModelOption, len(models)),
		bySlug:   make(map[string]int, len(products)),
		byID:     make(map[string]int, len(products)),
		modelIdx: make(map[string]int, len(models)),
	}
	copy(c.products, products)
	copy(c.models, models)

	for i := range c.products {
		p := &c.products[i]
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
	}

	for i, m := range c.models {
		if m.ID == "" {
			return nil, fmt.Errorf("model option %d has no id", i)
		}
		if _, dup := c.modelIdx[m.ID]; dup {
			return nil, fmt.Errorf("duplicate model option id %q", m.ID)
		}
		c.modelIdx[m.ID] = i
	}

	return c, nil
}

func validateProduct(p *domain.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("product %q has no id", p.Name)
	case p.Slug == "":
		return fmt.Errorf("product %q has no slug", p.ID)
	case p.Name == "":
		return fmt.Errorf("product %q has no name", p.ID)
	case !p.Category.IsValid():
		return fmt.Errorf("product %q has unknown category %q", p.ID, p.Category)
	case p.BasePrice.IsNegative():
		return fmt.Errorf("product %q has a negative price", p.ID)
	case len(p.Sizes) == 0, len(p.Interiors) == 0, len(p.CoverTypes) == 0:
		return fmt.Errorf("product %q must offer at least one size, interior and cover", p.ID)
	case len(p.Images) == 0:
		return fmt.Errorf("product %q has no images", p.ID)
	case p.RemainingQuota < 0 || p.WeeklyQuota < 0:
		return fmt.Errorf("product %q has a negative quota", p.ID)
	}
	for _, s := range p.Sizes {
		if !s.IsValid() {
			return fmt.Errorf("product %q has unknown size %q", p.ID, s)
		}
	}
	for _, in := range p.Interiors {
		if !in.IsValid() {
			return fmt.Errorf("product %q has unknown interior %q", p.ID, in)
		}
	}
	for _, cv := range p.CoverTypes {
		if !cv.IsValid() {
			return fmt.Errorf("product %q has unknown cover %q", p.ID, cv)
		}
	}
	return nil
}

// Products returns every product in catalog order
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// BySlug looks a product up by its URL slug
func (c *Catalog) BySlug(slug string) (*domain.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
	}
	p := c.products[i]
	return &p, nil
}

// ByID looks a product up by id
func (c *Catalog) ByID(id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	p := c.products[i]
	return &p, nil
}

// Filter returns the products matching every non-empty criterion
func (c *Catalog) Filter(f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for i := range c.products {
		p := &c.products[i]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Size != "" && !p.HasSize(f.Size) {
			continue
		}
		if f.Interior != "" && !p.HasInterior(f.Interior) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// Models returns the model options of one collection, or all of them for "" and "todas"
func (c *Catalog) Models(collection string) []domain.ModelOption {
	out := make([]domain.ModelOption, 0, len(c.models))
	for _, m := range c.models {
		if collection == "" || collection == AllModels || collectionOf(m) == collection {
			out = append(out, m)
		}
	}
	return out
}

// ModelByID looks a model option up by id
func (c *Catalog) ModelByID(id string) (*domain.ModelOption, error) {
	i, ok := c.modelIdx[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "model option", ID: id}
	}
	m := c.models[i]
	return &m, nil
}

// DefaultModel is the first model option, if any
func (c *Catalog) DefaultModel() *domain.ModelOption {
	if len(c.models) == 0 {
		return nil
	}
	m := c.models[0]
	return &m
}

// Collections lists distinct model collections in first-seen order
func (c *Catalog) Collections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range c.models {
		col := collectionOf(m)
		if !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	return out
}

func collectionOf(m domain.ModelOption) string {
	if m.Collection == "" {
		return UncollectedModels
	}
	return m.Collection
}
