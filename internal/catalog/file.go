package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/alpiedelaletra/storefront/internal/domain"
)

type fileCatalog struct {
	Products []fileProduct `yaml:"products"`
	Models   []fileModel   `yaml:"models"`
}

type fileProduct struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Slug           string   `yaml:"slug"`
	Category       string   `yaml:"category"`
	Description    string   `yaml:"description"`
	BasePrice      string   `yaml:"base_price"`
	Sizes          []string `yaml:"sizes"`
	Interiors      []string `yaml:"interiors"`
	CoverTypes     []string `yaml:"cover_types"`
	Images         []string `yaml:"images"`
	Materials      []string `yaml:"materials"`
	Includes       []string `yaml:"includes"`
	ProductionTime string   `yaml:"production_time"`
	InStock        bool     `yaml:"in_stock"`
	WeeklyQuota    int      `yaml:"weekly_quota"`
	RemainingQuota int      `yaml:"remaining_quota"`
}

type fileModel struct {
	ID         string `yaml:"id"`
	Image      string `yaml:"image"`
	Label      string `yaml:"label"`
	Collection string `yaml:"collection"`
}

// FileSource reads the catalog from a YAML document
type FileSource struct {
	products []domain.Product
	models   []domain.ModelOption
}

// OpenFile parses the YAML catalog at path
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return ReadFile(f)
}

// ReadFile parses a YAML catalog document
func ReadFile(r io.Reader) (*FileSource, error) {
	var doc fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	src := &FileSource{
		products: make([]domain.Product, 0, len(doc.Products)),
		models:   make([]domain.ModelOption, 0, len(doc.Models)),
	}
	for _, fp := range doc.Products {
		p, err := fp.toDomain()
		if err != nil {
			return nil, err
		}
		src.products = append(src.products, p)
	}
	for _, fm := range doc.Models {
		src.models = append(src.models, domain.ModelOption{
			ID:         fm.ID,
			Image:      fm.Image,
			Label:      fm.Label,
			Collection: fm.Collection,
		})
	}
	return src, nil
}

func (fp fileProduct) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(fp.BasePrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %q: invalid base_price %q: %w", fp.ID, fp.BasePrice, err)
	}

	p := domain.Product{
		ID:             fp.ID,
		Name:           fp.Name,
		Slug:           fp.Slug,
		Category:       domain.Category(fp.Category),
		Description:    fp.Description,
		BasePrice:      price,
		Images:         fp.Images,
		Materials:      fp.Materials,
		Includes:       fp.Includes,
		ProductionTime: fp.ProductionTime,
		InStock:        fp.InStock,
		WeeklyQuota:    fp.WeeklyQuota,
		RemainingQuota: fp.RemainingQuota,
	}
	for _, s := range fp.Sizes {
		p.Sizes = append(p.Sizes, domain.Size(s))
	}
	for _, in := range fp.Interiors {
		p.Interiors = append(p.Interiors, domain.Interior(in))
	}
	for _, c := range fp.CoverTypes {
		p.CoverTypes = append(p.CoverTypes, domain.Cover(c))
	}
	return p, nil
}

func (s *FileSource) Products(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *FileSource) Models(ctx context.Context) ([]domain.ModelOption, error) {
	return s.models, nil
}
