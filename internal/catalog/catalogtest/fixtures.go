// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alpiedelaletra/storefront/internal/catalog"
	"github.com/alpiedelaletra/storefront/internal/domain"
)

func AgendaSemanal() domain.Product {
	return domain.Product{
		ID:             "agenda-semanal-01",
		Name:           "Agenda Semanal",
		Slug:           "agenda-semanal",
		Category:       domain.CategoryAgendas,
		BasePrice:      decimal.NewFromInt(5000),
		Sizes:          []domain.Size{domain.SizeA5, domain.SizeA4},
		Interiors:      []domain.Interior{domain.InteriorSemanal, domain.InteriorDosPorHoja},
		CoverTypes:     []domain.Cover{domain.CoverDura, domain.CoverBlanda},
		Images:         []string{"/img/semanal-1.webp", "/img/semanal-2.webp"},
		InStock:        true,
		WeeklyQuota:    15,
		RemainingQuota: 9,
	}
}

func CuadernoUniversitario() domain.Product {
	return domain.Product{
		ID:             "cuaderno-uni-01",
		Name:           "Cuaderno Universitario",
		Slug:           "cuaderno-universitario",
		Category:       domain.CategoryCuadernos,
		BasePrice:      decimal.NewFromInt(4200),
		Sizes:          []domain.Size{domain.SizeA4},
		Interiors:      []domain.Interior{domain.InteriorRayado, domain.InteriorCuadriculado},
		CoverTypes:     []domain.Cover{domain.CoverBlanda},
		Images:         []string{"/img/cuaderno-1.webp"},
		InStock:        true,
		WeeklyQuota:    20,
		RemainingQuota: 2,
	}
}

func Models() []domain.ModelOption {
	return []domain.ModelOption{
		{ID: "1", Image: "/models/16.webp", Label: "1", Collection: "Edicion 2025"},
		{ID: "2", Image: "/models/18.webp", Label: "2", Collection: "Edicion 2025"},
		{ID: "9", Image: "/models/flores.webp", Label: "Flores"},
	}
}

// New builds the fixture catalog or fails the test
func New(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.Product{AgendaSemanal(), CuadernoUniversitario()}, Models())
	if err != nil {
		t.Fatalf("failed to build fixture catalog: %v", err)
	}
	return c
}
