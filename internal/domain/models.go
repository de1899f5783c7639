package domain

import (
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the remaining quota at or below which a product is flagged as scarce
const LowStockThreshold = 5

// Product represents a catalog product
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Category       Category        `json:"category"`
	Description    string          `json:"description"`
	BasePrice      decimal.Decimal `json:"base_price"`
	Sizes          []Size          `json:"sizes"`
	Interiors      []Interior      `json:"interiors"`
	CoverTypes     []Cover         `json:"cover_types"`
	Images         []string        `json:"images"`
	Materials      []string        `json:"materials"`
	Includes       []string        `json:"includes"`
	ProductionTime string          `json:"production_time"`
	InStock        bool            `json:"in_stock"`
	WeeklyQuota    int             `json:"weekly_quota"`
	RemainingQuota int             `json:"remaining_quota"`
}

// LowStock reports whether the remaining weekly quota is running out
func (p *Product) LowStock() bool {
	return p.RemainingQuota <= LowStockThreshold
}

// HasSize checks if the product is offered in the given size
func (p *Product) HasSize(s Size) bool {
	for _, v := range p.Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// HasInterior checks if the product is offered with the given interior
func (p *Product) HasInterior(i Interior) bool {
	for _, v := range p.Interiors {
		if v == i {
			return true
		}
	}
	return false
}

// HasCover checks if the product is offered with the given cover
func (p *Product) HasCover(c Cover) bool {
	for _, v := range p.CoverTypes {
		if v == c {
			return true
		}
	}
	return false
}

// Ref returns the reduced projection carried by cart items
func (p *Product) Ref() ProductRef {
	return ProductRef{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		Images:    append([]string(nil), p.Images...),
	}
}

// ProductRef is the part of a product a cart item keeps
type ProductRef struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	Images    []string        `json:"images"`
}

// ModelOption is a selectable cover artwork shown on the detail page
type ModelOption struct {
	ID         string `json:"id"`
	Image      string `json:"image"`
	Label      string `json:"label"`
	Collection string `json:"collection,omitempty"`
}

// BuyerInfo holds what the buyer typed in the checkout form
type BuyerInfo struct {
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	City           string         `json:"city"`
	Province       string         `json:"province"`
	Address        string         `json:"address"`
	PostalCode     string         `json:"postal_code"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Notes          string         `json:"notes"`
	PreferredStyle string         `json:"preferred_style"`
}

// FullName joins first and last name, skipping empty parts
func (b BuyerInfo) FullName() string {
	switch {
	case b.FirstName != "" && b.LastName != "":
		return b.FirstName + " " + b.LastName
	case b.FirstName != "":
		return b.FirstName
	default:
		return b.LastName
	}
}
