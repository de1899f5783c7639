// Package configurator tracks the options chosen on a product page and turns
// them into a cart entry once they have been checked against the product.
package configurator

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// DefaultPersonalizationMaxLength caps the free-text personalization
const DefaultPersonalizationMaxLength = 40

// Limits bounds the values a page session can hold
type Limits struct {
	Cart                     cart.Limits
	PersonalizationMaxLength int
}

func DefaultLimits() Limits {
	return Limits{
		Cart:                     cart.DefaultLimits(),
		PersonalizationMaxLength: DefaultPersonalizationMaxLength,
	}
}

// ModelLookup resolves model option ids; *catalog.Catalog satisfies it
type ModelLookup interface {
	ModelByID(id string) (*domain.ModelOption, error)
	DefaultModel() *domain.ModelOption
}

// Selection is the state of one product page
type Selection struct {
	Size            domain.Size     `json:"size"`
	Interior        domain.Interior `json:"interior"`
	Cover           domain.Cover    `json:"cover"`
	ModelID         string          `json:"model_id,omitempty"`
	Personalization string          `json:"personalization,omitempty"`
	Quantity        int             `json:"quantity"`
}

// Configurator holds the selection for one product
type Configurator struct {
	product   domain.Product
	models    ModelLookup
	limits    Limits
	selection Selection
}

// New starts a page session with the first allowed value of every option
func New(product domain.Product, models ModelLookup, limits Limits) *Configurator {
	if limits.PersonalizationMaxLength < 1 {
		limits.PersonalizationMaxLength = DefaultPersonalizationMaxLength
	}

	sel := Selection{Quantity: 1}
	if len(product.Sizes) > 0 {
		sel.Size = product.Sizes[0]
	}
	if len(product.Interiors) > 0 {
		sel.Interior = product.Interiors[0]
	}
	if len(product.CoverTypes) > 0 {
		sel.Cover = product.CoverTypes[0]
	}
	if models != nil {
		if m := models.DefaultModel(); m != nil {
			sel.ModelID = m.ID
		}
	}

	return &Configurator{
		product:   product,
		models:    models,
		limits:    limits,
		selection: sel,
	}
}

func (c *Configurator) Product() domain.Product {
	return c.product
}

func (c *Configurator) Selection() Selection {
	return c.selection
}

func (c *Configurator) SelectSize(s domain.Size) {
	c.selection.Size = s
}

func (c *Configurator) SelectInterior(i domain.Interior) {
	c.selection.Interior = i
}

func (c *Configurator) SelectCover(cv domain.Cover) {
	c.selection.Cover = cv
}

// SelectModel records a model option id; "" clears it
func (c *Configurator) SelectModel(id string) {
	c.selection.ModelID = id
}

// SetQuantity clamps q into the cart's quantity range
func (c *Configurator) SetQuantity(q int) {
	c.selection.Quantity = c.limits.Cart.ClampQuantity(q)
}

// SetQuantityText accepts what the user typed; anything unparsable counts as 1
func (c *Configurator) SetQuantityText(raw string) {
	c.SetQuantity(ParseQuantity(raw))
}

// ParseQuantity reads the leading integer of raw, so "2.5" is 2 and "3 u" is 3.
// No digits or a zero gives 1. The result is not clamped.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 1
	}

	q, err := strconv.Atoi(s[:end])
	if err != nil {
		// only overflow is left
		if s[0] == '-' {
			return 1
		}
		return math.MaxInt
	}
	if q == 0 {
		return 1
	}
	return q
}

// SetPersonalization trims the text and cuts it to the length cap
func (c *Configurator) SetPersonalization(text string) {
	c.selection.Personalization = Truncate(strings.TrimSpace(text), c.limits.PersonalizationMaxLength)
}

// Apply copies every field of sel through the setters
func (c *Configurator) Apply(sel Selection) {
	if sel.Size != "" {
		c.SelectSize(sel.Size)
	}
	if sel.Interior != "" {
		c.SelectInterior(sel.Interior)
	}
	if sel.Cover != "" {
		c.SelectCover(sel.Cover)
	}
	if sel.ModelID != "" {
		c.SelectModel(sel.ModelID)
	}
	c.SetPersonalization(sel.Personalization)
	c.SetQuantity(sel.Quantity)
}

// LinePrice is the base price times the selected quantity
func (c *Configurator) LinePrice() decimal.Decimal {
	return c.product.BasePrice.Mul(decimal.NewFromInt(int64(c.selection.Quantity)))
}

// ModelLabel resolves the selected model option to its label
func (c *Configurator) ModelLabel() string {
	if c.selection.ModelID == "" || c.models == nil {
		return ""
	}
	m, err := c.models.ModelByID(c.selection.ModelID)
	if err != nil {
		return ""
	}
	return m.Label
}

// Validate checks every selected option against what the product offers
func (c *Configurator) Validate() error {
	p := &c.product
	sel := c.selection

	if !p.HasSize(sel.Size) {
		return &errors.ErrInvalidOption{Field: "size", Value: string(sel.Size), Product: p.Name}
	}
	if !p.HasInterior(sel.Interior) {
		return &errors.ErrInvalidOption{Field: "interior", Value: string(sel.Interior), Product: p.Name}
	}
	if !p.HasCover(sel.Cover) {
		return &errors.ErrInvalidOption{Field: "cover", Value: string(sel.Cover), Product: p.Name}
	}
	if sel.ModelID != "" {
		if c.models == nil {
			return &errors.ErrInvalidOption{Field: "model", Value: sel.ModelID, Product: p.Name}
		}
		if _, err := c.models.ModelByID(sel.ModelID); err != nil {
			return &errors.ErrInvalidOption{Field: "model", Value: sel.ModelID, Product: p.Name}
		}
	}
	return nil
}

// Assemble validates the selection and builds the cart input, capturing the
// current base price as the unit price.
func (c *Configurator) Assemble() (cart.ItemInput, error) {
	if err := c.Validate(); err != nil {
		return cart.ItemInput{}, err
	}

	return cart.ItemInput{
		Product:          c.product.Ref(),
		Quantity:         c.selection.Quantity,
		Price:            c.product.BasePrice,
		SelectedSize:     c.selection.Size,
		SelectedInterior: c.selection.Interior,
		SelectedCover:    c.selection.Cover,
		SelectedModel:    c.ModelLabel(),
		Personalization:  c.selection.Personalization,
	}, nil
}

// Truncate cuts s to at most max runes
func Truncate(s string, max int) string {
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
