// Package cart holds the in-progress order of one browsing session.
package cart

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// DefaultMaxQuantity is the per-entry quantity ceiling offered by the product page
const DefaultMaxQuantity = 10

// Limits bounds what a single cart entry may hold
type Limits struct {
	MaxQuantity int
}

// DefaultLimits returns the limits the storefront ships with
func DefaultLimits() Limits {
	return Limits{MaxQuantity: DefaultMaxQuantity}
}

// ClampQuantity forces q into [1, MaxQuantity]
func (l Limits) ClampQuantity(q int) int {
	max := l.MaxQuantity
	if max < 1 {
		max = DefaultMaxQuantity
	}
	switch {
	case q < 1:
		return 1
	case q > max:
		return max
	default:
		return q
	}
}

// ItemInput is what "add to cart" hands to the store
type ItemInput struct {
	Product          domain.ProductRef
	Quantity         int
	Price            decimal.Decimal
	SelectedSize     domain.Size
	SelectedInterior domain.Interior
	SelectedCover    domain.Cover
	SelectedModel    string
	Personalization  string
}

// Item is one configured product held by the store
type Item struct {
	Key              string            `json:"key"`
	Product          domain.ProductRef `json:"product"`
	Quantity         int               `json:"quantity"`
	Price            decimal.Decimal   `json:"price"`
	SelectedSize     domain.Size       `json:"selected_size,omitempty"`
	SelectedInterior domain.Interior   `json:"selected_interior,omitempty"`
	SelectedCover    domain.Cover      `json:"selected_cover,omitempty"`
	SelectedModel    string            `json:"selected_model,omitempty"`
	Personalization  string            `json:"personalization,omitempty"`
}

// Subtotal is price times quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// keyNamespace scopes the name-based UUIDs used as entry keys
var keyNamespace = uuid.MustParse("3f1c9a52-7e0b-4c55-9a0e-5d6b8e2f4a17")

// Key identifies an entry by product and every configured option, so two
// configurations of the same product never share an entry. The result is a
// name-based UUID so it can travel in URLs.
func Key(in ItemInput) string {
	parts := []string{
		in.Product.ID,
		string(in.SelectedSize),
		string(in.SelectedInterior),
		string(in.SelectedCover),
		in.SelectedModel,
		in.Personalization,
	}
	for i, p := range parts {
		parts[i] = escapeKeyPart(p)
	}
	return uuid.NewSHA1(keyNamespace, []byte(strings.Join(parts, "|"))).String()
}

func escapeKeyPart(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}

// Store is the cart of one session. The zero value is not usable; call NewStore.
type Store struct {
	mu     sync.Mutex
	limits Limits
	items  []Item
}

// NewStore creates an empty cart
func NewStore(limits Limits) *Store {
	return &Store{limits: limits}
}

// AddItem appends a new entry or, when an entry with the same key exists,
// adds the quantity to it. The merged entry keeps its price snapshot and position.
func (s *Store) AddItem(in ItemInput) (Item, error) {
	if in.Product.ID == "" {
		return Item{}, &errors.ErrInvalidInput{Field: "product", Message: "product id is required"}
	}
	if in.Price.IsNegative() {
		return Item{}, &errors.ErrInvalidInput{Field: "price", Message: "price must not be negative"}
	}

	key := Key(in)
	qty := s.limits.ClampQuantity(in.Quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items[i].Quantity = s.limits.ClampQuantity(s.items[i].Quantity + qty)
			return s.items[i], nil
		}
	}

	item := Item{
		Key:              key,
		Product:          in.Product,
		Quantity:         qty,
		Price:            in.Price,
		SelectedSize:     in.SelectedSize,
		SelectedInterior: in.SelectedInterior,
		SelectedCover:    in.SelectedCover,
		SelectedModel:    in.SelectedModel,
		Personalization:  in.Personalization,
	}
	s.items = append(s.items, item)
	return item, nil
}

// RemoveItem deletes the entry with the given key; unknown keys are ignored
func (s *Store) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an entry, clamped into [1, MaxQuantity].
// It reports false when no entry has the key.
func (s *Store) UpdateQuantity(key string, quantity int) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items[i].Quantity = s.limits.ClampQuantity(quantity)
			return s.items[i], true
		}
	}
	return Item{}, false
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Discard takes entries sent elsewhere out of the cart. Each sent entry's
// quantity is subtracted from the entry with the same key; entries that reach
// zero are removed. Entries added after the snapshot was taken stay.
func (s *Store) Discard(sent []Item) {
	if len(sent) == 0 {
		return
	}
	taken := make(map[string]int, len(sent))
	for _, item := range sent {
		taken[item.Key] += item.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if q, ok := taken[item.Key]; ok {
			item.Quantity -= q
			if item.Quantity <= 0 {
				continue
			}
		}
		kept = append(kept, item)
	}
	s.items = kept
}

// TotalPrice sums price times quantity over every entry
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.items)
}

// Items returns a copy of the entries in insertion order
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot returns the entries and their total under one lock
func (s *Store) Snapshot() ([]Item, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, totalOf(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// TotalOf sums the subtotals of items
func TotalOf(items []Item) decimal.Decimal {
	return totalOf(items)
}

func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
