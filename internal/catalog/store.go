package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

//go:embed seed.json
var seedJSON []byte

// Store is the immutable in-memory catalog. It is built once at startup and
// shared read-only by every consumer; nothing mutates it afterwards.
type Store struct {
	products   []Product
	byID       map[int64]*Product
	categories []Category
	suppliers  []Supplier
	company    Company
}

type seedFile struct {
	Company    Company    `json:"company"`
	Categories []Category `json:"categories"`
	Suppliers  []Supplier `json:"suppliers"`
	Products   []Product  `json:"products"`
}

// NewStoreFromSeed builds the catalog from the embedded seed data.
func NewStoreFromSeed(logger zerolog.Logger) (*Store, error) {
	return NewStore(seedJSON, logger)
}

// NewStore builds the catalog from raw seed JSON. Tier lists are kept in
// source order; the resolver sorts defensively on every call, but malformed
// tiers (a price that rises with quantity) are logged at ingest so bad seed
// data surfaces early without changing resolver semantics.
func NewStore(raw []byte, logger zerolog.Logger) (*Store, error) {
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(seed.Products) == 0 {
		return nil, errors.New("catalog seed contains no products")
	}

	s := &Store{
		products:   seed.Products,
		byID:       make(map[int64]*Product, len(seed.Products)),
		categories: seed.Categories,
		suppliers:  seed.Suppliers,
		company:    seed.Company,
	}
	for i := range s.products {
		p := &s.products[i]
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d in seed", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %d has negative stock", p.ID)
		}
		s.byID[p.ID] = p
		warnNonMonotonicTiers(logger, p)
	}

	countByCategory := make(map[string]int)
	countBySupplier := make(map[string]int)
	for _, p := range s.products {
		if p.Status != StatusActive {
			continue
		}
		countByCategory[p.Category]++
		countBySupplier[p.Supplier]++
	}
	for i := range s.categories {
		s.categories[i].Count = countByCategory[s.categories[i].ID]
	}
	for i := range s.suppliers {
		s.suppliers[i].Products = countBySupplier[s.suppliers[i].ID]
	}
	return s, nil
}

// Products returns all products in seed order, every status included.
func (s *Store) Products() []Product {
	return append([]Product(nil), s.products...)
}

// ProductByID looks up a product. The bool reports whether it exists.
func (s *Store) ProductByID(id int64) (Product, bool) {
	p, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// Categories returns the category list with active-product counts.
func (s *Store) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

// Suppliers returns the supplier list with active-product counts.
func (s *Store) Suppliers() []Supplier {
	return append([]Supplier(nil), s.suppliers...)
}

// Company returns the seller identity used on quotes.
func (s *Store) Company() Company {
	return s.company
}

// Len reports the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}

func warnNonMonotonicTiers(logger zerolog.Logger, p *Product) {
	var prevQty int
	var prevPrice int64
	for i, tier := range p.PriceBreaks {
		if tier.MinQty <= 0 {
			logger.Warn().Int64("product_id", p.ID).Int("tier", i).
				Msg("price break has non-positive minimum quantity")
		}
		if tier.Price > p.BasePrice {
			logger.Warn().Int64("product_id", p.ID).Int("tier", i).
				Msg("price break exceeds base price")
		}
		if i > 0 && tier.MinQty > prevQty && tier.Price > prevPrice {
			logger.Warn().Int64("product_id", p.ID).Int("tier", i).
				Msg("price break price rises with quantity")
		}
		prevQty = tier.MinQty
		prevPrice = tier.Price
	}
}
