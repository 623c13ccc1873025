package catalog

import (
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

// Status is a product lifecycle state.
type Status string

// Lifecycle states a product can be in. Only active products are listed;
// pending products are hidden from listings but still resolvable by id.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Product is a catalog entity. The catalog is constructed once at startup
// from seed data and is immutable for the lifetime of the process.
type Product struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	SKU         string               `json:"sku"`
	Category    string               `json:"category"`
	Supplier    string               `json:"supplier"`
	Status      Status               `json:"status"`
	BasePrice   money.Money          `json:"basePrice"`
	Stock       int                  `json:"stock"`
	Description string               `json:"description,omitempty"`
	Image       string               `json:"image,omitempty"`
	Colors      []string             `json:"colors,omitempty"`
	Sizes       []string             `json:"sizes,omitempty"`
	Features    []string             `json:"features,omitempty"`
	MinQuantity *int                 `json:"minQuantity,omitempty"`
	MaxQuantity *int                 `json:"maxQuantity,omitempty"`
	PriceBreaks []pricing.PriceBreak `json:"priceBreaks,omitempty"`
}

// Category groups products for filtering.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Count int    `json:"count"`
}

// Supplier identifies the vendor a product is sourced from.
type Supplier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Products int    `json:"products"`
}

// Company is the seller identity stamped on quotes and PDF exports.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"taxId"`
}
