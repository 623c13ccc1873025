package cart

import (
	"context"
	"net/http"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/common"
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

// LineView is a cart line enriched for display.
type LineView struct {
	ProductID       int64       `json:"productId"`
	Name            string      `json:"name"`
	SKU             string      `json:"sku"`
	Quantity        int         `json:"quantity"`
	BasePrice       money.Money `json:"basePrice"`
	UnitPrice       money.Money `json:"unitPrice"`
	DiscountPercent float64     `json:"discountPercent"`
	LineSubtotal    money.Money `json:"lineSubtotal"`
	LineTotal       money.Money `json:"lineTotal"`
}

// View is the cart payload served to clients.
type View struct {
	ID       string      `json:"id"`
	Lines    []LineView  `json:"lines"`
	Subtotal money.Money `json:"subtotal"`
	Total    money.Money `json:"total"`
	Units    int         `json:"units"`
	Currency string      `json:"currency"`
}

// Service coordinates the cart store with catalog pricing.
type Service struct {
	store    *Store
	catalog  *catalog.Service
	currency string
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store    *Store
	Catalog  *catalog.Service
	Currency string
}

// NewService constructs a cart Service.
func NewService(cfg ServiceConfig) *Service {
	currency := cfg.Currency
	if currency == "" {
		currency = "CLP"
	}
	return &Service{store: cfg.Store, catalog: cfg.Catalog, currency: currency}
}

// Create opens a fresh empty cart.
func (s *Service) Create(ctx context.Context) (View, error) {
	return s.view(ctx, s.store.Create())
}

// Get returns the cart with resolved line pricing and totals.
func (s *Service) Get(ctx context.Context, id string) (View, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return View{}, cartNotFound()
	}
	return s.view(ctx, c)
}

// AddItem appends a line. The product must exist; quantity is clamped.
func (s *Service) AddItem(ctx context.Context, id string, productID int64, quantity int) (View, error) {
	if _, err := s.catalog.GetProductDetail(ctx, productID); err != nil {
		return View{}, err
	}
	c, ok := s.store.AddLine(id, Line{ProductID: productID, Quantity: pricing.ClampQuantity(quantity)})
	if !ok {
		return View{}, cartNotFound()
	}
	return s.view(ctx, c)
}

// RemoveItem drops every line for the product.
func (s *Service) RemoveItem(ctx context.Context, id string, productID int64) (View, error) {
	c, ok := s.store.RemoveLines(id, productID)
	if !ok {
		return View{}, cartNotFound()
	}
	return s.view(ctx, c)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, id string) (View, error) {
	c, ok := s.store.Clear(id)
	if !ok {
		return View{}, cartNotFound()
	}
	return s.view(ctx, c)
}

// Priced resolves the cart's lines against the catalog. Lines whose product
// has vanished from the catalog are skipped rather than failing the cart.
func (s *Service) Priced(ctx context.Context, c Cart) []PricedLine {
	priced := make([]PricedLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		detail, err := s.catalog.GetProductDetail(ctx, line.ProductID)
		if err != nil {
			continue
		}
		priced = append(priced, PricedLine{Line: line, Product: detail.Product})
	}
	return priced
}

func (s *Service) view(ctx context.Context, c Cart) (View, error) {
	priced := s.Priced(ctx, c)
	totals := Aggregate(priced)

	lines := make([]LineView, 0, len(priced))
	for _, pl := range priced {
		qty := pricing.ClampQuantity(pl.Quantity)
		res := pricing.Resolve(pl.Product.BasePrice, pl.Product.PriceBreaks, qty)
		lines = append(lines, LineView{
			ProductID:       pl.ProductID,
			Name:            pl.Product.Name,
			SKU:             pl.Product.SKU,
			Quantity:        qty,
			BasePrice:       pl.Product.BasePrice,
			UnitPrice:       res.UnitPrice,
			DiscountPercent: res.DiscountPercent,
			LineSubtotal:    res.Subtotal,
			LineTotal:       res.UnitPrice * money.Money(qty),
		})
	}

	return View{
		ID:       c.ID,
		Lines:    lines,
		Subtotal: totals.Subtotal,
		Total:    totals.Total,
		Units:    totals.Units,
		Currency: s.currency,
	}, nil
}

func cartNotFound() *common.AppError {
	return &common.AppError{
		Code:       "CART_NOT_FOUND",
		Message:    "cart not found or expired",
		HTTPStatus: http.StatusNotFound,
	}
}
