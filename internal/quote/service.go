package quote

import (
	"context"
	"net/http"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/common"
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

// Input selects what to quote. Exactly one of Quantity or TierIndex is
// expected; when both are present the tier index wins because it expresses
// a more specific intent (clicking a tier row).
type Input struct {
	Quantity  *int `json:"quantity,omitempty"`
	TierIndex *int `json:"tierIndex,omitempty"`
}

// TierView is a price tier annotated for display. Active marks the tier the
// current quantity resolves to; Selected marks the tier the caller clicked.
// The two can differ and neither gates the calculation.
type TierView struct {
	MinQty   int         `json:"minQty"`
	Price    money.Money `json:"price"`
	Discount *float64    `json:"discount,omitempty"`
	Active   bool        `json:"active"`
	Selected bool        `json:"selected"`
}

// View is the full quote payload for one product and quantity.
type View struct {
	ProductID       int64       `json:"productId"`
	ProductName     string      `json:"productName"`
	SKU             string      `json:"sku"`
	Quantity        int         `json:"quantity"`
	UnitPrice       money.Money `json:"unitPrice"`
	DiscountPercent float64     `json:"discountPercent"`
	Subtotal        money.Money `json:"subtotal"`
	Total           money.Money `json:"total"`
	Currency        string      `json:"currency"`
	Tiers           []TierView  `json:"tiers,omitempty"`
}

// Service computes quotes against the catalog.
type Service struct {
	catalog   *catalog.Service
	formatter *money.Formatter
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Catalog   *catalog.Service
	Formatter *money.Formatter
}

// NewService constructs a quote Service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{catalog: cfg.Catalog, formatter: cfg.Formatter}
}

// Quote resolves a quote for the given product. A tier index jumps the
// quantity to that tier's minimum; a free quantity is clamped to at least 1.
// The emitted total is always unitPrice times quantity.
func (s *Service) Quote(ctx context.Context, productID int64, input Input) (View, error) {
	detail, err := s.catalog.GetProductDetail(ctx, productID)
	if err != nil {
		return View{}, err
	}
	return Build(detail.Product, input, s.formatter.Currency()), nil
}

// Build computes the quote view from a product. It is pure so the PDF
// renderer and the cart aggregator can share it without a service.
func Build(p catalog.Product, input Input, currency string) View {
	sorted := pricing.SortBreaks(p.PriceBreaks)

	qty := 1
	if input.Quantity != nil {
		qty = pricing.ClampQuantity(*input.Quantity)
	}
	selected := -1
	if input.TierIndex != nil && *input.TierIndex >= 0 && *input.TierIndex < len(sorted) {
		selected = *input.TierIndex
		qty = pricing.ClampQuantity(sorted[selected].MinQty)
	}

	res := pricing.Resolve(p.BasePrice, p.PriceBreaks, qty)

	tiers := make([]TierView, 0, len(sorted))
	for i, tier := range sorted {
		tiers = append(tiers, TierView{
			MinQty:   tier.MinQty,
			Price:    tier.Price,
			Discount: tier.Discount,
			Active:   i == res.TierIndex,
			Selected: i == selected,
		})
	}

	return View{
		ProductID:       p.ID,
		ProductName:     p.Name,
		SKU:             p.SKU,
		Quantity:        qty,
		UnitPrice:       res.UnitPrice,
		DiscountPercent: res.DiscountPercent,
		Subtotal:        res.Subtotal,
		Total:           res.UnitPrice * money.Money(qty),
		Currency:        currency,
		Tiers:           tiers,
	}
}

// Document gathers everything the PDF export needs for one quote.
func (s *Service) Document(ctx context.Context, productID int64, qty int) (View, catalog.Product, catalog.Company, error) {
	detail, err := s.catalog.GetProductDetail(ctx, productID)
	if err != nil {
		return View{}, catalog.Product{}, catalog.Company{}, err
	}
	q := qty
	view := Build(detail.Product, Input{Quantity: &q}, s.formatter.Currency())
	return view, detail.Product, s.catalog.Company(), nil
}

func invalidBody(msg string, err error) *common.AppError {
	return &common.AppError{
		Code:       "BAD_REQUEST",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}
