package cart

import (
	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

// PricedLine pairs a cart line with its resolved product.
type PricedLine struct {
	Line
	Product catalog.Product
}

// Totals is the aggregate over a cart. Subtotal ignores tiers entirely;
// Total applies each line's tier price, including the floor fallback for
// quantities below the smallest threshold.
type Totals struct {
	Subtotal money.Money `json:"subtotal"`
	Total    money.Money `json:"total"`
	Units    int         `json:"units"`
}

// Aggregate reduces priced lines to cart totals. It is a pure function of
// its input; lines with non-positive quantity are clamped like everywhere
// else at the boundary.
func Aggregate(lines []PricedLine) Totals {
	var totals Totals
	for _, line := range lines {
		qty := pricing.ClampQuantity(line.Quantity)
		res := pricing.Resolve(line.Product.BasePrice, line.Product.PriceBreaks, qty)
		totals.Subtotal += res.Subtotal
		totals.Total += res.UnitPrice * money.Money(qty)
		totals.Units += qty
	}
	return totals
}
