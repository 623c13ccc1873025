package pricing

import (
	"sort"

	"github.com/promolab-cl/backend-promolab/internal/money"
)

// PriceBreak is a volume tier: buying at least MinQty units gets the tier's
// unit price. Discount, when set, is the advertised percentage and wins over
// the computed ratio; absent and zero are distinct states.
type PriceBreak struct {
	MinQty   int         `json:"minQty"`
	Price    money.Money `json:"price"`
	Discount *float64    `json:"discount,omitempty"`
}

// Resolution is the outcome of resolving a quantity against a tier list.
type Resolution struct {
	UnitPrice       money.Money
	DiscountPercent float64
	Subtotal        money.Money
	Total           money.Money
	// TierIndex is the index of the applicable tier in the sorted tier list,
	// or -1 when the product has no tiers.
	TierIndex int
}

// SortBreaks returns a copy of the tier list ordered ascending by MinQty.
// The sort is stable so equal thresholds keep their source order.
func SortBreaks(breaks []PriceBreak) []PriceBreak {
	sorted := append([]PriceBreak(nil), breaks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinQty < sorted[j].MinQty })
	return sorted
}

// Resolve maps a requested quantity to the applicable price tier.
//
// Tier lists are re-sorted defensively, so source order never changes the
// outcome. The tier with the greatest MinQty not exceeding qty applies; a
// quantity below every threshold still gets the smallest tier (the floor
// fallback policy). With no tiers the base
// price applies and the discount is zero.
//
// qty must already be clamped to >= 1 by the caller; Resolve is pure.
func Resolve(basePrice money.Money, breaks []PriceBreak, qty int) Resolution {
	res := Resolution{
		UnitPrice: basePrice,
		Subtotal:  basePrice * money.Money(qty),
		TierIndex: -1,
	}
	if len(breaks) == 0 {
		res.Total = res.Subtotal
		return res
	}

	sorted := SortBreaks(breaks)
	applicable := sorted[0]
	res.TierIndex = 0
	for i, tier := range sorted {
		if qty >= tier.MinQty {
			applicable = tier
			res.TierIndex = i
		}
	}

	res.UnitPrice = applicable.Price
	res.Total = applicable.Price * money.Money(qty)
	res.DiscountPercent = discountPercent(basePrice, applicable)
	return res
}

// ClampQuantity coerces arbitrary requested quantities to the minimum of 1.
// Boundary layers use this before calling Resolve.
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

func discountPercent(basePrice money.Money, tier PriceBreak) float64 {
	if tier.Discount != nil {
		return *tier.Discount
	}
	if basePrice == 0 {
		// A zero base price would make the ratio undefined.
		return 0
	}
	return float64(basePrice-tier.Price) / float64(basePrice) * 100
}
