package quote_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
	"github.com/promolab-cl/backend-promolab/internal/quote"
)

func tieredProduct() catalog.Product {
	disc := 25.0
	return catalog.Product{
		ID:        1,
		Name:      "Polera Piqué",
		SKU:       "TEX-001",
		BasePrice: 1000,
		Stock:     500,
		PriceBreaks: []pricing.PriceBreak{
			{MinQty: 10, Price: 900},
			{MinQty: 50, Price: 800, Discount: &disc},
		},
	}
}

func intp(v int) *int { return &v }

func TestBuildQuantityInput(t *testing.T) {
	view := quote.Build(tieredProduct(), quote.Input{Quantity: intp(10)}, "CLP")

	require.Equal(t, 10, view.Quantity)
	require.Equal(t, int64(900), view.UnitPrice)
	require.Equal(t, int64(10000), view.Subtotal)
	require.Equal(t, int64(9000), view.Total)
	require.InDelta(t, 10.0, view.DiscountPercent, 0.001)
	require.Equal(t, "CLP", view.Currency)

	require.Len(t, view.Tiers, 2)
	require.True(t, view.Tiers[0].Active)
	require.False(t, view.Tiers[1].Active)
	require.False(t, view.Tiers[0].Selected)
}

func TestBuildTierIndexJumpsQuantity(t *testing.T) {
	view := quote.Build(tieredProduct(), quote.Input{TierIndex: intp(1)}, "CLP")

	require.Equal(t, 50, view.Quantity)
	require.Equal(t, int64(800), view.UnitPrice)
	require.Equal(t, int64(40000), view.Total)
	require.InDelta(t, 25.0, view.DiscountPercent, 0.001)
	require.True(t, view.Tiers[1].Selected)
	require.True(t, view.Tiers[1].Active)
}

func TestBuildTierIndexWinsOverQuantity(t *testing.T) {
	view := quote.Build(tieredProduct(), quote.Input{Quantity: intp(200), TierIndex: intp(0)}, "CLP")
	require.Equal(t, 10, view.Quantity)
	require.Equal(t, int64(900), view.UnitPrice)
}

func TestBuildOutOfRangeTierIndexIsIgnored(t *testing.T) {
	view := quote.Build(tieredProduct(), quote.Input{Quantity: intp(50), TierIndex: intp(9)}, "CLP")
	require.Equal(t, 50, view.Quantity)
	for _, tier := range view.Tiers {
		require.False(t, tier.Selected)
	}

	view = quote.Build(tieredProduct(), quote.Input{TierIndex: intp(-1)}, "CLP")
	require.Equal(t, 1, view.Quantity)
}

func TestBuildClampsGarbageQuantity(t *testing.T) {
	view := quote.Build(tieredProduct(), quote.Input{Quantity: intp(-5)}, "CLP")
	require.Equal(t, 1, view.Quantity)

	// Below every threshold the smallest tier still applies.
	require.Equal(t, int64(900), view.UnitPrice)
	require.Equal(t, int64(900), view.Total)
	require.Equal(t, int64(1000), view.Subtotal)
}

func TestBuildTotalFollowsQuantityNotSubtotal(t *testing.T) {
	view := quote.Build(tieredProduct(), quote.Input{Quantity: intp(60)}, "CLP")
	require.Equal(t, int64(800)*60, view.Total)
	require.Equal(t, int64(1000)*60, view.Subtotal)
	require.NotEqual(t, view.Subtotal, view.Total)
}

func TestBuildWithoutTiers(t *testing.T) {
	p := catalog.Product{ID: 5, Name: "Botella", BasePrice: 3490}
	view := quote.Build(p, quote.Input{Quantity: intp(7)}, "CLP")

	require.Empty(t, view.Tiers)
	require.Equal(t, int64(3490), view.UnitPrice)
	require.Equal(t, int64(3490)*7, view.Total)
	require.Zero(t, view.DiscountPercent)
}
