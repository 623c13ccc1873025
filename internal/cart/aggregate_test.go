package cart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/cart"
	"github.com/promolab-cl/backend-promolab/internal/catalog"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

func TestAggregateEmpty(t *testing.T) {
	totals := cart.Aggregate(nil)
	require.Zero(t, totals.Subtotal)
	require.Zero(t, totals.Total)
	require.Zero(t, totals.Units)
}

func TestAggregateMixedCart(t *testing.T) {
	disc := 25.0
	plain := catalog.Product{ID: 1, BasePrice: 500}
	tiered := catalog.Product{
		ID:        2,
		BasePrice: 1000,
		PriceBreaks: []pricing.PriceBreak{
			{MinQty: 10, Price: 900},
			{MinQty: 50, Price: 800, Discount: &disc},
		},
	}

	totals := cart.Aggregate([]cart.PricedLine{
		{Line: cart.Line{ProductID: 1, Quantity: 2}, Product: plain},
		{Line: cart.Line{ProductID: 2, Quantity: 50}, Product: tiered},
	})

	// Subtotal counts base prices only; total applies the 800 tier.
	require.Equal(t, int64(500*2+1000*50), totals.Subtotal)
	require.Equal(t, int64(500*2+800*50), totals.Total)
	require.Equal(t, 52, totals.Units)
}

func TestAggregateFloorFallbackPerLine(t *testing.T) {
	tiered := catalog.Product{
		ID:          2,
		BasePrice:   1000,
		PriceBreaks: []pricing.PriceBreak{{MinQty: 10, Price: 900}},
	}

	// Quantity 3 sits below every threshold yet still gets the smallest tier.
	totals := cart.Aggregate([]cart.PricedLine{
		{Line: cart.Line{ProductID: 2, Quantity: 3}, Product: tiered},
	})
	require.Equal(t, int64(3000), totals.Subtotal)
	require.Equal(t, int64(2700), totals.Total)
}

func TestAggregateClampsQuantity(t *testing.T) {
	plain := catalog.Product{ID: 1, BasePrice: 500}
	totals := cart.Aggregate([]cart.PricedLine{
		{Line: cart.Line{ProductID: 1, Quantity: -3}, Product: plain},
	})
	require.Equal(t, int64(500), totals.Subtotal)
	require.Equal(t, int64(500), totals.Total)
	require.Equal(t, 1, totals.Units)
}

func TestAggregateDuplicateLinesCountSeparately(t *testing.T) {
	plain := catalog.Product{ID: 1, BasePrice: 500}
	totals := cart.Aggregate([]cart.PricedLine{
		{Line: cart.Line{ProductID: 1, Quantity: 2}, Product: plain},
		{Line: cart.Line{ProductID: 1, Quantity: 3}, Product: plain},
	})
	require.Equal(t, int64(2500), totals.Subtotal)
	require.Equal(t, 5, totals.Units)
}
