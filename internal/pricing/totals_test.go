package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alaminute/backend-prints/internal/pricing"
)

func TestTotalsBelowThreshold(t *testing.T) {
	sum := pricing.Totals([]pricing.LineItem{
		{Price: 250, Quantity: 1},
		{Price: 100, Quantity: 1},
	})
	require.InDelta(t, 350.0, sum.Subtotal, 1e-9)
	require.InDelta(t, 49.90, sum.Shipping, 1e-9)
	require.InDelta(t, 399.90, sum.Total, 1e-9)
}

func TestTotalsThresholdBoundary(t *testing.T) {
	// exactly 500 still pays shipping; strictly above ships free
	atLimit := pricing.Totals([]pricing.LineItem{{Price: 500, Quantity: 1}})
	require.InDelta(t, pricing.FlatShippingFee, atLimit.Shipping, 1e-9)

	aboveLimit := pricing.Totals([]pricing.LineItem{{Price: 500.01, Quantity: 1}})
	require.Zero(t, aboveLimit.Shipping)
	require.InDelta(t, 500.01, aboveLimit.Total, 1e-9)
}

func TestTotalsQuantityWeighted(t *testing.T) {
	sum := pricing.Totals([]pricing.LineItem{{Price: 199, Quantity: 3}})
	require.InDelta(t, 597.0, sum.Subtotal, 1e-9)
	require.Zero(t, sum.Shipping)
	require.InDelta(t, sum.Subtotal+sum.Shipping, sum.Total, 1e-9)
}

func TestTotalsIgnoresNonPositiveQuantities(t *testing.T) {
	sum := pricing.Totals([]pricing.LineItem{
		{Price: 100, Quantity: 0},
		{Price: 100, Quantity: -2},
		{Price: 100, Quantity: 1},
	})
	require.InDelta(t, 100.0, sum.Subtotal, 1e-9)
}

func TestTotalsAlwaysConsistent(t *testing.T) {
	cases := [][]pricing.LineItem{
		nil,
		{{Price: 49.90, Quantity: 1}},
		{{Price: 671, Quantity: 2}, {Price: 299, Quantity: 1}},
	}
	for _, items := range cases {
		sum := pricing.Totals(items)
		require.InDelta(t, sum.Subtotal+sum.Shipping, sum.Total, 1e-9)
	}
}
