package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alaminute/backend-prints/internal/pricing"
)

func TestQuoteKnownCombination(t *testing.T) {
	// basePrice 299, 40x50 (×1.6), black frame (80), standard glass (40)
	// = ceil(478.4 + 128 + 64) = ceil(670.4) = 671
	got := pricing.Quote(299, "40x50", "black", "standard")
	require.Equal(t, int64(671), got)
}

func TestQuoteBareConfiguration(t *testing.T) {
	got := pricing.Quote(299, "21x30", "none", "none")
	require.Equal(t, int64(299), got)
}

func TestQuoteUnknownOptionsFallBackToNeutral(t *testing.T) {
	var seen []string
	pricing.SetFallbackObserver(func(field, value string) {
		seen = append(seen, field+"="+value)
	})
	defer pricing.SetFallbackObserver(nil)

	got := pricing.Quote(299, "99x99", "chrome", "bulletproof")
	require.Equal(t, pricing.Quote(299, "21x30", "none", "none"), got)
	require.ElementsMatch(t, []string{"size=99x99", "frame=chrome", "glass=bulletproof"}, seen)
}

func TestQuoteMonotonicInSize(t *testing.T) {
	var prev int64
	for _, size := range pricing.SizeOptions {
		price := pricing.Quote(250, size.Value, "walnut", "acrylic")
		require.GreaterOrEqual(t, price, prev, "size %s", size.Value)
		prev = price
	}
}

func TestQuoteMonotonicInSurcharges(t *testing.T) {
	base := pricing.Quote(120, "30x40", "none", "none")
	for _, frame := range pricing.FrameOptions {
		for _, glass := range pricing.GlassOptions {
			price := pricing.Quote(120, "30x40", frame.Value, glass.Value)
			require.GreaterOrEqual(t, price, base, "frame=%s glass=%s", frame.Value, glass.Value)
		}
	}
}

func TestQuoteNeverBelowScaledBase(t *testing.T) {
	// ceil(199 × 1.3) = 259 is the floor for any 30x40 variant.
	for _, frame := range pricing.FrameOptions {
		price := pricing.Quote(199, "30x40", frame.Value, "standard")
		require.GreaterOrEqual(t, price, int64(259))
	}
}
