package pricing_test

import (
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/alaminute/backend-prints/internal/pricing"
)

func TestSKU(t *testing.T) {
	got := pricing.SKU("mountain-mist", "40x50", "black", "standard")
	require.Equal(t, "MOUNTAIN-MIST-4050-BLA-STA", got)
}

func TestSKUIdempotent(t *testing.T) {
	first := pricing.SKU("poster", "70x100", "anti-reflective", "none")
	second := pricing.SKU("poster", "70x100", "anti-reflective", "none")
	require.Equal(t, first, second)
}

func TestSKUShortOptionValues(t *testing.T) {
	require.Equal(t, "P-2130-NO-ANT", pricing.SKU("p", "21x30", "no", "anti-reflective"))
}

func TestSKUMultibyteOptionValues(t *testing.T) {
	got := pricing.SKU("poster", "30x40", "çerçeve", "şeffaf")
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "POSTER-3040-ÇER-ŞEF", got)
}

func TestVariantLabel(t *testing.T) {
	got := pricing.VariantLabel("40x50", "black", "standard")
	require.Equal(t, "40x50 cm / Siyah / Standart Cam", got)
}

func TestVariantLabelUnknownFallsBackToRawValue(t *testing.T) {
	got := pricing.VariantLabel("40x50", "chrome", "none")
	require.Equal(t, "40x50 cm / chrome / Camsız", got)
}

func TestOrderNoShape(t *testing.T) {
	pattern := regexp.MustCompile(`^ALM-\d{4}-\d{5}$`)
	for i := 0; i < 50; i++ {
		no := pricing.OrderNo()
		require.Regexp(t, pattern, no)
	}
}

func TestNewCartItemIDUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := pricing.NewCartItemID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
