package pricing

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderNoPrefix is the shop prefix carried by every order number.
const OrderNoPrefix = "ALM"

// SKU derives the stock-keeping unit for a variant selection. The same
// configuration always yields the same SKU; the cart relies on that to merge
// duplicate additions.
func SKU(productSlug, size, frame, glass string) string {
	sizeCode := strings.ReplaceAll(size, "x", "")
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s-%s", productSlug, sizeCode, prefix3(frame), prefix3(glass)))
}

// VariantLabel renders a human-readable "size / frame / glass" label using
// catalog labels, falling back to the raw identifier when an option is not
// in the catalog.
func VariantLabel(size, frame, glass string) string {
	return fmt.Sprintf("%s / %s / %s", sizeLabel(size), frameLabel(frame), glassLabel(glass))
}

// OrderNo generates a candidate order number of the form ALM-{year}-{5 digits}.
// The randomised suffix does not guarantee uniqueness; the order repository
// enforces a unique index and callers retry on collision.
func OrderNo() string {
	return fmt.Sprintf("%s-%d-%05d", OrderNoPrefix, time.Now().Year(), rand.IntN(100000))
}

// NewCartItemID mints an opaque token identifying a cart row. It is distinct
// from the SKU: identical configurations merge by SKU, the token only keeps
// rows apart for the UI.
func NewCartItemID() string {
	return uuid.NewString()
}

// prefix3 truncates to three characters, not bytes, so option values with
// multibyte runs stay valid UTF-8 inside the SKU.
func prefix3(value string) string {
	runes := []rune(value)
	if len(runes) <= 3 {
		return value
	}
	return string(runes[:3])
}
