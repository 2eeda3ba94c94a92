package pricing

// FreeShippingThreshold is the subtotal above which shipping is free.
const FreeShippingThreshold = 500.0

// FlatShippingFee is charged when the subtotal does not exceed the threshold.
// Per-item prices round up to whole currency units while the fee stays
// fractional; both are kept as-is for compatibility with existing orders.
const FlatShippingFee = 49.90

// LineItem is the minimal shape needed to aggregate order totals.
type LineItem struct {
	Price    float64
	Quantity int
}

// Summary holds the computed order totals.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shippingCost"`
	Total    float64 `json:"total"`
}

// Totals aggregates line items into subtotal, shipping cost, and total.
// The server recomputes this from submitted items at order creation instead
// of trusting a client-supplied total.
func Totals(items []LineItem) Summary {
	var subtotal float64
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		subtotal += it.Price * float64(it.Quantity)
	}
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
