package pricing

import "math"

// FallbackObserver is invoked whenever an unknown option identifier is
// absorbed by the neutral-value fallback. Option catalogs evolve
// independently of historical cart and order records, so unknown keys are
// tolerated rather than rejected; the hook makes that policy observable.
type FallbackObserver func(field, value string)

var fallbackObserver FallbackObserver

// SetFallbackObserver installs the process-wide fallback hook. Pass nil to
// disable observation.
func SetFallbackObserver(fn FallbackObserver) {
	fallbackObserver = fn
}

func observeFallback(field, value string) {
	if fallbackObserver != nil {
		fallbackObserver(field, value)
	}
}

// Quote computes the display price for a variant selection.
//
// Frame and glass surcharges scale with the size multiplier because larger
// prints need proportionally more material. The result is rounded up to the
// nearest whole currency unit so rounding never under-charges.
func Quote(basePrice float64, size, frame, glass string) int64 {
	mult, ok := sizeMultiplier(size)
	if !ok {
		observeFallback("size", size)
	}
	frameCost, ok := frameSurcharge(frame)
	if !ok {
		observeFallback("frame", frame)
	}
	glassCost, ok := glassSurcharge(glass)
	if !ok {
		observeFallback("glass", glass)
	}
	return int64(math.Ceil(basePrice*mult + frameCost*mult + glassCost*mult))
}
