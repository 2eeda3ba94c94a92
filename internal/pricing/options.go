package pricing

// SizeOption describes a print size and the factor it applies to the base
// price and to every size-dependent surcharge.
type SizeOption struct {
	Value      string  `json:"value"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// FrameOption describes a frame choice with a flat surcharge. The "none"
// sentinel carries surcharge 0.
type FrameOption struct {
	Value  string  `json:"value"`
	Label  string  `json:"label"`
	Price  float64 `json:"price"`
	Swatch string  `json:"swatch,omitempty"`
}

// GlassOption describes a glazing choice with a flat surcharge.
type GlassOption struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// SizeOptions is the size catalog ordered by physical area.
var SizeOptions = []SizeOption{
	{Value: "21x30", Label: "21x30 cm (A4)", Multiplier: 1.0},
	{Value: "30x40", Label: "30x40 cm", Multiplier: 1.3},
	{Value: "40x50", Label: "40x50 cm", Multiplier: 1.6},
	{Value: "50x70", Label: "50x70 cm", Multiplier: 2.0},
	{Value: "70x100", Label: "70x100 cm", Multiplier: 3.0},
}

// FrameOptions is the frame catalog.
var FrameOptions = []FrameOption{
	{Value: "none", Label: "Çerçevesiz", Price: 0},
	{Value: "black", Label: "Siyah", Price: 80, Swatch: "#171717"},
	{Value: "white", Label: "Beyaz", Price: 80, Swatch: "#fafafa"},
	{Value: "natural", Label: "Doğal Ahşap", Price: 100, Swatch: "#d4a373"},
	{Value: "walnut", Label: "Ceviz", Price: 150, Swatch: "#5c4033"},
}

// GlassOptions is the glazing catalog.
var GlassOptions = []GlassOption{
	{Value: "none", Label: "Camsız", Price: 0},
	{Value: "standard", Label: "Standart Cam", Price: 40},
	{Value: "anti-reflective", Label: "Yansıma Önleyici", Price: 100},
	{Value: "acrylic", Label: "Akrilik", Price: 80},
}

// PassepartoutOptions enumerates the mat board colours. Passepartout is
// cosmetic only and contributes no cost.
var PassepartoutOptions = []string{"none", "white", "black", "cream"}

func sizeMultiplier(value string) (float64, bool) {
	for _, s := range SizeOptions {
		if s.Value == value {
			return s.Multiplier, true
		}
	}
	return 1, false
}

func frameSurcharge(value string) (float64, bool) {
	for _, f := range FrameOptions {
		if f.Value == value {
			return f.Price, true
		}
	}
	return 0, false
}

func glassSurcharge(value string) (float64, bool) {
	for _, g := range GlassOptions {
		if g.Value == value {
			return g.Price, true
		}
	}
	return 0, false
}

func sizeLabel(value string) string {
	for _, s := range SizeOptions {
		if s.Value == value {
			return s.Label
		}
	}
	return value
}

func frameLabel(value string) string {
	for _, f := range FrameOptions {
		if f.Value == value {
			return f.Label
		}
	}
	return value
}

func glassLabel(value string) string {
	for _, g := range GlassOptions {
		if g.Value == value {
			return g.Label
		}
	}
	return value
}

// ValidPassepartout reports whether the value is a known mat board colour.
func ValidPassepartout(value string) bool {
	for _, p := range PassepartoutOptions {
		if p == value {
			return true
		}
	}
	return false
}
