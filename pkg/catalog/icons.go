package catalog

// productIcons maps known product names to their dashboard icon.
var productIcons = map[string]string{
	"Pay & Markets":   "banknote",
	"Assess":          "clipboard-check",
	"KF Architect":    "drafting-compass",
	"Profile Manager": "id-card",
	"Pay Equity":      "scale",
	"KF Assess":       "clipboard-list",
	"KF Pay":          "wallet",
	"Tableau":         "bar-chart",
	"Listen":          "ear",
}

// iconPalette is the fallback palette for custom product names.
var iconPalette = []string{
	"box",
	"layers",
	"puzzle",
	"rocket",
	"shield",
	"sparkles",
	"target",
	"zap",
}

// IconFor returns the icon name for a product. Known products get their fixed
// icon; custom names are hashed onto the fallback palette so the same name
// always gets the same icon across runs.
func IconFor(product string) string {
	if icon, ok := productIcons[product]; ok {
		return icon
	}
	return iconPalette[paletteIndex(product)]
}

// paletteIndex hashes a name with the polynomial h = c + (h<<5) - h over its
// UTF-16 code units, in 32-bit arithmetic.
func paletteIndex(name string) int {
	var h int32
	for _, c := range utf16Units(name) {
		h = int32(c) + (h << 5) - h
	}
	if h < 0 {
		h = -h
	}
	return int(h) % len(iconPalette)
}

func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r < 0x10000 {
			units = append(units, uint16(r))
			continue
		}
		r -= 0x10000
		units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	return units
}
