package theme

import (
	"image/color"
	"strconv"
	"strings"
)

// Palette defines the color scheme shared by the page and the rendered figures.
type Palette struct {
	// Background is the main page background color
	Background string
	// Card is the background for cards/panels
	Card string
	// CardBorder is the border for cards and chart gridlines
	CardBorder string
	// Text is the primary text color
	Text string
	// TextMuted is the secondary/muted text color (axis labels, captions)
	TextMuted string
	// Accent is the primary series color (wind)
	Accent string
	// AccentAlt is the secondary series color (temperature)
	AccentAlt string
	// Series holds one color per figure, indexed in render order
	Series []string
}

// DefaultPalette is the light dashboard theme.
var DefaultPalette = Palette{
	Background: "#F5F7FA",
	Card:       "#FFFFFF",
	CardBorder: "#E2E8F0",
	Text:       "#1E293B",
	TextMuted:  "#64748B",
	Accent:     "#2563EB",
	AccentAlt:  "#EA580C",
	Series: []string{
		"#2563EB", // vento
		"#EA580C", // temperatura
		"#0891B2", // umidade
		"#7C3AED", // pressão
		"#2563EB",
		"#EA580C",
		"#16A34A",
		"#0EA5E9",
	},
}

var palettes = map[string]Palette{
	"claro": DefaultPalette,

	"escuro": {
		Background: "#0F172A",
		Card:       "#1E293B",
		CardBorder: "#334155",
		Text:       "#F1F5F9",
		TextMuted:  "#94A3B8",
		Accent:     "#60A5FA",
		AccentAlt:  "#FB923C",
		Series: []string{
			"#60A5FA",
			"#FB923C",
			"#22D3EE",
			"#A78BFA",
			"#60A5FA",
			"#FB923C",
			"#4ADE80",
			"#38BDF8",
		},
	},
}

// Names lists the selectable palettes.
func Names() []string {
	return []string{"claro", "escuro"}
}

// GetPalette returns the named palette, falling back to DefaultPalette.
func GetPalette(name string) Palette {
	if p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return DefaultPalette
}

// SeriesColor returns the color for the i-th figure, cycling if needed.
func (p Palette) SeriesColor(i int) string {
	if len(p.Series) == 0 {
		return p.Accent
	}
	return p.Series[i%len(p.Series)]
}

// RGBA parses a #RRGGBB hex string. Malformed input yields opaque black.
func RGBA(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{A: 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
