package imagegen

import (
	"fmt"
	"image"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/theme"
)

// CardWidth and CardHeight are the standard Open Graph image dimensions.
const (
	CardWidth  = 1200
	CardHeight = 630
)

// KPICardData contains the dynamic data for the KPI summary card.
type KPICardData struct {
	Station   string // e.g. "INMET A301"
	Selection string // month name or "Todos"
	Rows      int
	KPIs      []dashboard.KPI
}

// GenerateKPICard draws the KPI scalars for one selection onto a 1200x630
// card suitable for link previews and exports.
func GenerateKPICard(data KPICardData, p theme.Palette) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	drawVerticalGradient(img, theme.RGBA(p.Background), theme.RGBA(p.CardBorder))

	text := theme.RGBA(p.Text)
	muted := theme.RGBA(p.TextMuted)

	heading := "Dashboard Meteorológico"
	if data.Station != "" {
		heading += " - " + data.Station
	}
	drawText(img, heading, 60, 80, text, fitScale(heading, CardWidth-120, 4))
	drawText(img, fmt.Sprintf("Mês: %s  |  %d registros", data.Selection, data.Rows), 60, 124, muted, 2)

	const (
		cols    = 3
		gap     = 30
		margin  = 60
		cardH   = 180
		rowOneY = 170
	)
	cardW := (CardWidth - 2*margin - (cols-1)*gap) / cols

	for i, k := range data.KPIs {
		col, row := i%cols, i/cols
		x := margin + col*(cardW+gap)
		y := rowOneY + row*(cardH+gap)
		r := image.Rect(x, y, x+cardW, y+cardH)

		fillRect(img, r, theme.RGBA(p.Card))
		strokeRect(img, r, theme.RGBA(p.CardBorder))
		fillRect(img, image.Rect(x, y, x+6, y+cardH), theme.RGBA(p.SeriesColor(i)))

		drawText(img, k.Label, x+24, y+44, muted, fitScale(k.Label, cardW-48, 2))
		drawText(img, k.Text, x+24, y+130, text, fitScale(k.Text, cardW-48, 5))
	}

	return encodePNG(img)
}
