package imagegen

import (
	"image"
	"math"
	"strconv"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/theme"
)

const (
	BarsWidth  = 800
	BarsHeight = 400
)

type plotArea struct {
	left, top, right, bottom int
}

func (a plotArea) height() int { return a.bottom - a.top }

// axisScale maps values onto the plot's vertical extent.
type axisScale struct {
	lo, hi float64
}

func newAxisScale(values []*float64) axisScale {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if v == nil {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return axisScale{lo: niceFloor(lo * 1.1), hi: niceCeil(hi * 1.1)}
}

func (s axisScale) y(a plotArea, v float64) int {
	frac := (v - s.lo) / (s.hi - s.lo)
	return a.bottom - int(math.Round(frac*float64(a.height())))
}

// GroupedBars draws one cluster of bars per label. Series on the secondary
// axis are scaled against the right-hand axis.
func GroupedBars(title string, bars *dashboard.BarData, p theme.Palette) ([]byte, error) {
	if bars == nil || len(bars.Labels) == 0 || len(bars.Series) == 0 {
		return Placeholder(BarsWidth, BarsHeight, title, p)
	}

	img := image.NewRGBA(image.Rect(0, 0, BarsWidth, BarsHeight))
	fillRect(img, img.Bounds(), theme.RGBA(p.Card))
	strokeRect(img, img.Bounds(), theme.RGBA(p.CardBorder))
	drawText(img, title, 16, 28, theme.RGBA(p.Text), fitScale(title, BarsWidth/2, 2))

	area := plotArea{left: 64, top: 64, right: BarsWidth - 64, bottom: BarsHeight - 48}

	var primary, secondary []*float64
	for _, s := range bars.Series {
		if s.Axis == dashboard.AxisSecondary {
			secondary = append(secondary, s.Values...)
		} else {
			primary = append(primary, s.Values...)
		}
	}
	left := newAxisScale(primary)
	right := newAxisScale(secondary)

	grid := theme.RGBA(p.CardBorder)
	muted := theme.RGBA(p.TextMuted)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		frac := float64(i) / ticks
		y := area.bottom - int(math.Round(frac*float64(area.height())))
		drawLine(img, area.left, y, area.right, y, grid)

		lv := left.lo + frac*(left.hi-left.lo)
		label := formatTick(lv)
		drawText(img, label, area.left-8-textWidth(label), y+4, muted, 1)
		if len(secondary) > 0 {
			drawText(img, formatTick(right.lo+frac*(right.hi-right.lo)), area.right+8, y+4, muted, 1)
		}
	}

	groupW := float64(area.right-area.left) / float64(len(bars.Labels))
	barW := groupW * 0.8 / float64(len(bars.Series))
	for gi, label := range bars.Labels {
		gx := float64(area.left) + float64(gi)*groupW + groupW*0.1
		for si, s := range bars.Series {
			if gi >= len(s.Values) || s.Values[gi] == nil {
				continue
			}
			scale := left
			if s.Axis == dashboard.AxisSecondary {
				scale = right
			}
			x0 := int(math.Round(gx + float64(si)*barW))
			x1 := int(math.Round(gx + float64(si+1)*barW))
			base := scale.y(area, 0)
			top := scale.y(area, *s.Values[gi])
			if top > base {
				top, base = base, top
			}
			fillRect(img, image.Rect(x0, top, x1-1, base), theme.RGBA(p.SeriesColor(4+si)))
		}
		short := shortLabel(label)
		drawCenteredText(img, short, int(math.Round(gx+groupW*0.4)), area.bottom+18, muted, 1)
	}

	// legend, right-aligned in the title row
	lx := BarsWidth - 16
	for i := len(bars.Series) - 1; i >= 0; i-- {
		s := bars.Series[i]
		text := s.Name
		if s.Unit != "" {
			text += " (" + s.Unit + ")"
		}
		lx -= textWidth(text)
		drawText(img, text, lx, 28, muted, 1)
		lx -= 16
		fillRect(img, image.Rect(lx, 18, lx+10, 28), theme.RGBA(p.SeriesColor(4+i)))
		lx -= 16
	}

	return encodePNG(img)
}

// shortLabel abbreviates month names to three letters.
func shortLabel(s string) string {
	r := []rune(s)
	if len(r) <= 3 {
		return s
	}
	return string(r[:3])
}

func formatTick(v float64) string {
	if math.Abs(v) >= 10 || v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// niceCeil rounds a positive v up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}

// niceFloor is niceCeil mirrored for negative v.
func niceFloor(v float64) float64 {
	if v >= 0 {
		return 0
	}
	return -niceCeil(-v)
}
