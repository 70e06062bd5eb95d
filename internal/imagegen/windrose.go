package imagegen

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/theme"
)

const (
	RoseWidth  = 520
	RoseHeight = 520
)

// WindRose draws a polar frequency chart of wind directions. Sector radius
// is proportional to its count relative to the busiest sector.
func WindRose(title string, rose *dashboard.PolarData, p theme.Palette, fill string) ([]byte, error) {
	if rose == nil || rose.Total == 0 || len(rose.Sectors) == 0 {
		return Placeholder(RoseWidth, RoseHeight, title, p)
	}

	img := image.NewRGBA(image.Rect(0, 0, RoseWidth, RoseHeight))
	fillRect(img, img.Bounds(), theme.RGBA(p.Card))
	strokeRect(img, img.Bounds(), theme.RGBA(p.CardBorder))
	drawText(img, title, 16, 28, theme.RGBA(p.Text), fitScale(title, RoseWidth-32, 2))

	cx, cy := RoseWidth/2, RoseHeight/2+16
	radius := 190.0

	maxCount := 0
	for _, s := range rose.Sectors {
		maxCount = max(maxCount, s.Count)
	}
	width := 360.0 / float64(len(rose.Sectors))

	fillColor := theme.RGBA(fill)
	r0 := int(radius)
	for y := cy - r0; y <= cy+r0; y++ {
		for x := cx - r0; x <= cx+r0; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			dist := math.Hypot(dx, dy)
			if dist > radius {
				continue
			}
			theta := compassAngle(dx, dy, rose.StartAngle, rose.Clockwise)
			idx := int(math.Floor((theta+width/2)/width)) % len(rose.Sectors)
			reach := radius * float64(rose.Sectors[idx].Count) / float64(maxCount)
			if dist <= reach {
				img.Set(x, y, fillColor)
			}
		}
	}

	grid := theme.RGBA(p.CardBorder)
	for _, frac := range []float64{0.25, 0.5, 0.75, 1} {
		drawCircle(img, cx, cy, radius*frac, grid)
	}
	for i := 0; i < 8; i++ {
		x, y := polarPoint(cx, cy, radius, float64(i)*45, rose.StartAngle, rose.Clockwise)
		drawLine(img, cx, cy, x, y, grid)
	}

	muted := theme.RGBA(p.TextMuted)
	for i, s := range rose.Sectors {
		if len(rose.Sectors) > 8 && i%2 == 1 {
			continue
		}
		x, y := polarPoint(cx, cy, radius+18, s.Theta, rose.StartAngle, rose.Clockwise)
		drawCenteredText(img, s.Label, x, y+5, muted, 1)
	}

	drawText(img, fmt.Sprintf("max %d / total %d", maxCount, rose.Total), 16, RoseHeight-14, muted, 1)
	return encodePNG(img)
}

// compassAngle converts a screen offset from the centre into the rose's
// angular coordinate in [0, 360).
func compassAngle(dx, dy, start float64, clockwise bool) float64 {
	phi := math.Atan2(-dy, dx) * 180 / math.Pi
	theta := phi - start
	if clockwise {
		theta = start - phi
	}
	theta = math.Mod(theta, 360)
	if theta < 0 {
		theta += 360
	}
	return theta
}

// polarPoint is the inverse of compassAngle at distance r.
func polarPoint(cx, cy int, r, theta, start float64, clockwise bool) (int, int) {
	phi := start + theta
	if clockwise {
		phi = start - theta
	}
	rad := phi * math.Pi / 180
	return cx + int(math.Round(r*math.Cos(rad))), cy - int(math.Round(r*math.Sin(rad)))
}

func drawCircle(img *image.RGBA, cx, cy int, r float64, col color.Color) {
	steps := int(2 * math.Pi * r)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		img.Set(cx+int(math.Round(r*math.Cos(a))), cy+int(math.Round(r*math.Sin(a))), col)
	}
}
