// Package imagegen draws the PNG figures that go-chart cannot express (the
// wind rose, dual-axis grouped bars and the KPI summary card) plus the
// placeholder shown when a figure has nothing to plot.
package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var face = basicfont.Face7x13

// degreeAdvance is the horizontal space reserved for a drawn degree ring.
const degreeAdvance = 6

// asciiFold strips combining marks so Portuguese labels survive the ASCII
// bitmap face: "Pressão" becomes "Pressao".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldASCII(s string) string {
	out, _, err := transform.String(asciiFold, s)
	if err != nil {
		return s
	}
	return out
}

// textWidth returns the unscaled pixel width of text as drawText renders it.
func textWidth(text string) int {
	parts := strings.Split(foldASCII(text), "°")
	w := 0
	for _, p := range parts {
		w += font.MeasureString(face, p).Ceil()
	}
	return w + degreeAdvance*(len(parts)-1)
}

// fitScale returns the largest scale up to max at which text fits in width.
func fitScale(text string, width, max int) int {
	w := textWidth(text)
	for s := max; s > 1; s-- {
		if w*s <= width {
			return s
		}
	}
	return 1
}

// drawText draws text with its baseline at y, magnified by scale.
func drawText(dst *image.RGBA, text string, x, y int, col color.Color, scale int) {
	if scale < 1 {
		scale = 1
	}
	if scale == 1 {
		drawRun(dst, text, x, y, col)
		return
	}

	ascent := face.Metrics().Ascent.Ceil()
	height := face.Metrics().Height.Ceil()
	w := textWidth(text)
	if w == 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, height))
	drawRun(tmp, text, 0, ascent, col)

	target := image.Rect(x, y-ascent*scale, x+w*scale, y+(height-ascent)*scale)
	draw.NearestNeighbor.Scale(dst, target, tmp, tmp.Bounds(), draw.Over, nil)
}

// drawCenteredText centres text horizontally on cx.
func drawCenteredText(dst *image.RGBA, text string, cx, y int, col color.Color, scale int) {
	drawText(dst, text, cx-textWidth(text)*scale/2, y, col, scale)
}

func drawRun(dst *image.RGBA, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	parts := strings.Split(foldASCII(text), "°")
	for i, p := range parts {
		d.DrawString(p)
		if i < len(parts)-1 {
			cx := d.Dot.X.Ceil() + degreeAdvance/2
			drawRing(dst, cx, y-9, 2, col)
			d.Dot.X += fixed.I(degreeAdvance)
		}
	}
}

func drawRing(dst *image.RGBA, cx, cy, r int, col color.Color) {
	for deg := 0; deg < 360; deg += 15 {
		rad := float64(deg) * math.Pi / 180
		dst.Set(cx+int(math.Round(float64(r)*math.Cos(rad))), cy+int(math.Round(float64(r)*math.Sin(rad))), col)
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// strokeRect draws a one pixel outline just inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// drawLine plots a straight line between two points.
func drawLine(dst *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy))))
	if steps == 0 {
		dst.Set(x0, y0, col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		dst.Set(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))), col)
	}
}

// drawVerticalGradient fills img from top to bottom, blending from one
// color to another with an ease-in curve.
func drawVerticalGradient(img *image.RGBA, from, to color.RGBA) {
	b := img.Bounds()
	h := float64(b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		progress := float64(y-b.Min.Y) / h
		progress = progress * progress
		c := color.RGBA{
			R: lerp(from.R, to.R, progress),
			G: lerp(from.G, to.G, progress),
			B: lerp(from.B, to.B, progress),
			A: 255,
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
