package imagegen

import (
	"image"

	"github.com/lox/inmetdash/internal/theme"
)

// NoDataText is drawn in the middle of an empty figure.
const NoDataText = "Sem dados"

// Placeholder draws an empty card with the figure title and a no-data notice.
func Placeholder(width, height int, title string, p theme.Palette) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), theme.RGBA(p.Card))
	strokeRect(img, img.Bounds(), theme.RGBA(p.CardBorder))

	if title != "" {
		drawText(img, title, 16, 28, theme.RGBA(p.Text), fitScale(title, width-32, 2))
	}
	drawCenteredText(img, NoDataText, width/2, height/2+8, theme.RGBA(p.TextMuted), 2)

	return encodePNG(img)
}
