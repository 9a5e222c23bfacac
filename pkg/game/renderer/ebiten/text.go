package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawColoredText draws text with its top-left corner at x, y
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y float64, col color.Color) {
	e.drawColoredTextWithFace(screen, str, x, y, col, e.getSansFontFace())
}

// drawColoredTextWithFace draws text with a specific color and font face.
// text/v2 Draw uses top-left as the origin point.
func (e *EbitenRenderer) drawColoredTextWithFace(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(screen, str, face, op)
}

// getTextWidthWithFace returns the rendered width of str
func (e *EbitenRenderer) getTextWidthWithFace(str string, face *text.GoTextFace) float64 {
	w, _ := text.Measure(str, face, 0)
	return w
}
