package ebiten

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"harvestmap/pkg/logger"
)

// loadFonts parses the embedded Go Regular font
func (e *EbitenRenderer) loadFonts() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		logger.Log.WithError(err).Fatal("Cannot load font")
	}
	e.sansFontSource = src
	e.invalidateFontCache()
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := baseFontSize
	if e.cachedSansFace == nil || e.cachedUIFontSize != size {
		e.cachedUIFontSize = size
		e.cachedSansFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   size,
		}
	}
	return e.cachedSansFace
}

// getBadgeFontFace returns the font face for quantity badges on cards
func (e *EbitenRenderer) getBadgeFontFace() *text.GoTextFace {
	if e.cachedBadgeFace == nil {
		e.cachedBadgeFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   badgeFontSize,
		}
	}
	return e.cachedBadgeFace
}

// invalidateFontCache clears cached font faces
func (e *EbitenRenderer) invalidateFontCache() {
	e.cachedSansFace = nil
	e.cachedBadgeFace = nil
}
