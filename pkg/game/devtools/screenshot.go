// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"

	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/game/renderer"
)

// ErrNoFrame is returned when nothing has been rendered yet
var ErrNoFrame = errors.New("devtools: no frame rendered")

// Compose flattens a frame into one image: the background scaled to the
// overlay size, the marker overlay, then the reward cards.
func Compose(f *renderer.Frame, background image.Image, icons renderer.IconSource, m layout.Metrics) (*image.NRGBA, error) {
	if f == nil || f.Overlay == nil {
		return nil, ErrNoFrame
	}
	bounds := f.Overlay.Bounds()
	out := image.NewNRGBA(bounds)

	if background != nil {
		xdraw.BiLinear.Scale(out, bounds, background, background.Bounds(), draw.Src, nil)
	}
	draw.Draw(out, bounds, f.Overlay, bounds.Min, draw.Over)
	renderer.DrawCards(out, f.Plan, f.Cards, m, icons)
	return out, nil
}

// WritePNG composes the frame and writes it to path
func WritePNG(path string, f *renderer.Frame, background image.Image, icons renderer.IconSource, m layout.Metrics) error {
	img, err := Compose(f, background, icons, m)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return out.Close()
}

// SaveSnapshot writes the frame to a timestamped PNG in dir and returns
// its path
func SaveSnapshot(dir string, f *renderer.Frame, background image.Image, icons renderer.IconSource, m layout.Metrics) (string, error) {
	if f == nil {
		return "", ErrNoFrame
	}
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("snapshot-%s-%s.png", f.SceneKey, timestamp))
	if err := WritePNG(filename, f, background, icons, m); err != nil {
		return "", err
	}
	return filename, nil
}
