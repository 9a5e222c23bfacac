package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"harvestmap/pkg/engine/layout"
)

var (
	colorCard        = color.NRGBA{R: 255, G: 255, B: 255, A: 217}
	colorMissingIcon = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	colorBadge       = color.NRGBA{A: 255}
)

// IconSource looks up decoded icon textures by path. A nil image means the
// texture is not loaded yet.
type IconSource interface {
	Icon(path string) image.Image
}

// DrawCards rasterises laid-out cards onto dst with basicfont badges.
// cards must come from p.Layout with the same metrics.
func DrawCards(dst draw.Image, p Plan, cards []layout.Card, m layout.Metrics, icons IconSource) {
	for _, c := range cards {
		if c.ID < 0 || c.ID >= len(p.Cards) {
			continue
		}
		drawCard(dst, p.Cards[c.ID], c, m, icons)
	}
}

func drawCard(dst draw.Image, desc CardDescriptor, c layout.Card, m layout.Metrics, icons IconSource) {
	box := image.Rect(
		int(math.Round(c.Offset.X)), int(math.Round(c.Offset.Y)),
		int(math.Round(c.Offset.X+c.Width)), int(math.Round(c.Offset.Y+c.Height)),
	)
	bg := colorCard
	if tint, ok := desc.Tint.Color(); ok {
		bg = tint
	}
	draw.Draw(dst, box, image.NewUniform(bg), image.Point{}, draw.Over)

	x := c.Offset.X + m.Padding
	y := c.Offset.Y + m.Padding
	for _, e := range desc.Entries {
		w := math.Max(m.IconSize, m.LabelWidth(e.Badge))
		iconRect := image.Rect(int(x), int(y), int(x+m.IconSize), int(y+m.IconSize))

		var icon image.Image
		if icons != nil {
			icon = icons.Icon(e.Texture)
		}
		if icon != nil {
			xdraw.BiLinear.Scale(dst, iconRect, icon, icon.Bounds(), draw.Over, nil)
		} else {
			draw.Draw(dst, iconRect.Inset(4), image.NewUniform(colorMissingIcon), image.Point{}, draw.Over)
		}

		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(colorBadge),
			Face: basicfont.Face7x13,
		}
		adv := d.MeasureString(e.Badge)
		d.Dot = fixed.Point26_6{
			X: fixed.I(int(x+w)) - adv,
			Y: fixed.I(int(y + m.IconSize - 2)),
		}
		d.DrawString(e.Badge)

		if desc.Horizontal {
			x += w + m.Gap
		} else {
			y += m.IconSize + m.Gap
		}
	}
}
