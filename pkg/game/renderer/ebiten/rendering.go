package ebiten

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/game/renderer"
)

// Draw renders the background, overlay, cards and status bar (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	e.snapshotMutex.RLock()
	snap := e.snapshot
	e.snapshotMutex.RUnlock()

	if snap.valid && snap.overlay != nil {
		ox, oy := e.mapOrigin(screen, snap.overlay)
		e.drawBackground(screen, snap, ox, oy)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(ox, oy)
		screen.DrawImage(snap.overlay, op)

		e.drawCards(screen, snap.frame, ox, oy)
	}

	e.drawStatusBar(screen, snap)
	e.drawHelpPanel(screen)
}

// mapOrigin centres the overlay horizontally below the status bar
func (e *EbitenRenderer) mapOrigin(screen, overlay *ebiten.Image) (float64, float64) {
	sw := screen.Bounds().Dx()
	ow := overlay.Bounds().Dx()
	x := math.Max(0, float64(sw-ow)/2)
	return math.Round(x), statusBarHeight
}

// drawBackground scales the scene image onto the overlay area
func (e *EbitenRenderer) drawBackground(screen *ebiten.Image, snap renderSnapshot, ox, oy float64) {
	if snap.background == nil {
		return
	}
	bw, bh := snap.background.Bounds().Dx(), snap.background.Bounds().Dy()
	cw, ch := snap.overlay.Bounds().Dx(), snap.overlay.Bounds().Dy()
	if bw == 0 || bh == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(cw)/float64(bw), float64(ch)/float64(bh))
	op.GeoM.Translate(ox, oy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(snap.background, op)
}

// drawCards draws the laid-out reward cards of a frame
func (e *EbitenRenderer) drawCards(screen *ebiten.Image, f *renderer.Frame, ox, oy float64) {
	if f == nil {
		return
	}
	m := e.session.View.Config().Card
	for _, c := range f.Cards {
		if c.ID < 0 || c.ID >= len(f.Plan.Cards) {
			continue
		}
		e.drawCard(screen, f.Plan.Cards[c.ID], c, m, ox, oy)
	}
}

func (e *EbitenRenderer) drawCard(screen *ebiten.Image, desc renderer.CardDescriptor, c layout.Card, m layout.Metrics, ox, oy float64) {
	var bg color.Color = colorCard
	if tint, ok := desc.Tint.Color(); ok {
		bg = tint
	}
	vector.DrawFilledRect(screen,
		float32(ox+c.Offset.X), float32(oy+c.Offset.Y),
		float32(c.Width), float32(c.Height), bg, false)

	face := e.getBadgeFontFace()
	x := ox + c.Offset.X + m.Padding
	y := oy + c.Offset.Y + m.Padding
	for _, entry := range desc.Entries {
		w := math.Max(m.IconSize, m.LabelWidth(entry.Badge))

		if icon := e.iconImage(entry.Texture); icon != nil {
			iw, ih := icon.Bounds().Dx(), icon.Bounds().Dy()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(m.IconSize/float64(iw), m.IconSize/float64(ih))
			op.GeoM.Translate(x, y)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(icon, op)
		} else {
			vector.DrawFilledRect(screen, float32(x+4), float32(y+4),
				float32(m.IconSize-8), float32(m.IconSize-8), colorMissingIcon, false)
		}

		bw := e.getTextWidthWithFace(entry.Badge, face)
		e.drawColoredTextWithFace(screen, entry.Badge, x+w-bw, y+m.IconSize-badgeFontSize-1, colorBadge, face)

		if desc.Horizontal {
			x += w + m.Gap
		} else {
			y += m.IconSize + m.Gap
		}
	}
}

// iconImage returns the uploaded texture for a path, uploading it on first
// use. Textures still loading return nil and are retried on the next frame.
func (e *EbitenRenderer) iconImage(path string) *ebiten.Image {
	if img, ok := e.iconImages[path]; ok {
		return img
	}
	if e.session.Icons == nil {
		return nil
	}
	src := e.session.Icons.Icon(path)
	if src == nil || src.Bounds().Empty() {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	e.iconImages[path] = img
	return img
}

// drawStatusBar draws the status line, super-rare scenes and recent messages
func (e *EbitenRenderer) drawStatusBar(screen *ebiten.Image, snap renderSnapshot) {
	sw := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, 0, float32(sw), statusBarHeight, colorPanelBackground, false)

	const pad = 8.0
	lineH := baseFontSize + 4

	if snap.valid {
		e.drawColoredText(screen, snap.status, pad, pad, colorText)
		if line := superRareLine(snap.superRare); line != "" {
			lw := e.getTextWidthWithFace(line, e.getSansFontFace())
			e.drawColoredText(screen, line, float64(sw)-lw-pad, pad, colorSuperRare)
		}
	}

	msgs := e.currentMessages(time.Now().UnixMilli())
	if len(msgs) > 0 {
		e.drawColoredText(screen, msgs[len(msgs)-1], pad, pad+lineH, colorSubtle)
	}
}

// drawHelpPanel lists the key bindings in the bottom-left corner
func (e *EbitenRenderer) drawHelpPanel(screen *ebiten.Image) {
	e.messagesMutex.RLock()
	lines := e.helpLines
	e.messagesMutex.RUnlock()
	if len(lines) == 0 {
		return
	}

	const pad = 8.0
	face := e.getSansFontFace()
	lineH := baseFontSize + 4
	width := 0.0
	for _, l := range lines {
		width = math.Max(width, e.getTextWidthWithFace(l, face))
	}
	height := float64(len(lines))*lineH + 2*pad
	top := float64(screen.Bounds().Dy()) - height - pad

	vector.DrawFilledRect(screen, float32(pad), float32(top),
		float32(width+2*pad), float32(height), colorPanelBackground, false)
	for i, l := range lines {
		e.drawColoredText(screen, l, 2*pad, top+pad+float64(i)*lineH, colorText)
	}
}
