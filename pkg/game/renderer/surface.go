package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/engine/dirty"
)

// Marker geometry in pixels
const (
	GlowRadius = 11.0
	CoreRadius = 6.5
	RingWidth  = 1.0
	CrossSize  = 3.0
)

var (
	colorGridLine = color.NRGBA{R: 255, A: 77}
	colorRingRare = color.NRGBA{R: 255, A: 255}
	colorRing     = color.NRGBA{A: 255}
	colorGlyph    = color.NRGBA{A: 255}
)

// Surface is the transparent overlay raster drawn over the background
type Surface struct {
	ShowGrid bool

	img *image.NRGBA
	z   *vector.Rasterizer
}

// NewSurface returns a cleared surface of the given size
func NewSurface(width, height int) *Surface {
	return &Surface{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(0, 0),
	}
}

// Image returns the overlay pixels
func (s *Surface) Image() *image.NRGBA {
	return s.img
}

// Size returns the surface size in pixels
func (s *Surface) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the raster with a cleared one of the new size. The caller
// must follow with a full redraw.
func (s *Surface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Draw renders the plan. A full redraw clears and repaints everything;
// otherwise each region is cleared and repainted in turn, clipped to itself,
// so pixels outside the regions are left as the previous render drew them.
func (s *Surface) Draw(p Plan, redraw dirty.Result) {
	if redraw.FullRedraw {
		s.paint(p, s.img.Bounds())
		return
	}
	for _, r := range redraw.Regions {
		clip := dirty.Pixels(r).Intersect(s.img.Bounds())
		if clip.Empty() {
			continue
		}
		s.paint(p, clip)
	}
}

func (s *Surface) paint(p Plan, clip image.Rectangle) {
	draw.Draw(s.img, clip, image.Transparent, image.Point{}, draw.Src)
	if s.ShowGrid && p.GridPx > 0 {
		s.drawGrid(p.GridPx, p.Origin, clip)
	}
	for _, m := range p.Markers {
		s.drawMarker(m, clip)
	}
}

func (s *Surface) drawGrid(gridPx float64, origin vec.Vec2, clip image.Rectangle) {
	w, h := s.Size()
	line := image.NewUniform(colorGridLine)

	for y := origin.Y; y >= 0; y -= gridPx {
		s.fillRect(image.Rect(0, int(y), w, int(y)+1), line, clip)
	}
	for y := origin.Y + gridPx; y <= float64(h); y += gridPx {
		s.fillRect(image.Rect(0, int(y), w, int(y)+1), line, clip)
	}
	for x := origin.X; x >= 0; x -= gridPx {
		s.fillRect(image.Rect(int(x), 0, int(x)+1, h), line, clip)
	}
	for x := origin.X + gridPx; x <= float64(w); x += gridPx {
		s.fillRect(image.Rect(int(x), 0, int(x)+1, h), line, clip)
	}

	// origin cross
	black := image.NewUniform(colorRing)
	s.strokeLine(origin.X-CrossSize, origin.Y-CrossSize, origin.X+CrossSize, origin.Y+CrossSize, 1, black, clip)
	s.strokeLine(origin.X+CrossSize, origin.Y-CrossSize, origin.X-CrossSize, origin.Y+CrossSize, 1, black, clip)
}

func (s *Surface) fillRect(r image.Rectangle, src image.Image, clip image.Rectangle) {
	r = r.Intersect(clip)
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, src, image.Point{}, draw.Over)
}

func (s *Surface) drawMarker(m Marker, clip image.Rectangle) {
	if !m.Known {
		s.drawGlyph(m.Screen, clip)
		return
	}

	glow := &radialGlow{center: m.Screen, radius: GlowRadius, c: m.Color}
	s.fillCircle(m.Screen, GlowRadius, 0, glow, clip)

	core := m.Color
	core.A = 255
	s.fillCircle(m.Screen, CoreRadius, 0, image.NewUniform(core), clip)

	ring := colorRing
	if m.Rare {
		ring = colorRingRare
	}
	s.fillCircle(m.Screen, CoreRadius+RingWidth/2, CoreRadius-RingWidth/2, image.NewUniform(ring), clip)
}

// drawGlyph draws the "?" fallback with its baseline just below the point
func (s *Surface) drawGlyph(at vec.Vec2, clip image.Rectangle) {
	dst, ok := s.img.SubImage(clip).(*image.NRGBA)
	if !ok {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorGlyph),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(at.X-3)), int(math.Round(at.Y+4))),
	}
	d.DrawString("?")
}

// fillCircle fills the disc of radius outer centred on c, or the ring
// between inner and outer when inner > 0.
func (s *Surface) fillCircle(c vec.Vec2, outer, inner float64, src image.Image, clip image.Rectangle) {
	box := image.Rect(
		int(math.Floor(c.X-outer)), int(math.Floor(c.Y-outer)),
		int(math.Ceil(c.X+outer)), int(math.Ceil(c.Y+outer)),
	).Intersect(clip)
	if box.Empty() {
		return
	}

	s.z.Reset(box.Dx(), box.Dy())
	cx := float32(c.X - float64(box.Min.X))
	cy := float32(c.Y - float64(box.Min.Y))
	addCircle(s.z, cx, cy, float32(outer), false)
	if inner > 0 {
		addCircle(s.z, cx, cy, float32(inner), true)
	}
	s.z.Draw(s.img, box, src, box.Min)
}

// strokeLine rasterises a line segment of the given width as a quad
func (s *Surface) strokeLine(x0, y0, x1, y1, width float64, src image.Image, clip image.Rectangle) {
	pad := width
	box := image.Rect(
		int(math.Floor(math.Min(x0, x1)-pad)), int(math.Floor(math.Min(y0, y1)-pad)),
		int(math.Ceil(math.Max(x0, x1)+pad)), int(math.Ceil(math.Max(y0, y1)+pad)),
	).Intersect(clip)
	if box.Empty() {
		return
	}

	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	ox, oy := float64(box.Min.X), float64(box.Min.Y)

	s.z.Reset(box.Dx(), box.Dy())
	s.z.MoveTo(float32(x0+nx-ox), float32(y0+ny-oy))
	s.z.LineTo(float32(x1+nx-ox), float32(y1+ny-oy))
	s.z.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
	s.z.LineTo(float32(x0-nx-ox), float32(y0-ny-oy))
	s.z.ClosePath()
	s.z.Draw(s.img, box, src, box.Min)
}

// addCircle adds a circle made of four cubic Béziers. Opposite windings
// for the outer and inner circle leave a hole.
func addCircle(z *vector.Rasterizer, cx, cy, r float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * r

	z.MoveTo(cx, cy-r)
	if clockwise {
		z.CubeTo(cx-kr, cy-r, cx-r, cy-kr, cx-r, cy)
		z.CubeTo(cx-r, cy+kr, cx-kr, cy+r, cx, cy+r)
		z.CubeTo(cx+kr, cy+r, cx+r, cy+kr, cx+r, cy)
		z.CubeTo(cx+r, cy-kr, cx+kr, cy-r, cx, cy-r)
	} else {
		z.CubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
		z.CubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
		z.CubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
		z.CubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	}
	z.ClosePath()
}

// radialGlow fades the marker colour from half opacity at the centre to
// transparent at radius.
type radialGlow struct {
	center vec.Vec2
	radius float64
	c      color.NRGBA
}

func (g *radialGlow) ColorModel() color.Model { return color.NRGBAModel }

func (g *radialGlow) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *radialGlow) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-g.center.X, float64(y)+0.5-g.center.Y)
	t := d / g.radius
	if t >= 1 {
		return color.NRGBA{}
	}
	c := g.c
	c.A = uint8(math.Round(0.5 * (1 - t) * 255))
	return c
}
