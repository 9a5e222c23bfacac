// Package layout places reward cards next to their markers: it measures
// them, clamps them into the viewport and nudges overlapping cards apart.
package layout

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Defaults for the layout pass
const (
	DefaultMargin          = 5.0
	DefaultReverseLift     = 10.0
	DefaultTolerance       = 5.0
	DefaultCellSize        = 220.0
	DefaultBruteForceBelow = 50
)

// Content is what a card shows, as far as measuring it is concerned
type Content struct {
	Badges     []string // quantity label of each entry, in display order
	Horizontal bool     // entries laid out in a row instead of a column
}

// Provider measures card content. Implementations may use real font
// metrics; the layout pass only needs the resulting box size.
type Provider interface {
	Measure(c Content) (width, height float64)
}

// Card is a reward card placed for one render pass.
// Width and Height are filled in by the measure step; Offset is the final
// top-left position after clamping and collision nudges.
type Card struct {
	ID     int // caller-defined identity, typically the marker index
	Anchor vec.Vec2
	Width  float64
	Height float64
	Offset vec.Vec2
}

// Rect returns the card box at its current offset
func (c Card) Rect() rect.Rect {
	return rect.Rect{
		LLx: c.Offset.X,
		LLy: c.Offset.Y,
		URx: c.Offset.X + c.Width,
		URy: c.Offset.Y + c.Height,
	}
}

// Metrics is a Provider with fixed icon geometry
type Metrics struct {
	IconSize float64
	Padding  float64
	Gap      float64

	// BadgeWidth measures a quantity label; nil means 7px per byte,
	// the advance of basicfont.Face7x13.
	BadgeWidth func(label string) float64
}

// DefaultMetrics returns the metrics used when nothing else is configured
func DefaultMetrics() Metrics {
	return Metrics{IconSize: 24, Padding: 4, Gap: 2}
}

// Measure implements Provider
func (m Metrics) Measure(c Content) (width, height float64) {
	n := len(c.Badges)
	if n == 0 {
		return 0, 0
	}

	entryW := make([]float64, n)
	for i, b := range c.Badges {
		entryW[i] = math.Max(m.IconSize, m.LabelWidth(b))
	}
	gaps := float64(n-1) * m.Gap

	if c.Horizontal {
		for _, w := range entryW {
			width += w
		}
		return width + gaps + 2*m.Padding, m.IconSize + 2*m.Padding
	}

	for _, w := range entryW {
		width = math.Max(width, w)
	}
	return width + 2*m.Padding, float64(n)*m.IconSize + gaps + 2*m.Padding
}

// LabelWidth returns the width of a quantity badge
func (m Metrics) LabelWidth(label string) float64 {
	if m.BadgeWidth != nil {
		return m.BadgeWidth(label)
	}
	return 7 * float64(len(label))
}

// Clamp positions every card at its anchor and pulls it back inside a
// container of the given size. Cards overflowing the right or bottom edge
// are moved to bounds-size-margin (never below zero); a negative top or left
// snaps to margin. lift is subtracted from the final top, which the
// horizontal layout of reverse-axis scenes uses to sit a little higher.
func Clamp(cards []Card, bounds vec.Vec2, margin, lift float64) {
	for i := range cards {
		c := &cards[i]
		left, top := c.Anchor.X, c.Anchor.Y

		if c.Anchor.X+c.Width+margin > bounds.X {
			left = math.Max(0, bounds.X-c.Width-margin)
		}
		if c.Anchor.Y+c.Height+margin > bounds.Y {
			top = math.Max(0, bounds.Y-c.Height-margin)
		}
		if top < 0 {
			top = margin
		}
		if left < 0 {
			left = margin
		}

		c.Offset = vec.Vec2{X: left, Y: top - lift}
	}
}

// MeasureAll fills in Width and Height of every card from its content
func MeasureAll(cards []Card, contents []Content, p Provider) {
	for i := range cards {
		if i >= len(contents) {
			return
		}
		cards[i].Width, cards[i].Height = p.Measure(contents[i])
	}
}

// Options configures one layout pass
type Options struct {
	Margin          float64
	Lift            float64
	ToleranceX      float64
	ToleranceY      float64
	CellSize        float64
	BruteForceBelow int
	Axis            Axis
	SkipCollisions  bool
}

// DefaultOptions returns the options for a scene with the given axis swap
func DefaultOptions(reverseXY bool) Options {
	o := Options{
		Margin:          DefaultMargin,
		ToleranceX:      DefaultTolerance,
		ToleranceY:      DefaultTolerance,
		CellSize:        DefaultCellSize,
		BruteForceBelow: DefaultBruteForceBelow,
		Axis:            AxisFor(reverseXY),
	}
	if reverseXY {
		o.Lift = DefaultReverseLift
	}
	return o
}

// Pass runs the post-measure part of the layout phase: every card is
// clamped first, then collisions are resolved once on the clamped boxes.
func Pass(cards []Card, bounds vec.Vec2, o Options) Stats {
	Clamp(cards, bounds, o.Margin, o.Lift)
	if o.SkipCollisions {
		return Stats{Strategy: StrategySkipped}
	}
	r := Resolver{
		ToleranceX:      o.ToleranceX,
		ToleranceY:      o.ToleranceY,
		Axis:            o.Axis,
		CellSize:        o.CellSize,
		BruteForceBelow: o.BruteForceBelow,
	}
	return r.Resolve(cards)
}
