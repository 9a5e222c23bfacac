package renderer

import (
	"image/color"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"harvestmap/pkg/engine/layout"
	"harvestmap/pkg/engine/projection"
	"harvestmap/pkg/game/filter"
	"harvestmap/pkg/game/harvest"
	"harvestmap/pkg/game/rarity"
)

// Card anchor offset from its marker, in grid cells
const (
	CardOffsetX = 0.6
	CardOffsetY = 0.4
)

// Tables is the lookup data a plan needs
type Tables interface {
	FixtureColor(id int) (color.NRGBA, bool)
	TexturePath(category, itemID string) string
}

// Marker is one point drawn on the overlay
type Marker struct {
	Point  int      // index into the scene's point list
	World  vec.Vec2 // world location, used for dirty diffing
	Screen vec.Vec2
	Color  color.NRGBA
	Known  bool // false draws the fallback glyph instead of a dot
	Rare   bool // red ring instead of black
}

// CardEntry is one icon of a reward card
type CardEntry struct {
	harvest.Entry
	Texture string
	Badge   string
}

// CardDescriptor is a reward card before layout
type CardDescriptor struct {
	Marker     int // index into Plan.Markers
	Anchor     vec.Vec2
	Entries    []CardEntry
	Tint       rarity.Tint
	Horizontal bool
}

// Content returns what the layout provider needs to measure the card
func (c CardDescriptor) Content() layout.Content {
	badges := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		badges[i] = e.Badge
	}
	return layout.Content{Badges: badges, Horizontal: c.Horizontal}
}

// Plan is everything one render draws, computed without side effects
type Plan struct {
	Markers []Marker
	Cards   []CardDescriptor
	GridPx  float64
	Origin  vec.Vec2
}

// Input bundles what BuildPlan reads
type Input struct {
	Points     []harvest.Point
	Transform  projection.Transform
	Filter     filter.Filter
	Rarity     rarity.Tables
	Tables     Tables
	Horizontal bool // lay card entries out in a row (reverse-axis scenes)
}

// BuildPlan projects the points and decides markers and cards.
//
// Outside filter.ModeAll a point with no visible entry gets neither marker
// nor card. A point of unknown fixture type gets the fallback glyph and
// never a card. A point whose visible entries are empty keeps its marker
// but gets no card. Card tints are decided on the full reward.
func BuildPlan(in Input) Plan {
	gridPx := in.Transform.GridPx()
	p := Plan{GridPx: gridPx, Origin: in.Transform.Origin()}

	for i, pt := range in.Points {
		if !in.Filter.Gate(pt.Reward) {
			continue
		}

		screen := in.Transform.Project(pt.Location)
		col, known := in.Tables.FixtureColor(pt.FixtureID)
		p.Markers = append(p.Markers, Marker{
			Point:  i,
			World:  pt.Location,
			Screen: screen,
			Color:  col,
			Known:  known,
			Rare:   known && rarity.Classify(pt.Reward, in.Rarity.Rare),
		})
		if !known {
			continue
		}

		visible := in.Filter.Visible(pt.Reward)
		if len(visible) == 0 {
			continue
		}
		entries := make([]CardEntry, len(visible))
		for j, e := range visible {
			entries[j] = CardEntry{
				Entry:   e,
				Texture: in.Tables.TexturePath(e.Category, e.ItemID),
				Badge:   strconv.Itoa(e.Quantity),
			}
		}
		p.Cards = append(p.Cards, CardDescriptor{
			Marker:     len(p.Markers) - 1,
			Anchor:     screen.Add(vec.Vec2{X: CardOffsetX * gridPx, Y: CardOffsetY * gridPx}),
			Entries:    entries,
			Tint:       rarity.TintFor(pt.Reward, in.Rarity),
			Horizontal: in.Horizontal,
		})
	}
	return p
}

// Locations returns the world locations of the drawn markers, in order
func (p Plan) Locations() []vec.Vec2 {
	out := make([]vec.Vec2, len(p.Markers))
	for i, m := range p.Markers {
		out[i] = m.World
	}
	return out
}

// Layout runs the layout pass over the plan's cards: measure, clamp to
// bounds, then resolve collisions. The returned cards share indices with
// p.Cards.
func (p Plan) Layout(bounds vec.Vec2, m layout.Provider, o layout.Options) ([]layout.Card, layout.Stats) {
	cards := make([]layout.Card, len(p.Cards))
	contents := make([]layout.Content, len(p.Cards))
	for i, c := range p.Cards {
		cards[i] = layout.Card{ID: i, Anchor: c.Anchor}
		contents[i] = c.Content()
	}
	layout.MeasureAll(cards, contents, m)
	st := layout.Pass(cards, bounds, o)
	return cards, st
}
