package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"seehuhn.de/go/geom/rect"
)

// Axis is the direction overlapping cards are pushed along
type Axis int

// Nudge axes
const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// AxisFor returns the nudge axis for a scene. Reverse-axis scenes lay cards
// out horizontally, so they are pushed vertically; all others horizontally.
func AxisFor(reverseXY bool) Axis {
	if reverseXY {
		return AxisY
	}
	return AxisX
}

// Strategy names how the overlap search was done
type Strategy string

// Collision strategies
const (
	StrategyBruteForce Strategy = "brute-force"
	StrategyGrid       Strategy = "grid"
	StrategySkipped    Strategy = "skipped"
)

// Stats describes one resolve run
type Stats struct {
	Strategy Strategy
	Checked  int // pairs tested
	Nudged   int // nudges applied
}

// Resolver pushes overlapping cards apart in a single pass.
//
// Every box is snapshotted before the pass starts, so overlaps are computed
// against the clamped positions and never against positions moved during
// the same pass. For each unordered pair (i, j) with i < j whose overlap
// exceeds the tolerance on either axis, card j is moved by -overlap/1.25
// along Axis. A card can be nudged by several partners.
type Resolver struct {
	ToleranceX      float64
	ToleranceY      float64
	Axis            Axis
	CellSize        float64 // grid cell side; defaults to DefaultCellSize
	BruteForceBelow int     // card counts below this skip the grid; defaults to DefaultBruteForceBelow
}

// Resolve runs a Resolver with the default grid parameters
func Resolve(cards []Card, tolX, tolY float64, axis Axis) Stats {
	return Resolver{ToleranceX: tolX, ToleranceY: tolY, Axis: axis}.Resolve(cards)
}

// Resolve nudges cards in place
func (r Resolver) Resolve(cards []Card) Stats {
	rects := make([]rect.Rect, len(cards))
	for i, c := range cards {
		rects[i] = c.Rect()
	}

	limit := r.BruteForceBelow
	if limit <= 0 {
		limit = DefaultBruteForceBelow
	}
	if len(cards) < limit {
		return r.bruteForce(cards, rects)
	}
	return r.grid(cards, rects)
}

func (r Resolver) bruteForce(cards []Card, rects []rect.Rect) Stats {
	s := Stats{Strategy: StrategyBruteForce}
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			s.Checked++
			if r.check(cards, rects, i, j) {
				s.Nudged++
			}
		}
	}
	return s
}

type cellKey struct {
	X, Y int
}

type pairKey struct {
	A, B int
}

func (r Resolver) grid(cards []Card, rects []rect.Rect) Stats {
	size := r.CellSize
	if size <= 0 {
		size = DefaultCellSize
	}
	inv := 1 / size

	cells := make(map[cellKey][]int)
	for i, b := range rects {
		x0 := int(math.Floor(b.LLx * inv))
		x1 := int(math.Floor(b.URx * inv))
		y0 := int(math.Floor(b.LLy * inv))
		y1 := int(math.Floor(b.URy * inv))
		for cx := x0; cx <= x1; cx++ {
			for cy := y0; cy <= y1; cy++ {
				k := cellKey{cx, cy}
				cells[k] = append(cells[k], i)
			}
		}
	}

	// Walk cells in a fixed order so repeated runs accumulate nudges
	// identically.
	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b cellKey) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	s := Stats{Strategy: StrategyGrid}
	seen := mapset.New[pairKey]()
	for _, k := range keys {
		members := cells[k]
		for a := 0; a < len(members); a++ {
			for b := a + 1; b < len(members); b++ {
				i, j := members[a], members[b]
				if i > j {
					i, j = j, i
				}
				p := pairKey{i, j}
				if seen.Has(p) {
					continue
				}
				seen.Put(p)
				s.Checked++
				if r.check(cards, rects, i, j) {
					s.Nudged++
				}
			}
		}
	}
	return s
}

// check tests the snapshotted boxes of i < j and nudges card j when they
// overlap beyond tolerance.
func (r Resolver) check(cards []Card, rects []rect.Rect, i, j int) bool {
	a, b := rects[i], rects[j]
	ow := math.Min(a.URx, b.URx) - math.Max(a.LLx, b.LLx)
	oh := math.Min(a.URy, b.URy) - math.Max(a.LLy, b.LLy)
	if ow <= 0 || oh <= 0 {
		return false
	}
	if ow <= r.ToleranceX && oh <= r.ToleranceY {
		return false
	}

	if r.Axis == AxisY {
		cards[j].Offset.Y -= oh / 1.25
	} else {
		cards[j].Offset.X -= ow / 1.25
	}
	return true
}
