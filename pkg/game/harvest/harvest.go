// Package harvest holds harvest points and decodes them from the game's
// data dumps.
package harvest

import (
	"cmp"
	"slices"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

// MusicRecordCategory is the reward category of music records. Points
// carrying one are always tinted, whatever their rarity.
const MusicRecordCategory = "mysekai_music_record"

// Reward maps category -> itemId -> quantity
type Reward map[string]map[string]int

// Entry is one (category, itemId, quantity) triple of a reward
type Entry struct {
	Category string
	ItemID   string
	Quantity int
}

// Key returns the "category:itemId" form used by the custom filter
func (e Entry) Key() string {
	return Key(e.Category, e.ItemID)
}

// Key builds a "category:itemId" selection key
func Key(category, itemID string) string {
	return category + ":" + itemID
}

// Entries flattens the reward in display order: categories alphabetically,
// item ids numerically.
func (r Reward) Entries() []Entry {
	var out []Entry
	for cat, items := range r {
		for id, q := range items {
			out = append(out, Entry{Category: cat, ItemID: id, Quantity: q})
		}
	}
	slices.SortFunc(out, CompareEntries)
	return out
}

// Has reports whether the reward has at least one entry in category
func (r Reward) Has(category string) bool {
	_, ok := r[category]
	return ok
}

// CompareEntries orders by category, then numeric item id, falling back
// to string order for ids that are not numbers.
func CompareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	ai, aerr := strconv.Atoi(a.ItemID)
	bi, berr := strconv.Atoi(b.ItemID)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return cmp.Compare(a.ItemID, b.ItemID)
}

// Point is one spawned harvest fixture
type Point struct {
	Location  vec.Vec2 // (worldX, worldZ)
	FixtureID int
	Reward    Reward
}

// Map is harvest data keyed by scene display name. It is replaced wholesale
// on reload, never edited in place.
type Map map[string][]Point

// Scenes returns the scene names in sorted order
func (m Map) Scenes() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Locations returns the locations of points, in order
func Locations(points []Point) []vec.Vec2 {
	out := make([]vec.Vec2, len(points))
	for i, p := range points {
		out[i] = p.Location
	}
	return out
}
